package usecase

import (
	"context"
	"log/slog"

	"github.com/upstage-community/upstage-mcp/internal/core/domain"
	"github.com/upstage-community/upstage-mcp/internal/core/ports"
)

type ParseDocumentUseCase struct {
	resolver   ports.DocumentResolver
	api        ports.DigitizationAPI
	normalizer ports.ResponseNormalizer
	artifacts  ports.ArtifactStore
}

func NewParseDocumentUseCase(
	resolver ports.DocumentResolver,
	api ports.DigitizationAPI,
	normalizer ports.ResponseNormalizer,
	artifacts ports.ArtifactStore,
) *ParseDocumentUseCase {
	return &ParseDocumentUseCase{
		resolver:   resolver,
		api:        api,
		normalizer: normalizer,
		artifacts:  artifacts,
	}
}

// Parse validates the file, calls the digitization endpoint, persists
// the raw payload, and returns the normalized body. The raw payload is
// persisted before the result is handed back; a storage failure never
// discards a successful remote call, it only flags the result.
func (uc *ParseDocumentUseCase) Parse(ctx context.Context, filePath string) (*domain.ParseResult, error) {
	doc, err := uc.resolver.Resolve(filePath, domain.OpDocumentParsing)
	if err != nil {
		return nil, err
	}

	raw, err := uc.api.ParseDocument(ctx, doc)
	if err != nil {
		return nil, err
	}

	result := &domain.ParseResult{}
	savedTo, saveErr := uc.artifacts.SaveJSON(ctx, domain.OpDocumentParsing, doc.Name, raw)
	if saveErr != nil {
		slog.Warn("artifact_save_failed", "operation", string(domain.OpDocumentParsing), "document", doc.Name, "error", saveErr)
		result.StorageFailed = true
	} else {
		result.SavedTo = savedTo
	}

	content, err := uc.normalizer.NormalizeParse(raw)
	if err != nil {
		return nil, err
	}
	result.Content = content
	return result, nil
}
