package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/upstage-community/upstage-mcp/internal/core/domain"
	"github.com/upstage-community/upstage-mcp/internal/core/ports"
)

type ExtractInformationUseCase struct {
	resolver   ports.DocumentResolver
	api        ports.DigitizationAPI
	normalizer ports.ResponseNormalizer
	artifacts  ports.ArtifactStore
	schemas    ports.SchemaLoader
}

func NewExtractInformationUseCase(
	resolver ports.DocumentResolver,
	api ports.DigitizationAPI,
	normalizer ports.ResponseNormalizer,
	artifacts ports.ArtifactStore,
	schemas ports.SchemaLoader,
) *ExtractInformationUseCase {
	return &ExtractInformationUseCase{
		resolver:   resolver,
		api:        api,
		normalizer: normalizer,
		artifacts:  artifacts,
		schemas:    schemas,
	}
}

// Extract validates the file, resolves exactly one schema (explicit or
// generated, never merged), calls the extraction endpoint, persists
// the raw payload, and returns the flattened fields.
func (uc *ExtractInformationUseCase) Extract(ctx context.Context, req ports.ExtractRequest) (*domain.ExtractionResult, error) {
	doc, err := uc.resolver.Resolve(req.FilePath, domain.OpInformationExtraction)
	if err != nil {
		return nil, err
	}

	result := &domain.ExtractionResult{}
	schema, err := uc.resolveSchema(ctx, doc, req, result)
	if err != nil {
		return nil, err
	}

	raw, err := uc.api.ExtractInformation(ctx, doc, schema)
	if err != nil {
		return nil, err
	}

	savedTo, saveErr := uc.artifacts.SaveJSON(ctx, domain.OpInformationExtraction, doc.Name, raw)
	if saveErr != nil {
		slog.Warn("artifact_save_failed", "operation", string(domain.OpInformationExtraction), "document", doc.Name, "error", saveErr)
		result.StorageFailed = true
	} else {
		result.SavedTo = savedTo
	}

	fields, err := uc.normalizer.NormalizeExtraction(raw)
	if err != nil {
		return nil, err
	}
	result.Fields = fields
	return result, nil
}

// resolveSchema prefers the explicit schema; no inference call is
// issued when one is given. With no explicit schema, auto-generation
// must be enabled or the call fails before any network work.
func (uc *ExtractInformationUseCase) resolveSchema(ctx context.Context, doc domain.DocumentRef, req ports.ExtractRequest, result *domain.ExtractionResult) (domain.Schema, error) {
	if req.SchemaPath != "" {
		schema, err := uc.schemas.Load(req.SchemaPath)
		if err != nil {
			return nil, err
		}
		result.SchemaUsed = req.SchemaPath
		return schema, nil
	}

	if !req.AutoGenerateSchema {
		return nil, domain.WrapError(domain.ErrMissingSchema, "resolve schema",
			fmt.Errorf("no schema path given and auto-generation disabled"))
	}

	schema, err := uc.api.GenerateSchema(ctx, doc)
	if err != nil {
		return nil, err
	}

	encoded, err := schema.JSON()
	if err != nil {
		return nil, domain.WrapError(domain.ErrParse, "encode generated schema", err)
	}
	savedTo, saveErr := uc.artifacts.SaveJSON(ctx, domain.OpGeneratedSchema, doc.Name, encoded)
	if saveErr != nil {
		slog.Warn("artifact_save_failed", "operation", string(domain.OpGeneratedSchema), "document", doc.Name, "error", saveErr)
		result.StorageFailed = true
		result.SchemaUsed = "generated"
	} else {
		result.SchemaUsed = savedTo
	}
	return schema, nil
}
