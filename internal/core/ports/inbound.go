package ports

import (
	"context"

	"github.com/upstage-community/upstage-mcp/internal/core/domain"
)

// DocumentParser is the inbound contract behind the parse_document tool.
type DocumentParser interface {
	Parse(ctx context.Context, filePath string) (*domain.ParseResult, error)
}

// InformationExtractor is the inbound contract behind the
// extract_information tool.
type InformationExtractor interface {
	Extract(ctx context.Context, req ExtractRequest) (*domain.ExtractionResult, error)
}

// ExtractRequest carries the extraction inputs with their documented
// defaults resolved by the adapter: AutoGenerateSchema defaults to true
// when no explicit schema path is given.
type ExtractRequest struct {
	FilePath           string
	SchemaPath         string
	AutoGenerateSchema bool
}
