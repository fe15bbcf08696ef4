package ports

import (
	"context"

	"github.com/upstage-community/upstage-mcp/internal/core/domain"
)

// DigitizationAPI is the outbound contract for the remote
// document-digitization service. Implementations own retry and
// error classification; callers see taxonomy kinds only.
type DigitizationAPI interface {
	ParseDocument(ctx context.Context, doc domain.DocumentRef) (domain.RawResponse, error)
	ExtractInformation(ctx context.Context, doc domain.DocumentRef, schema domain.Schema) (domain.RawResponse, error)
	GenerateSchema(ctx context.Context, doc domain.DocumentRef) (domain.Schema, error)
}

// ResponseNormalizer derives the caller-facing view from a raw payload.
type ResponseNormalizer interface {
	NormalizeParse(raw domain.RawResponse) (string, error)
	NormalizeExtraction(raw domain.RawResponse) (map[string]string, error)
}

// ArtifactStore persists write-once JSON artifacts and returns their
// final path. Artifacts accumulate; there is no update or delete.
type ArtifactStore interface {
	SaveJSON(ctx context.Context, kind domain.OperationKind, docName string, payload []byte) (string, error)
}

// DocumentResolver validates a local file for an operation and infers
// its media type.
type DocumentResolver interface {
	Resolve(path string, kind domain.OperationKind) (domain.DocumentRef, error)
}

// SchemaLoader reads an explicit extraction schema from disk.
type SchemaLoader interface {
	Load(path string) (domain.Schema, error)
}
