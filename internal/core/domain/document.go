package domain

import "encoding/json"

type OperationKind string

const (
	OpDocumentParsing       OperationKind = "document_parsing"
	OpInformationExtraction OperationKind = "information_extraction"
	OpGeneratedSchema       OperationKind = "generated_schema"
)

// DocumentRef points at a local file that has already been validated
// for the requested operation.
type DocumentRef struct {
	Path      string `json:"path"`
	Name      string `json:"name"`
	MediaType string `json:"media_type"`
	Size      int64  `json:"size"`
}

// RawResponse is the verbatim JSON payload returned by the remote
// service. It is persisted as-is and never mutated after write.
type RawResponse []byte

// Schema constrains what an information-extraction call returns.
// Exactly one of {explicit, generated} is used per call.
type Schema map[string]any

func (s Schema) JSON() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

type ParseResult struct {
	Content       string `json:"content"`
	SavedTo       string `json:"saved_to,omitempty"`
	StorageFailed bool   `json:"storage_failed,omitempty"`
}

type ExtractionResult struct {
	Fields        map[string]string `json:"fields"`
	SchemaUsed    string            `json:"schema_used"`
	SavedTo       string            `json:"saved_to,omitempty"`
	StorageFailed bool              `json:"storage_failed,omitempty"`
}
