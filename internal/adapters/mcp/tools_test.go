package mcpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/upstage-community/upstage-mcp/internal/core/domain"
	"github.com/upstage-community/upstage-mcp/internal/core/ports"
	"github.com/upstage-community/upstage-mcp/internal/observability/logging"
)

type stubParser struct {
	result *domain.ParseResult
	err    error
	calls  int
}

func (s *stubParser) Parse(context.Context, string) (*domain.ParseResult, error) {
	s.calls++
	return s.result, s.err
}

type stubExtractor struct {
	result *domain.ExtractionResult
	err    error
	gotReq ports.ExtractRequest
}

func (s *stubExtractor) Extract(_ context.Context, req ports.ExtractRequest) (*domain.ExtractionResult, error) {
	s.gotReq = req
	return s.result, s.err
}

func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) != 1 {
		t.Fatalf("expected one content item, got %d", len(result.Content))
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", result.Content[0])
	}
	return text.Text
}

func TestParseDocumentReturnsStructuredResult(t *testing.T) {
	parser := &stubParser{result: &domain.ParseResult{Content: "body", SavedTo: "/outputs/document_parsing/a.json"}}
	handler := NewToolHandler(parser, &stubExtractor{}, nil, logging.NewJSONLogger("test", "error"))

	result, err := handler.ParseDocument(context.Background(), callRequest("parse_document", map[string]any{"file_path": "/docs/a.pdf"}))
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error result: %s", resultText(t, result))
	}

	var payload domain.ParseResult
	if err := json.Unmarshal([]byte(resultText(t, result)), &payload); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if payload.Content != "body" || payload.SavedTo != "/outputs/document_parsing/a.json" {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestParseDocumentMapsErrorKind(t *testing.T) {
	parser := &stubParser{err: domain.WrapError(domain.ErrExhausted, "document_digitization", errors.New("502 after 3 attempts"))}
	handler := NewToolHandler(parser, &stubExtractor{}, nil, logging.NewJSONLogger("test", "error"))

	result, err := handler.ParseDocument(context.Background(), callRequest("parse_document", map[string]any{"file_path": "/docs/a.pdf"}))
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if !result.IsError {
		t.Fatalf("expected error result")
	}

	var payload map[string]toolError
	if err := json.Unmarshal([]byte(resultText(t, result)), &payload); err != nil {
		t.Fatalf("decode error payload: %v", err)
	}
	if payload["error"].Kind != "ExhaustedRetriesError" {
		t.Fatalf("unexpected error kind %q", payload["error"].Kind)
	}
	if payload["error"].Message == "" {
		t.Fatalf("expected human-readable message")
	}
}

func TestParseDocumentRequiresFilePath(t *testing.T) {
	parser := &stubParser{}
	handler := NewToolHandler(parser, &stubExtractor{}, nil, logging.NewJSONLogger("test", "error"))

	result, err := handler.ParseDocument(context.Background(), callRequest("parse_document", map[string]any{}))
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if !result.IsError {
		t.Fatalf("expected error result for missing file_path")
	}
	if parser.calls != 0 {
		t.Fatalf("expected no use case call, got %d", parser.calls)
	}
}

func TestExtractInformationDefaultsAutoGenerate(t *testing.T) {
	extractor := &stubExtractor{result: &domain.ExtractionResult{
		Fields:     map[string]string{"total": "12.50"},
		SchemaUsed: "/outputs/information_extraction/schemas/a.json",
	}}
	handler := NewToolHandler(&stubParser{}, extractor, nil, logging.NewJSONLogger("test", "error"))

	result, err := handler.ExtractInformation(context.Background(), callRequest("extract_information", map[string]any{"file_path": "/docs/a.pdf"}))
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error result: %s", resultText(t, result))
	}
	if !extractor.gotReq.AutoGenerateSchema {
		t.Fatalf("auto_generate_schema must default to true")
	}
	if extractor.gotReq.SchemaPath != "" {
		t.Fatalf("unexpected schema path %q", extractor.gotReq.SchemaPath)
	}
}

func TestExtractInformationPassesExplicitArguments(t *testing.T) {
	extractor := &stubExtractor{result: &domain.ExtractionResult{Fields: map[string]string{}}}
	handler := NewToolHandler(&stubParser{}, extractor, nil, logging.NewJSONLogger("test", "error"))

	_, err := handler.ExtractInformation(context.Background(), callRequest("extract_information", map[string]any{
		"file_path":            "/docs/a.pdf",
		"schema_path":          "/schemas/invoice.yaml",
		"auto_generate_schema": false,
	}))
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if extractor.gotReq.SchemaPath != "/schemas/invoice.yaml" {
		t.Fatalf("unexpected schema path %q", extractor.gotReq.SchemaPath)
	}
	if extractor.gotReq.AutoGenerateSchema {
		t.Fatalf("expected auto_generate_schema=false to pass through")
	}
}
