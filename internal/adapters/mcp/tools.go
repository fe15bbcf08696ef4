package mcpadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/upstage-community/upstage-mcp/internal/core/domain"
	"github.com/upstage-community/upstage-mcp/internal/core/ports"
	"github.com/upstage-community/upstage-mcp/internal/observability/metrics"
)

// ToolHandler bridges MCP tool invocations onto the use cases. Every
// failure is returned as a structured {kind, message} payload so the
// calling agent can branch on error kind instead of scraping text.
type ToolHandler struct {
	parser    ports.DocumentParser
	extractor ports.InformationExtractor
	metrics   *metrics.APIMetrics
	logger    *slog.Logger
}

func NewToolHandler(parser ports.DocumentParser, extractor ports.InformationExtractor, apiMetrics *metrics.APIMetrics, logger *slog.Logger) *ToolHandler {
	return &ToolHandler{
		parser:    parser,
		extractor: extractor,
		metrics:   apiMetrics,
		logger:    logger,
	}
}

func parseDocumentTool() mcp.Tool {
	return mcp.Tool{
		Name: "parse_document",
		Description: "Parse a document with the Upstage document digitization API. " +
			"Extracts structure and content from PDFs, images, and Office files, " +
			"returning the document body and the path of the saved raw response.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"file_path": map[string]interface{}{
					"type":        "string",
					"description": "Path to the document file to process",
				},
			},
			Required: []string{"file_path"},
		},
	}
}

func extractInformationTool() mcp.Tool {
	return mcp.Tool{
		Name: "extract_information",
		Description: "Extract structured fields from a document with the Upstage " +
			"information extraction API. Provide a schema file, or let the service " +
			"infer one from the document. Supported formats: JPEG, PNG, BMP, PDF, " +
			"TIFF, HEIC, DOCX, PPTX, XLSX. Max file size 50MB, max 100 pages.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"file_path": map[string]interface{}{
					"type":        "string",
					"description": "Path to the document file to process",
				},
				"schema_path": map[string]interface{}{
					"type":        "string",
					"description": "Path to a JSON or YAML file containing the extraction schema (optional)",
				},
				"auto_generate_schema": map[string]interface{}{
					"type":        "boolean",
					"description": "Infer a schema from the document when no schema_path is given (default true)",
				},
			},
			Required: []string{"file_path"},
		},
	}
}

func (h *ToolHandler) ParseDocument(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()
	filePath, err := stringArg(req, "file_path")
	if err != nil {
		return errorResult(domain.WrapError(domain.ErrFileNotFound, "parse_document", err)), nil
	}

	h.logger.Info("tool_call", "tool", "parse_document", "file_path", filePath)
	result, err := h.parser.Parse(ctx, filePath)
	h.observe("parse_document", err, start)
	if err != nil {
		h.logger.Error("tool_failed", "tool", "parse_document", "kind", domain.Kind(err), "error", err)
		return errorResult(err), nil
	}
	return jsonResult(result), nil
}

func (h *ToolHandler) ExtractInformation(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()
	filePath, err := stringArg(req, "file_path")
	if err != nil {
		return errorResult(domain.WrapError(domain.ErrFileNotFound, "extract_information", err)), nil
	}

	args := req.GetArguments()
	schemaPath, _ := args["schema_path"].(string)
	autoGenerate := true
	if v, ok := args["auto_generate_schema"].(bool); ok {
		autoGenerate = v
	}

	h.logger.Info("tool_call", "tool", "extract_information", "file_path", filePath, "schema_path", schemaPath, "auto_generate_schema", autoGenerate)
	result, err := h.extractor.Extract(ctx, ports.ExtractRequest{
		FilePath:           filePath,
		SchemaPath:         schemaPath,
		AutoGenerateSchema: autoGenerate,
	})
	h.observe("extract_information", err, start)
	if err != nil {
		h.logger.Error("tool_failed", "tool", "extract_information", "kind", domain.Kind(err), "error", err)
		return errorResult(err), nil
	}
	return jsonResult(result), nil
}

func (h *ToolHandler) observe(tool string, err error, start time.Time) {
	if h.metrics != nil {
		h.metrics.ObserveToolCall(tool, domain.Kind(err), time.Since(start))
	}
}

func stringArg(req mcp.CallToolRequest, name string) (string, error) {
	value, ok := req.GetArguments()[name].(string)
	if !ok || value == "" {
		return "", fmt.Errorf("missing required argument %s", name)
	}
	return value, nil
}

type toolError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func errorResult(err error) *mcp.CallToolResult {
	payload, marshalErr := json.Marshal(map[string]toolError{
		"error": {Kind: domain.Kind(err), Message: err.Error()},
	})
	if marshalErr != nil {
		payload = []byte(`{"error":{"kind":"InternalError","message":"failed to encode error"}}`)
	}
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: string(payload)},
		},
	}
}

func jsonResult(v any) *mcp.CallToolResult {
	payload, err := json.Marshal(v)
	if err != nil {
		return errorResult(domain.WrapError(domain.ErrParse, "encode tool result", err))
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: string(payload)},
		},
	}
}
