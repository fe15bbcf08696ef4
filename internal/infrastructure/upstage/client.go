package upstage

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/upstage-community/upstage-mcp/internal/core/domain"
	"github.com/upstage-community/upstage-mcp/internal/infrastructure/resilience"
	"github.com/upstage-community/upstage-mcp/internal/observability/metrics"
)

const (
	digitizationPath = "/document-digitization"
	extractionPath   = "/information-extraction"
	schemaGenPath    = "/information-extraction/schema-generation"

	parseModel   = "document-parse"
	extractModel = "information-extract"
)

// Client wraps the Upstage document-digitization API. The bearer
// credential is resolved once at construction; every operation runs
// through the retry executor and the outbound rate limiter.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	executor   *resilience.Executor
	limiter    *rate.Limiter
	metrics    *metrics.APIMetrics
}

type Options struct {
	BaseURL        string
	APIKey         string
	RequestTimeout time.Duration
	Resilience     resilience.Config
	RateLimitRPS   float64
	RateLimitBurst int
	Metrics        *metrics.APIMetrics
}

func New(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, domain.WrapError(domain.ErrAuth, "client init", fmt.Errorf("api key is empty"))
	}
	if opts.BaseURL == "" {
		opts.BaseURL = "https://api.upstage.ai/v1"
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 300 * time.Second
	}
	if opts.RateLimitRPS <= 0 {
		opts.RateLimitRPS = 2
	}
	if opts.RateLimitBurst <= 0 {
		opts.RateLimitBurst = 4
	}
	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		apiKey:     opts.APIKey,
		httpClient: &http.Client{Timeout: opts.RequestTimeout},
		executor:   resilience.NewExecutor(opts.Resilience),
		limiter:    rate.NewLimiter(rate.Limit(opts.RateLimitRPS), opts.RateLimitBurst),
		metrics:    opts.Metrics,
	}, nil
}

// ParseDocument posts the file as a multipart request and returns the
// verbatim digitization payload.
func (c *Client) ParseDocument(ctx context.Context, doc domain.DocumentRef) (domain.RawResponse, error) {
	form := map[string]string{
		"model":           parseModel,
		"ocr":             "force",
		"base64_encoding": "['table']",
	}
	return c.call(ctx, "document_digitization", func(ctx context.Context) ([]byte, error) {
		return c.postMultipart(ctx, digitizationPath, doc, form)
	})
}

// ExtractInformation posts the document with the schema as a
// structured-output constraint and returns the verbatim payload.
func (c *Client) ExtractInformation(ctx context.Context, doc domain.DocumentRef, schema domain.Schema) (domain.RawResponse, error) {
	payload, err := c.chatPayload(doc)
	if err != nil {
		return nil, err
	}
	payload["response_format"] = map[string]any{
		"type":        "json_schema",
		"json_schema": map[string]any(schema),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal extraction request: %w", err)
	}
	return c.call(ctx, "information_extraction", func(ctx context.Context) ([]byte, error) {
		return c.postJSON(ctx, extractionPath, body)
	})
}

// GenerateSchema asks the remote service to infer an extraction schema
// from the document itself.
func (c *Client) GenerateSchema(ctx context.Context, doc domain.DocumentRef) (domain.Schema, error) {
	payload, err := c.chatPayload(doc)
	if err != nil {
		return nil, err
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal schema generation request: %w", err)
	}
	raw, err := c.call(ctx, "schema_generation", func(ctx context.Context) ([]byte, error) {
		return c.postJSON(ctx, schemaGenPath, body)
	})
	if err != nil {
		return nil, err
	}
	return decodeGeneratedSchema(raw)
}

// chatPayload builds the OpenAI-format request body the extraction and
// schema-generation endpoints share: the document travels as a base64
// data URL.
func (c *Client) chatPayload(doc domain.DocumentRef) (map[string]any, error) {
	raw, err := os.ReadFile(doc.Path)
	if err != nil {
		return nil, domain.WrapError(domain.ErrFileNotFound, "read document", err)
	}
	dataURL := fmt.Sprintf("data:%s;base64,%s", doc.MediaType, base64.StdEncoding.EncodeToString(raw))
	return map[string]any{
		"model": extractModel,
		"messages": []any{
			map[string]any{
				"role": "user",
				"content": []any{
					map[string]any{
						"type":      "image_url",
						"image_url": map[string]any{"url": dataURL},
					},
				},
			},
		},
	}, nil
}

// call runs one remote operation through rate limiting and the retry
// executor, then maps the outcome onto the domain error taxonomy.
func (c *Client) call(ctx context.Context, operation string, send func(context.Context) ([]byte, error)) (domain.RawResponse, error) {
	var raw []byte
	start := time.Now()
	err := c.executor.Execute(ctx, operation, func(ctx context.Context) error {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
		body, sendErr := send(ctx)
		if sendErr != nil {
			return sendErr
		}
		raw = body
		return nil
	}, classifyAPIError)

	wrapped := wrapAPIError(operation, err)
	if c.metrics != nil {
		c.metrics.ObserveRequest(operation, domain.Kind(wrapped), time.Since(start))
	}
	if wrapped != nil {
		return nil, wrapped
	}
	return raw, nil
}

func decodeGeneratedSchema(raw domain.RawResponse) (domain.Schema, error) {
	var envelope struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, domain.WrapError(domain.ErrParse, "schema generation response", err)
	}
	if len(envelope.Choices) == 0 {
		return nil, domain.WrapError(domain.ErrParse, "schema generation response", fmt.Errorf("no choices in response"))
	}

	var content map[string]any
	if err := json.Unmarshal([]byte(envelope.Choices[0].Message.Content), &content); err != nil {
		return nil, domain.WrapError(domain.ErrParse, "schema generation content", err)
	}
	schemaValue, ok := content["json_schema"].(map[string]any)
	if !ok {
		return nil, domain.WrapError(domain.ErrParse, "schema generation content", fmt.Errorf("missing json_schema object"))
	}
	return domain.Schema(schemaValue), nil
}
