package upstage

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/upstage-community/upstage-mcp/internal/core/domain"
)

// Normalizer derives the caller-facing view from raw API payloads.
// Both methods are pure: no state, same raw input yields the same
// output, and a malformed payload fails instead of producing a partial
// result.
type Normalizer struct{}

func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

type parseContent struct {
	Text     string `json:"text"`
	Markdown string `json:"markdown"`
	HTML     string `json:"html"`
}

func (c parseContent) best() string {
	switch {
	case strings.TrimSpace(c.Text) != "":
		return c.Text
	case strings.TrimSpace(c.Markdown) != "":
		return c.Markdown
	default:
		return c.HTML
	}
}

// NormalizeParse turns a digitization payload into one readable body.
// Element ordering is the service's; it is never reordered here.
func (n *Normalizer) NormalizeParse(raw domain.RawResponse) (string, error) {
	var payload struct {
		Content  *parseContent `json:"content"`
		Elements []struct {
			Content parseContent `json:"content"`
		} `json:"elements"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", domain.WrapError(domain.ErrParse, "digitization response", err)
	}

	if payload.Content != nil {
		if body := payload.Content.best(); strings.TrimSpace(body) != "" {
			return body, nil
		}
	}

	var parts []string
	for _, element := range payload.Elements {
		if body := element.Content.best(); strings.TrimSpace(body) != "" {
			parts = append(parts, body)
		}
	}
	if len(parts) == 0 {
		return "", domain.WrapError(domain.ErrParse, "digitization response", fmt.Errorf("no textual content in payload"))
	}
	return strings.Join(parts, "\n\n"), nil
}

// NormalizeExtraction flattens the extraction payload into a
// field-to-value mapping. Fields the service did not return are
// omitted, so callers can tell "not found" from "found empty".
func (n *Normalizer) NormalizeExtraction(raw domain.RawResponse) (map[string]string, error) {
	var envelope struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, domain.WrapError(domain.ErrParse, "extraction response", err)
	}
	if len(envelope.Choices) == 0 {
		return nil, domain.WrapError(domain.ErrParse, "extraction response", fmt.Errorf("no choices in response"))
	}

	var values map[string]any
	if err := json.Unmarshal([]byte(envelope.Choices[0].Message.Content), &values); err != nil {
		return nil, domain.WrapError(domain.ErrParse, "extraction content", err)
	}

	fields := make(map[string]string, len(values))
	for name, value := range values {
		if value == nil {
			continue
		}
		fields[name] = stringifyField(value)
	}
	return fields, nil
}

func stringifyField(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprintf("%v", value)
	}
	return string(encoded)
}
