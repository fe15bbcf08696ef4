package upstage

import (
	"testing"

	"github.com/upstage-community/upstage-mcp/internal/core/domain"
)

func TestNormalizeParsePrefersDocumentText(t *testing.T) {
	raw := domain.RawResponse(`{"content":{"text":"full body","markdown":"# md"},"elements":[]}`)
	content, err := NewNormalizer().NormalizeParse(raw)
	if err != nil {
		t.Fatalf("NormalizeParse() error = %v", err)
	}
	if content != "full body" {
		t.Fatalf("unexpected content %q", content)
	}
}

func TestNormalizeParseJoinsElementsInOrder(t *testing.T) {
	raw := domain.RawResponse(`{"elements":[
		{"content":{"text":"first"}},
		{"content":{"markdown":"second"}},
		{"content":{"text":"third"}}
	]}`)
	content, err := NewNormalizer().NormalizeParse(raw)
	if err != nil {
		t.Fatalf("NormalizeParse() error = %v", err)
	}
	if content != "first\n\nsecond\n\nthird" {
		t.Fatalf("element order must be preserved, got %q", content)
	}
}

func TestNormalizeParseRejectsMalformedPayload(t *testing.T) {
	if _, err := NewNormalizer().NormalizeParse(domain.RawResponse(`not json`)); !domain.IsKind(err, domain.ErrParse) {
		t.Fatalf("expected parse kind, got %v", err)
	}
	if _, err := NewNormalizer().NormalizeParse(domain.RawResponse(`{"elements":[]}`)); !domain.IsKind(err, domain.ErrParse) {
		t.Fatalf("expected parse kind for empty payload, got %v", err)
	}
}

func TestNormalizeParseIsIdempotent(t *testing.T) {
	raw := domain.RawResponse(`{"content":{"markdown":"# title\nbody"}}`)
	n := NewNormalizer()
	first, err := n.NormalizeParse(raw)
	if err != nil {
		t.Fatalf("NormalizeParse() error = %v", err)
	}
	second, err := n.NormalizeParse(raw)
	if err != nil {
		t.Fatalf("NormalizeParse() second call error = %v", err)
	}
	if first != second {
		t.Fatalf("normalization must be pure: %q vs %q", first, second)
	}
}

func TestNormalizeExtractionFlattensFields(t *testing.T) {
	raw := domain.RawResponse(`{"choices":[{"message":{"content":
		"{\"merchant\":\"ACME\",\"total\":12.5,\"items\":[\"a\",\"b\"],\"missing\":null}"
	}}]}`)
	fields, err := NewNormalizer().NormalizeExtraction(raw)
	if err != nil {
		t.Fatalf("NormalizeExtraction() error = %v", err)
	}
	if fields["merchant"] != "ACME" {
		t.Fatalf("unexpected merchant %q", fields["merchant"])
	}
	if fields["total"] != "12.5" {
		t.Fatalf("non-string values must be JSON-encoded, got %q", fields["total"])
	}
	if fields["items"] != `["a","b"]` {
		t.Fatalf("unexpected items %q", fields["items"])
	}
	if _, present := fields["missing"]; present {
		t.Fatalf("null fields must be omitted, not defaulted")
	}
}

func TestNormalizeExtractionRejectsMalformedEnvelope(t *testing.T) {
	cases := []string{
		`not json`,
		`{"choices":[]}`,
		`{"choices":[{"message":{"content":"not a json object"}}]}`,
	}
	for _, raw := range cases {
		if _, err := NewNormalizer().NormalizeExtraction(domain.RawResponse(raw)); !domain.IsKind(err, domain.ErrParse) {
			t.Fatalf("expected parse kind for %q, got %v", raw, err)
		}
	}
}
