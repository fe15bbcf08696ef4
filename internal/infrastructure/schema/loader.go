package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/upstage-community/upstage-mcp/internal/core/domain"
)

// Loader reads an explicit extraction schema from a JSON or YAML file
// and rejects malformed ones before any network call is made.
type Loader struct{}

func NewLoader() *Loader {
	return &Loader{}
}

func (l *Loader) Load(path string) (domain.Schema, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.WrapError(domain.ErrSchema, "read schema file", err)
	}

	var mapping map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &mapping); err != nil {
			return nil, domain.WrapError(domain.ErrSchema, "decode schema yaml", err)
		}
	default:
		if err := json.Unmarshal(raw, &mapping); err != nil {
			return nil, domain.WrapError(domain.ErrSchema, "decode schema json", err)
		}
	}
	if len(mapping) == 0 {
		return nil, domain.WrapError(domain.ErrSchema, "validate schema", fmt.Errorf("schema file %s is empty", path))
	}

	if err := validate(mapping); err != nil {
		return nil, domain.WrapError(domain.ErrSchema, "validate schema", err)
	}
	return domain.Schema(mapping), nil
}

// validate compiles the schema body so structural problems surface
// here instead of as an opaque remote rejection. Schemas may carry the
// service's {name, schema} envelope or be a bare JSON schema.
func validate(mapping map[string]any) error {
	body := mapping
	if inner, ok := mapping["schema"].(map[string]any); ok {
		body = inner
	}

	encoded, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal schema body: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(encoded)); err != nil {
		return fmt.Errorf("add schema resource: %w", err)
	}
	if _, err := compiler.Compile("schema.json"); err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	return nil
}
