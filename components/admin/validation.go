package admin

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// JSONSchemaValidator checks widget configurations against the JSON schema
// carried by their definition. Compiled schemas are cached per widget code;
// definitions without a schema accept any configuration.
type JSONSchemaValidator struct {
	mu      sync.Mutex
	schemas map[string]*jsonschema.Schema
}

// NewJSONSchemaValidator builds a validator backed by jsonschema v5.
func NewJSONSchemaValidator() *JSONSchemaValidator {
	return &JSONSchemaValidator{schemas: map[string]*jsonschema.Schema{}}
}

// Validate reports an error when config violates the definition's schema. A
// nil config is treated as an empty object so defaults-only widgets pass.
func (v *JSONSchemaValidator) Validate(def WidgetDefinition, config map[string]any) error {
	if len(def.Schema) == 0 {
		return nil
	}
	schema, err := v.compile(def)
	if err != nil {
		return err
	}
	payload, err := normalizeConfig(config)
	if err != nil {
		return fmt.Errorf("admin: configuration for %s: %w", def.Code, err)
	}
	if err := schema.Validate(payload); err != nil {
		return fmt.Errorf("admin: configuration for %s failed validation: %w", def.Code, err)
	}
	return nil
}

func (v *JSONSchemaValidator) compile(def WidgetDefinition) (*jsonschema.Schema, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if schema, ok := v.schemas[def.Code]; ok {
		return schema, nil
	}
	raw, err := json.Marshal(def.Schema)
	if err != nil {
		return nil, fmt.Errorf("admin: marshal schema %s: %w", def.Code, err)
	}
	compiler := jsonschema.NewCompiler()
	resource := def.Code + ".json"
	if err := compiler.AddResource(resource, bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("admin: load schema %s: %w", def.Code, err)
	}
	schema, err := compiler.Compile(resource)
	if err != nil {
		return nil, fmt.Errorf("admin: compile schema %s: %w", def.Code, err)
	}
	v.schemas[def.Code] = schema
	return schema, nil
}

// normalizeConfig round-trips the map through JSON so numeric values compare
// the way the schema engine expects.
func normalizeConfig(config map[string]any) (map[string]any, error) {
	if config == nil {
		return map[string]any{}, nil
	}
	raw, err := json.Marshal(config)
	if err != nil {
		return nil, err
	}
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}
