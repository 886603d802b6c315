package admin

import "testing"

func limitSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"limit": map[string]any{"type": "integer", "minimum": 1, "maximum": 25},
		},
		"additionalProperties": false,
	}
}

func TestValidateAcceptsConformingConfig(t *testing.T) {
	validator := NewJSONSchemaValidator()
	def := WidgetDefinition{Code: "test.widget.limited", Schema: limitSchema()}
	if err := validator.Validate(def, map[string]any{"limit": 5}); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
}

func TestValidateRejectsOutOfRange(t *testing.T) {
	validator := NewJSONSchemaValidator()
	def := WidgetDefinition{Code: "test.widget.limited", Schema: limitSchema()}
	if err := validator.Validate(def, map[string]any{"limit": 100}); err == nil {
		t.Fatalf("expected range violation")
	}
}

func TestValidateRejectsUnknownKeys(t *testing.T) {
	validator := NewJSONSchemaValidator()
	def := WidgetDefinition{Code: "test.widget.limited", Schema: limitSchema()}
	if err := validator.Validate(def, map[string]any{"unknown": true}); err == nil {
		t.Fatalf("expected additionalProperties violation")
	}
}

func TestValidateAllowsNilConfig(t *testing.T) {
	validator := NewJSONSchemaValidator()
	def := WidgetDefinition{Code: "test.widget.limited", Schema: limitSchema()}
	if err := validator.Validate(def, nil); err != nil {
		t.Fatalf("Validate returned error for nil config: %v", err)
	}
}

func TestValidateSkipsEmptySchema(t *testing.T) {
	validator := NewJSONSchemaValidator()
	def := WidgetDefinition{Code: "test.widget.free"}
	if err := validator.Validate(def, map[string]any{"anything": "goes"}); err != nil {
		t.Fatalf("Validate returned error without schema: %v", err)
	}
}

func TestDefaultDefinitionsCompile(t *testing.T) {
	validator := NewJSONSchemaValidator()
	for _, def := range DefaultWidgetDefinitions() {
		if err := validator.Validate(def, nil); err != nil {
			t.Fatalf("default schema for %s failed to compile: %v", def.Code, err)
		}
	}
}
