package schemas

import (
	"errors"
	"testing"
)

const testSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["name", "reason"],
	"properties": {
		"name": {"type": "string", "minLength": 1},
		"reason": {"type": "string"}
	}
}`

func TestValidateJSONString_Valid(t *testing.T) {
	doc := `{"name": "Bread Roll", "reason": "exceeds calorie budget"}`
	if err := ValidateJSONString(testSchema, doc); err != nil {
		t.Errorf("Expected valid document, got error: %v", err)
	}
}

func TestValidateJSONString_Invalid(t *testing.T) {
	doc := `{"name": ""}`
	err := ValidateJSONString(testSchema, doc)
	if err == nil {
		t.Fatal("Expected validation error")
	}

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Expected *ValidationError, got %T", err)
	}
	if len(ve.Errors) == 0 {
		t.Error("Expected field errors to be populated")
	}
}

func TestValidateJSONString_BadSchema(t *testing.T) {
	err := ValidateJSONString(`{"type": 42}`, `{}`)
	if err == nil {
		t.Fatal("Expected schema load error")
	}

	var sle *SchemaLoadError
	if !errors.As(err, &sle) {
		t.Fatalf("Expected *SchemaLoadError, got %T", err)
	}
}

func TestValidateDocument_StrategyResult(t *testing.T) {
	schemaPath := ResolveSchemaPath("schemas/strategy_result.schema.json")
	if schemaPath == "" {
		t.Fatal("Could not locate strategy_result.schema.json")
	}

	valid := []byte(`{
		"phases": [
			{"phase_name": "Starter", "items": [
				{"dish_name": "Soup", "portion_grams": 200, "calories": 70, "protein": 4, "carbs": 10, "fat": 1.6}
			]}
		],
		"skip": [],
		"total_calories": 70,
		"fullness_score": 0.2,
		"stomach_used_ml": 250
	}`)
	if err := ValidateDocument(schemaPath, valid); err != nil {
		t.Errorf("Expected valid strategy result, got: %v", err)
	}

	tests := []struct {
		name string
		doc  string
	}{
		{"fullness above one", `{"phases": null, "skip": [], "total_calories": 0, "fullness_score": 1.5, "stomach_used_ml": 0}`},
		{"missing skip", `{"phases": null, "total_calories": 0, "fullness_score": 0, "stomach_used_ml": 0}`},
		{"bad phase name", `{"phases": [{"phase_name": "Dessert", "items": [{"dish_name": "Cake", "portion_grams": 80, "calories": 290, "protein": 4, "carbs": 40, "fat": 12}]}], "skip": [], "total_calories": 290, "fullness_score": 0.1, "stomach_used_ml": 68}`},
		{"negative calories", `{"phases": null, "skip": [], "total_calories": -5, "fullness_score": 0, "stomach_used_ml": 0}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocument(schemaPath, []byte(tt.doc))
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Errorf("Expected *ValidationError, got %v", err)
			}
		})
	}
}

func TestValidateDocument_MissingSchema(t *testing.T) {
	if err := ValidateDocument("/nonexistent/schema.json", []byte(`{}`)); err == nil {
		t.Error("Expected error for missing schema file")
	}
}

func TestResolveSchemaPath_NotFound(t *testing.T) {
	if path := ResolveSchemaPath("schemas/no_such.schema.json"); path != "" {
		t.Errorf("Expected empty path, got %q", path)
	}
}
