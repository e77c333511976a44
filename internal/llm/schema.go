package llm

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/joseph-ayodele/medintake/constants"
)

// BuildClassificationJSONSchema returns a JSON-Schema (draft 2020-12
// subset) for the model's response as a generic map. Field values are
// string-or-null: the prompt instructs extractors to emit explicit
// nulls for anything they cannot find.
func BuildClassificationJSONSchema() map[string]any {
	fieldProps := map[string]any{}
	for _, k := range constants.ExtractedFieldKeys {
		fieldProps[k] = map[string]any{"type": []string{"string", "null"}}
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": true,
		"properties": map[string]any{
			"documentClassification": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"primaryType": map[string]any{"type": "string", "enum": constants.DocumentTypeStrings()},
					"confidence":  map[string]any{"type": "number", "minimum": 0.0, "maximum": 1.0},
					"reasoning":   map[string]any{"type": "string"},
				},
				"required": []string{"primaryType"},
			},
			"extractedFields": map[string]any{
				"type":                 "object",
				"additionalProperties": true,
				"properties":           fieldProps,
			},
		},
		"required": []string{"documentClassification", "extractedFields"},
	}
}

// ValidateJSONAgainstSchema validates "data" against "schemaMap".
func ValidateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
