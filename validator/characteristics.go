package validator

import (
	"bytes"
	"embed"
	"encoding/json"
	"log"

	apperrors "rentals/errors"
	"rentals/models"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemaFS embed.FS

var characteristicsSchema = mustCompile("schemas/characteristics.json")

func mustCompile(path string) *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	data, err := schemaFS.ReadFile(path)
	if err != nil {
		log.Fatalf("failed to read schema %s: %v", path, err)
	}
	if err := compiler.AddResource(path, bytes.NewReader(data)); err != nil {
		log.Fatalf("failed to add schema resource %s: %v", path, err)
	}
	return compiler.MustCompile(path)
}

// ValidateCharacteristics kiểm tra payload characteristics theo JSON schema
// (khóa đóng, cờ boolean, số lượng nguyên không âm). Payload rỗng là hợp lệ.
func ValidateCharacteristics(raw json.RawMessage) (models.Characteristics, error) {
	var out models.Characteristics
	if len(bytes.TrimSpace(raw)) == 0 || string(bytes.TrimSpace(raw)) == "null" {
		return out, nil
	}

	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return out, apperrors.NewAppError(apperrors.ErrCodeInvalidFormat, "Invalid field: characteristics", err)
	}
	if err := characteristicsSchema.Validate(v); err != nil {
		return out, apperrors.NewAppError(apperrors.ErrCodeValidation, "Invalid field: characteristics", err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, apperrors.NewAppError(apperrors.ErrCodeInvalidFormat, "Invalid field: characteristics", err)
	}
	return out, nil
}
