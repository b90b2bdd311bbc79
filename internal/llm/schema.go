package llm

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Model responses are schema-fragile: keys drift, types wobble. Validating
// the payload against a JSON Schema before unmarshalling turns format drift
// into a clean error the caller can convert into its fallback path.

const profilePayloadSchema = `{
	"type": "object",
	"required": ["skills", "experience"],
	"properties": {
		"skills": {
			"type": "array",
			"items": {"type": "string"}
		},
		"experience": {"type": "string"}
	}
}`

const scorePayloadSchema = `{
	"type": "object",
	"required": ["relevance_score", "required_skills"],
	"properties": {
		"relevance_score": {"type": "number"},
		"required_skills": {
			"type": "array",
			"items": {"type": "string"}
		}
	}
}`

// ValidateProfilePayload checks a model response against the expected
// {skills, experience} shape.
func ValidateProfilePayload(jsonContent string) error {
	return validatePayload(profilePayloadSchema, jsonContent)
}

// ValidateScorePayload checks a model response against the expected
// {relevance_score, required_skills} shape.
func ValidateScorePayload(jsonContent string) error {
	return validatePayload(scorePayloadSchema, jsonContent)
}

func validatePayload(schemaContent, jsonContent string) error {
	schemaLoader := gojsonschema.NewStringLoader(schemaContent)
	documentLoader := gojsonschema.NewStringLoader(jsonContent)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("payload is not valid JSON: %w", err)
	}
	if result.Valid() {
		return nil
	}

	var sb strings.Builder
	sb.WriteString("payload failed schema validation:")
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		sb.WriteString(fmt.Sprintf(" %s: %s;", field, desc.Description()))
	}
	return fmt.Errorf("%s", strings.TrimSuffix(sb.String(), ";"))
}
