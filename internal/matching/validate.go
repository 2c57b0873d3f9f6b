package matching

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// The model's output used to be trusted after a bare json.Unmarshal. These
// schemas pin down what the pipeline actually relies on: every entry carries
// a 0-100 fitPercentage and the ID field for its direction.

const founderMatchSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["employeeId", "fitPercentage"],
    "properties": {
      "employeeId": {"type": "string"},
      "employeeName": {"type": "string"},
      "fitPercentage": {"type": "number", "minimum": 0, "maximum": 100},
      "recommendedRole": {"type": "string"},
      "reasoning": {"type": "string"}
    }
  }
}`

const employeeMatchSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["startupId", "fitPercentage"],
    "properties": {
      "startupId": {"type": "string"},
      "startupName": {"type": "string"},
      "founderId": {"type": "string"},
      "fitPercentage": {"type": "number", "minimum": 0, "maximum": 100},
      "suggestedRole": {"type": "string"},
      "reasoning": {"type": "string"}
    }
  }
}`

// ValidateMatchArray checks an extracted JSON array against the schema for
// the given direction.
func ValidateMatchArray(direction Direction, jsonArray []byte) error {
	schema := founderMatchSchema
	if direction == EmployeeToStartups {
		schema = employeeMatchSchema
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewBytesLoader(jsonArray),
	)
	if err != nil {
		return fmt.Errorf("schema validation failed to run: %w", err)
	}

	if !result.Valid() {
		var sb strings.Builder
		sb.WriteString("match array failed schema validation:")
		for _, desc := range result.Errors() {
			sb.WriteString(fmt.Sprintf(" %s: %s;", desc.Field(), desc.Description()))
		}
		return fmt.Errorf("%s", strings.TrimSuffix(sb.String(), ";"))
	}

	return nil
}
