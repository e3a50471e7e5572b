package pdfoutline

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// outlineSchema is the contract the consuming environment validates outline
// documents against.
const outlineSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["title", "outline"],
  "additionalProperties": false,
  "properties": {
    "title": { "type": "string" },
    "outline": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["level", "text", "page"],
        "additionalProperties": false,
        "properties": {
          "level": { "type": "string", "enum": ["H1", "H2", "H3", "H4"] },
          "text": { "type": "string" },
          "page": { "type": "integer", "minimum": 0 }
        }
      }
    }
  }
}`

var compiledOutlineSchema = jsonschema.MustCompileString("outline.schema.json", outlineSchema)

// ValidateOutlineJSON checks serialized outline output against the outline
// schema. Emitting invalid output is a defect in this package, so callers
// that write outlines for downstream consumers should validate before
// emitting.
func ValidateOutlineJSON(data []byte) error {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return errors.Wrap(err, "outline output is not valid JSON")
	}
	if err := compiledOutlineSchema.Validate(doc); err != nil {
		return errors.Wrap(err, "outline output violates schema")
	}
	return nil
}
