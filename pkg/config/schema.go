package config

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// configSchema is the JSON Schema that explicit config files must satisfy.
// Discovery-based loading relies on Validate instead, since viper has
// already coerced types by the time the struct exists.
const configSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "flc configuration",
  "type": "object",
  "properties": {
    "license_header": { "type": "string" },
    "comment_styles": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "properties": {
          "prefix": { "type": "string", "minLength": 1 },
          "suffix": { "type": "string" }
        },
        "required": ["prefix"]
      }
    },
    "ignore_patterns": {
      "type": "array",
      "items": { "type": "string" }
    },
    "max_header_bytes": { "type": "integer", "minimum": 256 },
    "max_file_size": { "type": "integer", "minimum": 0 },
    "skip_empty_files": { "type": "boolean" },
    "parallel_jobs": { "type": "integer", "minimum": 1 },
    "similarity_threshold": { "type": "integer", "minimum": 0, "maximum": 100 }
  }
}`

// validateSchema checks a parsed config against the schema and reports all
// violations at once.
func validateSchema(cfg *Config) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("serialize config for validation: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(configSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}

	if !result.Valid() {
		var problems []string
		for _, desc := range result.Errors() {
			problems = append(problems, desc.String())
		}
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(problems, "\n"))
	}
	return nil
}
