// Package schema provides the embedded execution result schema and JSON
// validation utilities.
package schema

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed result.schema.json
var embeddedSchema string

// SchemaSourceEnvVar is the environment variable to override the schema
// source. Values: "local" (embedded) or a file path.
const SchemaSourceEnvVar = "ROBOT_RESULT_SCHEMA_SOURCE"

// GetSchemaLoader returns a gojsonschema loader for the result schema.
// The embedded schema is used unless a file path override is set in the
// environment.
func GetSchemaLoader() (gojsonschema.JSONLoader, error) {
	source := os.Getenv(SchemaSourceEnvVar)

	switch {
	case source == "local" || source == "":
		return gojsonschema.NewStringLoader(embeddedSchema), nil

	case strings.HasPrefix(source, "/") || strings.HasPrefix(source, "./"):
		data, err := os.ReadFile(source) //nolint:gosec // source is from trusted env var, not user input
		if err != nil {
			return nil, fmt.Errorf("failed to read schema from %s: %w", source, err)
		}
		return gojsonschema.NewStringLoader(string(data)), nil

	default:
		return gojsonschema.NewReferenceLoader(source), nil
	}
}

// GetEmbeddedSchema returns the embedded schema as a string.
func GetEmbeddedSchema() string {
	return embeddedSchema
}

// GetEmbeddedSchemaVersion returns the version from the embedded schema.
func GetEmbeddedSchemaVersion() (string, error) {
	var schema struct {
		Version string `json:"version"`
	}
	if err := json.Unmarshal([]byte(embeddedSchema), &schema); err != nil {
		return "", fmt.Errorf("failed to parse embedded schema: %w", err)
	}
	return schema.Version, nil
}
