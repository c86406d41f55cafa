package schema

import (
	"fmt"
	"time"

	"github.com/xeipuuv/gojsonschema"

	"github.com/aaltat/robotframework/metrics/prometheus"
)

// ValidationError represents a single schema validation error with
// field-level detail.
type ValidationError struct {
	Field       string
	Description string
	Value       interface{}
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("%s: %s (value: %v)", e.Field, e.Description, e.Value)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Description)
}

// ValidationResult contains the results of JSON schema validation.
type ValidationResult struct {
	Valid  bool
	Errors []ValidationError
}

// ValidateResultJSON validates serialized result JSON against the embedded
// result schema.
func ValidateResultJSON(jsonData []byte) (*ValidationResult, error) {
	loader, err := GetSchemaLoader()
	if err != nil {
		return nil, err
	}
	return ValidateJSONAgainstLoader(jsonData, loader)
}

// ValidateJSONAgainstLoader validates raw JSON bytes against a schema
// provided as a gojsonschema.JSONLoader.
func ValidateJSONAgainstLoader(jsonData []byte, schemaLoader gojsonschema.JSONLoader) (*ValidationResult, error) {
	started := time.Now()
	documentLoader := gojsonschema.NewBytesLoader(jsonData)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	converted := ConvertResult(result)
	status := "passed"
	if !converted.Valid {
		status = "failed"
	}
	prometheus.RecordValidation("result", status, time.Since(started).Seconds())
	return converted, nil
}

// ConvertResult converts a gojsonschema result into a ValidationResult.
func ConvertResult(result *gojsonschema.Result) *ValidationResult {
	vr := &ValidationResult{
		Valid:  result.Valid(),
		Errors: make([]ValidationError, 0),
	}

	if !result.Valid() {
		for _, e := range result.Errors() {
			vr.Errors = append(vr.Errors, ValidationError{
				Field:       e.Field(),
				Description: e.Description(),
				Value:       e.Value(),
			})
		}
	}

	return vr
}
