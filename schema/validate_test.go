package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aaltat/robotframework/result"
)

func TestValidateResultJSONValid(t *testing.T) {
	res := result.NewResult()
	res.Suite.Name = "Root"
	test := res.Suite.CreateTest("First", 3)
	test.Status = result.StatusPass
	test.Body.CreateMessage("hello", result.LevelInfo, false, nil)

	data, err := result.ToJSON(res, nil)
	require.NoError(t, err)

	vr, err := ValidateResultJSON([]byte(data))
	require.NoError(t, err)
	assert.True(t, vr.Valid, "errors: %v", vr.Errors)
	assert.Empty(t, vr.Errors)
}

func TestValidateResultJSONMissingGenerator(t *testing.T) {
	vr, err := ValidateResultJSON([]byte(`{"suite":{"name":"Root"}}`))
	require.NoError(t, err)

	assert.False(t, vr.Valid)
	require.NotEmpty(t, vr.Errors)
	assert.Contains(t, vr.Errors[0].Description, "generator")
}

func TestValidateResultJSONBadStatus(t *testing.T) {
	doc := `{
		"generator": "test",
		"suite": {
			"name": "Root",
			"tests": [{"name": "First", "status": "MAYBE"}]
		}
	}`
	vr, err := ValidateResultJSON([]byte(doc))
	require.NoError(t, err)

	assert.False(t, vr.Valid)
	assert.NotEmpty(t, vr.Errors)
}

func TestValidateResultJSONBadMessageLevel(t *testing.T) {
	doc := `{
		"generator": "test",
		"suite": {"name": "Root"},
		"errors": [{"message": "oops", "level": "LOUD"}]
	}`
	vr, err := ValidateResultJSON([]byte(doc))
	require.NoError(t, err)

	assert.False(t, vr.Valid)
}

func TestValidateResultJSONMalformed(t *testing.T) {
	_, err := ValidateResultJSON([]byte(`{not json`))

	assert.Error(t, err)
}

func TestValidationErrorFormatting(t *testing.T) {
	err := ValidationError{Field: "suite.name", Description: "is required"}
	assert.Equal(t, "suite.name: is required", err.Error())

	err = ValidationError{Field: "rpa", Description: "invalid type", Value: "yes"}
	assert.Equal(t, "rpa: invalid type (value: yes)", err.Error())
}

func TestGetEmbeddedSchema(t *testing.T) {
	schema := GetEmbeddedSchema()
	assert.Contains(t, schema, `"title": "Execution result"`)
}

func TestGetEmbeddedSchemaVersion(t *testing.T) {
	version, err := GetEmbeddedSchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, "1.0", version)
}

func TestGetSchemaLoaderFileOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.json")
	require.NoError(t, os.WriteFile(path, []byte(GetEmbeddedSchema()), 0o644))
	t.Setenv(SchemaSourceEnvVar, path)

	loader, err := GetSchemaLoader()
	require.NoError(t, err)

	vr, err := ValidateJSONAgainstLoader([]byte(`{"generator":"test","suite":{"name":"Root"}}`), loader)
	require.NoError(t, err)
	assert.True(t, vr.Valid)
}

func TestGetSchemaLoaderMissingFile(t *testing.T) {
	t.Setenv(SchemaSourceEnvVar, "/no/such/schema.json")

	_, err := GetSchemaLoader()
	assert.Error(t, err)
}
