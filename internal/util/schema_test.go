package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleArgs struct {
	Expression string  `json:"expression" description:"math expression"`
	Precision  int     `json:"precision,omitempty"`
	Verbose    *bool   `json:"verbose"`
	Weight     float64 `json:"weight"`
	ignored    string  `json:"ignored"`
	Skipped    string  `json:"-"`
}

func TestCreateSchema(t *testing.T) {
	schema := CreateSchema(sampleArgs{})
	assert.Equal(t, "object", schema["type"])

	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "expression")
	assert.Contains(t, props, "precision")
	assert.Contains(t, props, "verbose")
	assert.NotContains(t, props, "ignored")
	assert.NotContains(t, props, "-")
	assert.NotContains(t, props, "Skipped")

	expr := props["expression"].(map[string]any)
	assert.Equal(t, "string", expr["type"])
	assert.Equal(t, "math expression", expr["description"])
	assert.Equal(t, "integer", props["precision"].(map[string]any)["type"])
	assert.Equal(t, "number", props["weight"].(map[string]any)["type"])
	assert.Equal(t, "boolean", props["verbose"].(map[string]any)["type"])

	// omitempty and pointer fields are optional
	assert.Equal(t, []string{"expression", "weight"}, schema["required"])
}

func TestCreateSchemaNonStruct(t *testing.T) {
	schema := CreateSchema("not a struct")
	assert.Equal(t, "object", schema["type"])
	assert.Empty(t, schema["properties"])
}

func TestValidateParameters(t *testing.T) {
	schema := CreateSchema(sampleArgs{})

	err := ValidateParameters(map[string]any{"expression": "1+1", "weight": 2.5}, schema)
	assert.NoError(t, err)

	err = ValidateParameters(map[string]any{"weight": 2.5}, schema)
	require.Error(t, err)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "expression", ve.Field)

	err = ValidateParameters(map[string]any{"expression": 42, "weight": 1.0}, schema)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expression")
}

func TestValidateParametersRequiredAsAnySlice(t *testing.T) {
	// Hand-written schemas decoded from JSON carry required as []any.
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"query": map[string]any{"type": "string"},
		},
		"required": []any{"query"},
	}

	assert.Error(t, ValidateParameters(map[string]any{}, schema))
	assert.NoError(t, ValidateParameters(map[string]any{"query": "go"}, schema))
}

func TestValidateParametersIntegerAcceptsWholeFloat(t *testing.T) {
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"count": map[string]any{"type": "integer"},
		},
	}

	assert.NoError(t, ValidateParameters(map[string]any{"count": float64(3)}, schema))
	assert.Error(t, ValidateParameters(map[string]any{"count": 3.5}, schema))
}

func TestValidateParametersAllowsExtraFields(t *testing.T) {
	schema := CreateSchema(sampleArgs{})
	err := ValidateParameters(map[string]any{"expression": "1", "weight": 1.0, "unknown": true}, schema)
	assert.NoError(t, err)
}
