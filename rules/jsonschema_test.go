package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONSchemaRule(t *testing.T) {
	r, err := JSONSchema(`{
		"type": "object",
		"required": ["name"],
		"properties": {"age": {"type": "integer", "minimum": 0}}
	}`)
	require.NoError(t, err)

	assert.NoError(t, r.Check(map[string]any{"name": "Bob", "age": int64(3)}))

	err = r.Check(map[string]any{"age": int64(-1)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name")
	assert.Contains(t, err.Error(), "/age")
}

func TestJSONSchemaFromValue(t *testing.T) {
	r, err := JSONSchema(map[string]any{"type": "string", "maxLength": 2})
	require.NoError(t, err)
	assert.NoError(t, r.Check("ab"))
	assert.Error(t, r.Check("abc"))
	assert.Equal(t, "jsonSchema", r.Description())
}

func TestJSONSchemaInvalidDocument(t *testing.T) {
	_, err := JSONSchema(`{"type": 12}`)
	assert.Error(t, err)

	_, err = JSONSchema(`not json`)
	assert.Error(t, err)
}
