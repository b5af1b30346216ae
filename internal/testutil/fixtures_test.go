package testutil

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"
)

func TestPtr(t *testing.T) {
	p := Ptr(3.5)
	require.NotNil(t, p)
	assert.Equal(t, 3.5, *p)
}

func TestPetSchemaYAMLParses(t *testing.T) {
	var doc map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(PetSchemaYAML), &doc))
	assert.Contains(t, doc, "definitions")
	assert.Contains(t, doc, "parameters")
}

func TestWriteTempYAML(t *testing.T) {
	path := WriteTempYAML(t, map[string]any{"name": "id"})
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, "id", got["name"])
}

func TestWriteTempJSON(t *testing.T) {
	path := WriteTempJSON(t, map[string]any{"limit": 10})
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.InDelta(t, 10, got["limit"], 0)
}
