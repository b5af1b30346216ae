package commands

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"
)

func TestSetupDescribeFlags(t *testing.T) {
	fs, flags := SetupDescribeFlags()
	assert.Equal(t, OASText, flags.OAS)
	assert.Empty(t, flags.Name)

	require.NoError(t, fs.Parse([]string{"-oas", "3", "-location", "query", "-name", "limit", "params.yaml"}))
	assert.Equal(t, OAS3, flags.OAS)
	assert.Equal(t, "query", flags.Location)
	assert.Equal(t, "limit", flags.Name)
	assert.Equal(t, "params.yaml", fs.Arg(0))
}

func TestHandleDescribe_Errors(t *testing.T) {
	clearParamprepEnv(t)
	schemaPath := writeFile(t, "params.yaml", petParams)

	tests := []struct {
		name    string
		args    []string
		message string
	}{
		{"no args", []string{}, "requires exactly one schema file"},
		{"invalid oas", []string{"-oas", "4", schemaPath}, "invalid oas '4'"},
		{"unknown name", []string{"-name", "offset", schemaPath}, `parameter "offset" not found`},
		{"missing file", []string{"/nonexistent/params.yaml"}, "reading"},
		{"oas2 cookie", []string{"-oas", "2", "-l", "cookie", schemaPath}, "not an OAS 2.0 parameter location"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			captureOutput(t, "")
			err := HandleDescribe(tt.args)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}

	captureOutput(t, "")
	assert.NoError(t, HandleDescribe([]string{"--help"}))
}

func TestHandleDescribe_Text(t *testing.T) {
	clearParamprepEnv(t)
	schemaPath := writeFile(t, "params.yaml", petParams)

	out := captureOutput(t, "")
	require.NoError(t, HandleDescribe([]string{schemaPath}))

	assert.Contains(t, out.String(), "limit (integer)\n")
	assert.Contains(t, out.String(), "status (string, required)\n")
	assert.Contains(t, out.String(), "tags (array)\n")
	assert.Contains(t, out.String(), "  /tags/items/string: ")
}

func TestHandleDescribe_TextStructured(t *testing.T) {
	clearParamprepEnv(t)

	out := captureOutput(t, petParams)
	require.NoError(t, HandleDescribe([]string{"--format", "json", "-name", "status", "-"}))

	var params []DescribedParameter
	require.NoError(t, json.Unmarshal(out.Bytes(), &params))
	require.Len(t, params, 1)
	assert.Equal(t, "status", params[0].Name)
	assert.Equal(t, "string", params[0].Type)
	assert.True(t, params[0].Required)
	assert.Nil(t, params[0].Nested)
}

func TestHandleDescribe_OAS3Schemas(t *testing.T) {
	clearParamprepEnv(t)
	schemaPath := writeFile(t, "params.yaml", petParams)

	out := captureOutput(t, "")
	require.NoError(t, HandleDescribe([]string{"-oas", "3", schemaPath}))

	var doc map[string]map[string]any
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &doc))
	require.Contains(t, doc, "limit")
	assert.Equal(t, "integer", doc["limit"]["type"])
	assert.EqualValues(t, 100, doc["limit"]["maximum"])
	assert.Equal(t, []any{"available", "pending", "sold"}, doc["status"]["enum"])
	assert.Equal(t, "array", doc["tags"]["type"])
}

func TestHandleDescribe_OAS3Parameters(t *testing.T) {
	clearParamprepEnv(t)
	schemaPath := writeFile(t, "params.yaml", petParams)

	out := captureOutput(t, "")
	require.NoError(t, HandleDescribe([]string{"-oas", "3", "-l", "query", "--format", "json", schemaPath}))

	var params []map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &params))
	require.Len(t, params, 3)
	for _, p := range params {
		assert.Equal(t, "query", p["in"])
	}
	assert.Equal(t, "status", params[1]["name"])
	assert.Equal(t, true, params[1]["required"])
}

func TestHandleDescribe_OAS2(t *testing.T) {
	clearParamprepEnv(t)
	schemaPath := writeFile(t, "params.yaml", petParams)

	out := captureOutput(t, "")
	require.NoError(t, HandleDescribe([]string{"-oas", "2", "-l", "query", "-name", "tags", "--format", "json", schemaPath}))

	var params []map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &params))
	require.Len(t, params, 1)
	assert.Equal(t, "tags", params[0]["name"])
	assert.Equal(t, "array", params[0]["type"])
	assert.Equal(t, "csv", params[0]["collectionFormat"])
}
