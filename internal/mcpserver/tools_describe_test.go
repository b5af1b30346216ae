package mcpserver

import (
	"context"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-openapi/spec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleDescribe_Text(t *testing.T) {
	schemaCache.reset()
	result, out, err := handleDescribe(context.Background(), nil, describeInput{
		Schema: schemaInput{Content: petParams},
	})
	require.NoError(t, err)
	require.Nil(t, result)
	assert.Equal(t, "text", out.Format)
	require.Equal(t, 3, out.Count)

	limit := out.Parameters[0]
	assert.Equal(t, "limit", limit.Name)
	assert.Equal(t, "integer", limit.Type)
	assert.Contains(t, limit.Documentation, "maximum: 100")

	tags := out.Parameters[2]
	assert.Contains(t, tags.Nested, "/tags/items/string")
}

func TestHandleDescribe_OAS3(t *testing.T) {
	schemaCache.reset()
	_, out, err := handleDescribe(context.Background(), nil, describeInput{
		Schema:   schemaInput{Content: petParams},
		Format:   "oas3",
		Location: "query",
		Name:     "status",
	})
	require.NoError(t, err)
	require.Equal(t, 1, out.Count)

	s, ok := out.Parameters[0].Schema.(*openapi3.Schema)
	require.True(t, ok)
	assert.Equal(t, []any{"available", "pending", "sold"}, s.Enum)

	p, ok := out.Parameters[0].Parameter.(*openapi3.Parameter)
	require.True(t, ok)
	assert.Equal(t, "query", p.In)
	assert.True(t, p.Required)
}

func TestHandleDescribe_OAS2(t *testing.T) {
	schemaCache.reset()
	_, out, err := handleDescribe(context.Background(), nil, describeInput{
		Schema: schemaInput{Content: petParams},
		Format: "oas2",
		Name:   "tags",
	})
	require.NoError(t, err)
	p, ok := out.Parameters[0].Parameter.(*spec.Parameter)
	require.True(t, ok)
	assert.Equal(t, "query", p.In)
	assert.Equal(t, "csv", p.CollectionFormat)
}

func TestHandleDescribe_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input describeInput
	}{
		{"invalid format", describeInput{Schema: schemaInput{Content: petParams}, Format: "markdown"}},
		{"invalid location", describeInput{Schema: schemaInput{Content: petParams}, Format: "oas2", Location: "form"}},
		{"unknown name", describeInput{Schema: schemaInput{Content: petParams}, Name: "missing"}},
		{"cookie in oas2", describeInput{Schema: schemaInput{Content: petParams}, Format: "oas2", Location: "cookie"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schemaCache.reset()
			result, _, err := handleDescribe(context.Background(), nil, tt.input)
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.True(t, result.IsError)
		})
	}
}
