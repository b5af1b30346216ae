package openapi_test

import (
	"context"
	"errors"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/paramprep/format"
	"github.com/erraggy/paramprep/oaserrors"
	"github.com/erraggy/paramprep/openapi"
	"github.com/erraggy/paramprep/param"
	"github.com/erraggy/paramprep/request"
)

func person() *param.Definition {
	return param.Must(param.Object("person",
		param.Description("A person"),
		param.Properties(
			param.Must(param.String("firstName", param.Required(), param.MinLength(1), param.MaxLength(20))),
			param.Must(param.Integer("age", param.Minimum(0), param.ExclusiveMaximum(150))),
			param.Must(param.Array("tags", param.Items(param.Must(param.String(""))), param.UniqueItems(), param.MaxItems(5))),
		),
		param.AdditionalProperties(false),
	))
}

func TestToSchemaString(t *testing.T) {
	def := param.Must(param.String("name",
		param.MinLength(2),
		param.MaxLength(10),
		param.Pattern("^[a-z]+$"),
		param.Enum("abc", "xyz"),
		param.Default("abc"),
		param.Nullable(),
		param.Deprecated(),
	))

	s := openapi.ToSchema(def)
	require.NoError(t, s.Validate(context.Background()))
	assert.True(t, s.Type.Is(openapi3.TypeString))
	assert.Equal(t, uint64(2), s.MinLength)
	require.NotNil(t, s.MaxLength)
	assert.Equal(t, uint64(10), *s.MaxLength)
	assert.Equal(t, "^[a-z]+$", s.Pattern)
	assert.Equal(t, []any{"abc", "xyz"}, s.Enum)
	assert.Equal(t, "abc", s.Default)
	assert.True(t, s.Nullable)
	assert.True(t, s.Deprecated)
}

func TestToSchemaNumeric(t *testing.T) {
	def := param.Must(param.Number("price",
		param.ExclusiveMinimum(0),
		param.Maximum(1000),
		param.MultipleOf(0.5),
		param.ReadOnly(),
	))

	s := openapi.ToSchema(def)
	require.NoError(t, s.Validate(context.Background()))
	require.NotNil(t, s.Min)
	assert.Equal(t, 0.0, *s.Min)
	assert.True(t, s.ExclusiveMin)
	require.NotNil(t, s.Max)
	assert.Equal(t, 1000.0, *s.Max)
	assert.False(t, s.ExclusiveMax)
	require.NotNil(t, s.MultipleOf)
	assert.Equal(t, 0.5, *s.MultipleOf)
	assert.True(t, s.ReadOnly)

	assert.NoError(t, s.VisitJSON(12.5))
	assert.Error(t, s.VisitJSON(0.0))
	assert.Error(t, s.VisitJSON(12.3))
}

func TestToSchemaObject(t *testing.T) {
	s := openapi.ToSchema(person())
	require.NoError(t, s.Validate(context.Background()))

	assert.True(t, s.Type.Is(openapi3.TypeObject))
	assert.Equal(t, "A person", s.Description)
	assert.Equal(t, []string{"firstName"}, s.Required)
	require.NotNil(t, s.AdditionalProperties.Has)
	assert.False(t, *s.AdditionalProperties.Has)
	require.Contains(t, s.Properties, "tags")
	assert.True(t, s.Properties["tags"].Value.UniqueItems)
	assert.True(t, s.Properties["tags"].Value.Items.Value.Type.Is(openapi3.TypeString))

	tests := []struct {
		name  string
		input map[string]any
		valid bool
	}{
		{"complete", map[string]any{"firstName": "Ada", "age": 36, "tags": []any{"math"}}, true},
		{"missing required", map[string]any{"age": 36}, false},
		{"age out of range", map[string]any{"firstName": "Ada", "age": 150}, false},
		{"additional property", map[string]any{"firstName": "Ada", "nick": "A"}, false},
		{"duplicate tags", map[string]any{"firstName": "Ada", "tags": []any{"x", "x"}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.VisitJSON(tt.input)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestToSchemaArrayItems(t *testing.T) {
	t.Run("no items accept anything", func(t *testing.T) {
		s := openapi.ToSchema(param.Must(param.Array("any")))
		require.NoError(t, s.Validate(context.Background()))
		require.NotNil(t, s.Items)
		assert.True(t, s.Items.Value.IsEmpty())
	})

	t.Run("several items become anyOf", func(t *testing.T) {
		s := openapi.ToSchema(param.Must(param.Array("mixed", param.Items(
			param.Must(param.String("", param.MaxLength(3))),
			param.Must(param.Integer("")),
		))))
		require.NoError(t, s.Validate(context.Background()))
		require.Len(t, s.Items.Value.AnyOf, 2)
		assert.NoError(t, s.VisitJSON([]any{"abc", 4}))
		assert.Error(t, s.VisitJSON([]any{"abcd"}))
	})
}

func TestToSchemaFormat(t *testing.T) {
	s := openapi.ToSchema(param.Must(param.String("id", param.WithFormat(format.UUID()))))
	assert.Equal(t, "uuid", s.Format)
	assert.NoError(t, s.Validate(context.Background()))
}

func TestToParameter(t *testing.T) {
	tags := param.Must(param.Array("tags", param.Items(param.Must(param.String("")))))
	id := param.Must(param.Integer("petId", param.Minimum(1)))

	t.Run("query array", func(t *testing.T) {
		p, err := openapi.ToParameter(tags, request.LocationQuery)
		require.NoError(t, err)
		require.NoError(t, p.Validate(context.Background()))
		assert.Equal(t, openapi3.ParameterInQuery, p.In)
		assert.Equal(t, openapi3.SerializationForm, p.Style)
		require.NotNil(t, p.Explode)
		assert.False(t, *p.Explode)
		assert.False(t, p.Required)
	})

	t.Run("path parameters are required", func(t *testing.T) {
		p, err := openapi.ToParameter(id, request.LocationPath)
		require.NoError(t, err)
		require.NoError(t, p.Validate(context.Background()))
		assert.True(t, p.Required)
		assert.Contains(t, p.Description, "minimum: 1")
	})

	t.Run("header array", func(t *testing.T) {
		p, err := openapi.ToParameter(tags, request.LocationHeader)
		require.NoError(t, err)
		assert.Equal(t, openapi3.SerializationSimple, p.Style)
	})

	t.Run("body is not a parameter", func(t *testing.T) {
		_, err := openapi.ToParameter(id, request.LocationBody)
		require.Error(t, err)
		assert.True(t, errors.Is(err, oaserrors.ErrConfig))
	})
}

func TestOperation(t *testing.T) {
	op := &request.Operation{
		Path:   []*param.Definition{param.Must(param.Integer("petId", param.Required()))},
		Query:  []*param.Definition{param.Must(param.Boolean("verbose"))},
		Header: []*param.Definition{param.Must(param.String("X-Request-Id"))},
		Body:   person().WithName(""),
	}

	out, err := openapi.Operation(op)
	require.NoError(t, err)
	require.Len(t, out.Parameters, 3)
	assert.Equal(t, "petId", out.Parameters[0].Value.Name)
	assert.Equal(t, openapi3.ParameterInPath, out.Parameters[0].Value.In)
	assert.Equal(t, "verbose", out.Parameters[1].Value.Name)
	assert.Equal(t, "X-Request-Id", out.Parameters[2].Value.Name)

	require.NotNil(t, out.RequestBody)
	media := out.RequestBody.Value.Content.Get("application/json")
	require.NotNil(t, media)
	assert.True(t, media.Schema.Value.Type.Is(openapi3.TypeObject))
}
