package pathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"/", ""},
		{"//", ""},
		{"test", "/test"},
		{"/test/", "/test"},
		{"test/person/firstName/", "/test/person/firstName"},
		{"///a/b///", "/a/b"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "/test/person", Join("/test", "person"))
	assert.Equal(t, "/test/3", JoinIndex("test", 3))
	assert.Equal(t, "/a~1b/c~0d", Join("", "a/b", "c~d"))
	assert.Equal(t, "/root", Join("/root/"))
}

func TestPrefix(t *testing.T) {
	assert.Equal(t, "/query/limit", Prefix("query", "/limit"))
	assert.Equal(t, "/query", Prefix("/query", ""))
	assert.Equal(t, "/limit", Prefix("", "limit"))
	assert.Equal(t, "", Prefix("", ""))
}

func TestTokensRoundTrip(t *testing.T) {
	p := Join("", "a/b", "c~d", "0")
	assert.Equal(t, []string{"a/b", "c~d", "0"}, Tokens(p))
	assert.Nil(t, Tokens("/"))
}

func TestDefinitionRef(t *testing.T) {
	ref := DefinitionRef("Pet")
	assert.Equal(t, "#/definitions/Pet", ref)

	name, ok := DefinitionName(ref)
	assert.True(t, ok)
	assert.Equal(t, "Pet", name)

	_, ok = DefinitionName("#/components/schemas/Pet")
	assert.False(t, ok)
	_, ok = DefinitionName(RefPrefixDefinitions)
	assert.False(t, ok)
}
