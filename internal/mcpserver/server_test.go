package mcpserver

import (
	"errors"
	"math"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func issues(n int) []prepareIssue {
	out := make([]prepareIssue, n)
	for i := range out {
		out[i] = prepareIssue{Pointer: "/tags/" + string(rune('a'+i%26)), Title: "Too short"}
	}
	return out
}

func TestPaginateIssues(t *testing.T) {
	five := issues(5)

	tests := []struct {
		name   string
		items  []prepareIssue
		offset int
		limit  int
		want   []prepareIssue
	}{
		{"default limit", five, 0, 0, five},
		{"negative limit uses default", five, 0, -3, five},
		{"first page", five, 0, 2, five[:2]},
		{"middle page", five, 2, 2, five[2:4]},
		{"short last page", five, 4, 2, five[4:]},
		{"past the end", five, 5, 2, nil},
		{"negative offset", five, -1, 2, nil},
		{"no errors", nil, 0, 10, nil},
		{"overflowing limit", five, 3, math.MaxInt, five[3:]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, paginate(tt.items, tt.offset, tt.limit))
		})
	}
}

func TestPaginateLimits(t *testing.T) {
	many := issues(1500)

	assert.Len(t, paginate(many, 0, 0), cfg.ErrorLimit)
	assert.Len(t, paginate(many, 0, 1500), cfg.MaxLimit)
}

func TestMakeSlice(t *testing.T) {
	assert.Nil(t, makeSlice[prepareIssue](0))

	s := makeSlice[prepareIssue](3)
	assert.Empty(t, s)
	assert.Equal(t, 3, cap(s))
}

func TestSanitizeError(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{
			errors.New("schema: reading /home/dev/api/params.yaml: no such file or directory"),
			"schema: reading <path>: no such file or directory",
		},
		{
			errors.New(`configuration error in parameter "limit" for type: unknown parameter type tuple`),
			`configuration error in parameter "limit" for type: unknown parameter type tuple`,
		},
		{
			errors.New("$ref /tmp/a.yaml points at /tmp/b.yaml"),
			"$ref <path> points at <path>",
		},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeError(tt.err))
	}
}

func TestErrResult(t *testing.T) {
	res := errResult(errors.New("schema: reading /var/params.yaml: denied"))
	require.True(t, res.IsError)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	assert.Equal(t, "schema: reading <path>: denied", text.Text)
}
