package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExprRule(t *testing.T) {
	r, err := Expr(`value % 2 == 0`, "value must be even")
	require.NoError(t, err)

	assert.NoError(t, r.Check(4))
	assert.EqualError(t, r.Check(3), "value must be even")
	assert.Equal(t, "expression: value % 2 == 0", r.Description())
}

func TestExprRuleDefaultMessage(t *testing.T) {
	r, err := Expr(`len(value) > 1`, "")
	require.NoError(t, err)
	assert.EqualError(t, r.Check("a"), `value does not satisfy "len(value) > 1"`)
}

func TestExprRuleStringFunctions(t *testing.T) {
	r, err := Expr(`value startsWith "ab"`, "")
	require.NoError(t, err)
	ok, err := r.Eval("abc")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestExprRuleCompileErrors(t *testing.T) {
	_, err := Expr("", "")
	assert.Error(t, err)

	_, err = Expr(`value +* 2`, "")
	assert.Error(t, err)
}

func TestExprRuleValueIsUntyped(t *testing.T) {
	tests := []struct {
		expression string
		value      any
		want       bool
	}{
		{`value > 3`, int64(4), true},
		{`value > 3`, 2.5, false},
		{`value % 2 == 0`, 4, true},
		{`value in ["a", "b"]`, "b", true},
		{`len(value) == 2`, []any{1, 2}, true},
		{`value.name == "Rex"`, map[string]any{"name": "Rex"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.expression, func(t *testing.T) {
			r, err := Expr(tt.expression, "")
			require.NoError(t, err)
			ok, err := r.Eval(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestExprRuleUnknownVariable(t *testing.T) {
	_, err := Expr(`other > 1`, "")
	assert.Error(t, err)
}
