package param_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/paramprep/oaserrors"
	"github.com/erraggy/paramprep/param"
)

func titles(err error) []string {
	var out []string
	for _, e := range param.ErrorsOf(err) {
		out = append(out, e.Title)
	}
	return out
}

func pointers(err error) []string {
	var out []string
	for _, e := range param.ErrorsOf(err) {
		out = append(out, e.Pointer)
	}
	return out
}

func TestPrepareNull(t *testing.T) {
	for _, kind := range param.Kinds {
		t.Run(kind.String(), func(t *testing.T) {
			strict := param.Must(param.New(kind, "test"))
			_, err := strict.Prepare(nil, nil)
			require.Error(t, err)
			assert.Equal(t, []string{"Expected " + kind.String() + ", got null"}, titles(err))
			assert.Equal(t, []string{"/test"}, pointers(err))

			nullable := param.Must(param.New(kind, "test", param.Nullable()))
			got, err := nullable.Prepare(nil, nil)
			require.NoError(t, err)
			assert.Nil(t, got)
		})
	}
}

func TestNullableSkipsEveryStep(t *testing.T) {
	called := false
	def := param.Must(param.String("test",
		param.Nullable(),
		param.MinLength(3),
		param.Enum("abc"),
		param.WithSteps(param.Transform("spy", func(v any) (any, error) {
			called = true
			return v, nil
		})),
	))
	got, err := def.Prepare(nil, nil)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.False(t, called)
}

func TestCoercion(t *testing.T) {
	tests := []struct {
		name string
		kind param.Kind
		in   any
		want any
	}{
		{"numeric string to integer", param.KindInteger, "12", int64(12)},
		{"integral float to integer", param.KindInteger, 3.0, int64(3)},
		{"bool to integer", param.KindInteger, true, int64(1)},
		{"string to number", param.KindNumber, "1.5", 1.5},
		{"integer to number", param.KindNumber, 2, float64(2)},
		{"string to boolean", param.KindBoolean, "true", true},
		{"one to boolean", param.KindBoolean, 1, true},
		{"integer to string", param.KindString, 42, "42"},
		{"float to string", param.KindString, 1.25, "1.25"},
		{"scalar to array", param.KindArray, "x", []any{"x"}},
		{"array to object", param.KindObject, []any{"a", "b"}, map[string]any{"0": "a", "1": "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coercing := param.Must(param.New(tt.kind, "test", param.Coerce()))
			got, err := coercing.Prepare(tt.in, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.IsType(t, tt.want, got)

			if tt.kind == param.KindNumber {
				return // numbers accept integers without coercion
			}
			strict := param.Must(param.New(tt.kind, "test"))
			_, err = strict.Prepare(tt.in, nil)
			assert.ErrorIs(t, err, oaserrors.ErrPreparation)
		})
	}
}

func TestCoercionFailure(t *testing.T) {
	def := param.Must(param.Integer("test", param.Coerce()))
	_, err := def.Prepare("abc", nil)
	assert.Equal(t, []string{"Unable to cast value of type string to integer"}, titles(err))

	_, err = def.Prepare(1.5, nil)
	assert.Equal(t, []string{"Unable to cast value of type number to integer"}, titles(err))
}

func TestTypeCheckWithoutCoercion(t *testing.T) {
	def := param.Must(param.Integer("test"))
	_, err := def.Prepare("12", nil)
	assert.Equal(t, []string{"Expected integer, got string"}, titles(err))

	got, err := def.Prepare(int32(7), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(7), got)
}

func TestIntegerOutOfRange(t *testing.T) {
	for _, def := range []*param.Definition{
		param.Must(param.Integer("test")),
		param.Must(param.Integer("test", param.Coerce())),
	} {
		_, err := def.Prepare(uint64(math.MaxUint64), nil)
		errs := param.ErrorsOf(err)
		require.Len(t, errs, 1)
		assert.Equal(t, "Integer out of range", errs[0].Title)
		assert.Equal(t, "18446744073709551615 does not fit in a signed 64-bit integer", errs[0].Detail)
	}

	got, err := param.Must(param.Integer("test")).Prepare(uint64(math.MaxInt64), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), got)

	got, err = param.Must(param.Number("test")).Prepare(uint64(math.MaxUint64), nil)
	require.NoError(t, err)
	assert.InDelta(t, float64(math.MaxUint64), got, 0)
}

func TestNumberNormalization(t *testing.T) {
	def := param.Must(param.Number("test"))
	got, err := def.Prepare(3, nil)
	require.NoError(t, err)
	assert.Equal(t, float64(3), got)

	strict := param.Must(param.Number("test", param.StrictDecimal()))
	_, err = strict.Prepare(3, nil)
	assert.Equal(t, []string{"Expected number, got integer"}, titles(err))
	got, err = strict.Prepare(2.5, nil)
	require.NoError(t, err)
	assert.Equal(t, 2.5, got)
}

func TestEnum(t *testing.T) {
	def := param.Must(param.String("color", param.Enum("red", "green", 1)))

	got, err := def.Prepare("green", nil)
	require.NoError(t, err)
	assert.Equal(t, "green", got)

	got, err = def.Prepare("1", nil)
	require.NoError(t, err, "loose comparison matches the numeric member")
	assert.Equal(t, "1", got)

	_, err = def.Prepare("blue", nil)
	assert.Equal(t, []string{"Value must be one of: red, green, 1"}, titles(err))

	strict := param.Must(param.String("color", param.Enum("red", 1), param.StrictEnum()))
	_, err = strict.Prepare("1", nil)
	assert.Error(t, err)
}

func TestEnumRendersNestedValues(t *testing.T) {
	def := param.Must(param.Array("pair", param.Enum([]any{1, 2}, map[string]any{"a": []any{"b"}})))
	_, err := def.Prepare([]any{3}, nil)
	assert.Equal(t, []string{"Value must be one of: [1, 2], {a: [b]}"}, titles(err))

	got, err := def.Prepare([]any{1, 2}, nil)
	require.NoError(t, err)
	assert.Equal(t, []any{int64(1), int64(2)}, got)
}

func TestDependencies(t *testing.T) {
	def := param.Must(param.String("test", param.DependsOn("x")))

	_, err := def.Prepare("v", param.NewValues(map[string]any{"test": "v"}))
	assert.Equal(t, []string{"Missing required dependencies: x"}, titles(err))

	_, err = def.Prepare("v", param.NewValues(map[string]any{"test": "v", "x": 1}))
	assert.NoError(t, err)

	_, err = def.Prepare("v", nil)
	assert.NoError(t, err, "dependency checks are skipped without a collection")
}

func TestDependsOnAbsence(t *testing.T) {
	def := param.Must(param.String("test", param.DependsOnAbsenceOf("y", "z")))

	_, err := def.Prepare("v", param.NewValues(map[string]any{"test": "v", "y": nil}))
	assert.Equal(t, []string{"Parameter cannot be combined with: y"}, titles(err))

	_, err = def.Prepare("v", param.NewValues(map[string]any{"test": "v"}))
	assert.NoError(t, err)

	_, err = def.Prepare("v", nil)
	assert.NoError(t, err)
}

func TestDependsOnWhen(t *testing.T) {
	def := param.Must(param.String("test", param.DependsOnWhen("mode", func(other any) error {
		if other != "advanced" {
			return oaserrors.NewInvalidInput("Only allowed when mode is advanced")
		}
		return nil
	})))

	_, err := def.Prepare("v", param.NewValues(map[string]any{"mode": "basic"}))
	assert.Equal(t, []string{"Only allowed when mode is advanced"}, titles(err))

	_, err = def.Prepare("v", param.NewValues(map[string]any{"mode": "advanced"}))
	assert.NoError(t, err)
}

func TestDependencyChecksIgnoreNullable(t *testing.T) {
	def := param.Must(param.String("test", param.Nullable(), param.DependsOn("x")))
	_, err := def.Prepare(nil, param.NewValues(map[string]any{"test": nil}))
	assert.Equal(t, []string{"Missing required dependencies: x"}, titles(err))
}

func TestRulesCollectAllFailures(t *testing.T) {
	def := param.Must(param.String("test", param.MinLength(5), param.Pattern(`/^[0-9]+$/`)))
	_, err := def.Prepare("abc", nil)
	require.Len(t, param.ErrorsOf(err), 1)
	assert.Equal(t,
		`string length 3 is less than minimum 5; string does not match pattern "/^[0-9]+$/"`,
		param.ErrorsOf(err)[0].Title)
}

func TestIdempotentWithoutConstraints(t *testing.T) {
	def := param.Must(param.String("test"))
	first, err := def.Prepare("value", nil)
	require.NoError(t, err)
	second, err := def.Prepare(first, nil)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestStringSteps(t *testing.T) {
	def := param.Must(param.String("test", param.MaxLength(3)))
	got, err := def.Prepare("  abc  ", nil)
	require.NoError(t, err, "trimming runs before validation")
	assert.Equal(t, "abc", got)

	raw := param.Must(param.String("test", param.NoTrim()))
	got, err = raw.Prepare(" a ", nil)
	require.NoError(t, err)
	assert.Equal(t, " a ", got)

	clean := param.Must(param.String("test", param.Sanitize()))
	got, err = clean.Prepare(`<b>hi</b> "there"`, nil)
	require.NoError(t, err)
	assert.Equal(t, "hi &#34;there&#34;", got)

	nfc := param.Must(param.String("test", param.NormalizeUnicode(), param.MaxLength(1)))
	got, err = nfc.Prepare("e\u0301", nil)
	require.NoError(t, err)
	assert.Equal(t, "\u00e9", got)
}

func TestUserStepsRunLastInOrder(t *testing.T) {
	var order []string
	step := func(name string) param.Step {
		return param.NewStep(name, func(v any, pointer string, _ *param.Values) (any, error) {
			order = append(order, name+"@"+pointer)
			return v.(string) + name, nil
		})
	}
	def := param.Must(param.String("test", param.WithSteps(step("a"), step("b"))))
	got, err := def.Prepare("x", nil)
	require.NoError(t, err)
	assert.Equal(t, "xab", got)
	assert.Equal(t, []string{"a@/test", "b@/test"}, order)
}

func TestStepErrorsAreTranslated(t *testing.T) {
	def := param.Must(param.String("test", param.WithSteps(param.Transform("fail", func(any) (any, error) {
		return nil, errors.New("backend rejected value")
	}))))
	_, err := def.Prepare("x", nil)
	require.Error(t, err)
	assert.Equal(t, []string{"backend rejected value"}, titles(err))
	assert.Equal(t, []string{"/test"}, pointers(err))
}

func TestStepsObserveWrittenBackValue(t *testing.T) {
	var seen any
	def := param.Must(param.Integer("n", param.Coerce(), param.WithSteps(param.NewStep("peek",
		func(v any, _ string, values *param.Values) (any, error) {
			seen, _ = values.Prepared("n")
			return v, nil
		}))))
	_, err := def.Prepare("5", param.NewValues(map[string]any{"n": "5"}))
	require.NoError(t, err)
	assert.Equal(t, int64(5), seen)
}

func TestAccessors(t *testing.T) {
	def := param.Must(param.String("name",
		param.Description("The name"),
		param.MinLength(1),
		param.Enum("a", "b"),
		param.Examples("a"),
		param.Default("a"),
	))
	assert.Equal(t, "name", def.Name())
	assert.Equal(t, "/name", def.Pointer())
	assert.Equal(t, param.KindString, def.Kind())
	assert.Len(t, def.Rules(), 1)
	assert.NotEmpty(t, def.Steps())

	doc := def.Documentation()
	assert.Contains(t, doc, "The name")
	assert.Contains(t, doc, "Type: string, default a")
	assert.Contains(t, doc, "Allowed values: a, b")
	assert.Contains(t, doc, "Constraints: minLength: 1")

	c := def.Constraints()
	assert.True(t, c.HasDefault)
	assert.Equal(t, "a", c.Default)
	assert.Equal(t, 1, *c.MinLength)

	renamed := def.WithName("other")
	assert.Equal(t, "other", renamed.Name())
	assert.Equal(t, "name", def.Name())
}
