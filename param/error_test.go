package param

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/paramprep/oaserrors"
)

func TestNewErrorNormalizesPointer(t *testing.T) {
	tests := []struct {
		pointer, want string
	}{
		{"", ""},
		{"/", ""},
		{"test", "/test"},
		{"/test/person/", "/test/person"},
		{"//a//", "/a"},
	}
	for _, tt := range tests {
		e := NewError("bad", tt.pointer)
		assert.Equal(t, tt.want, e.Pointer, tt.pointer)
		assert.Equal(t, DefaultErrorCode, e.Code)
	}
}

func TestErrorCopies(t *testing.T) {
	orig := NewError("bad", "/a")
	moved := orig.WithPointer("b/c/").WithDetail("more").WithCode("400").WithExtra("k", 1)

	assert.Equal(t, "/a", orig.Pointer)
	assert.Empty(t, orig.Detail)
	assert.Nil(t, orig.Extra)

	assert.Equal(t, "/b/c", moved.Pointer)
	assert.Equal(t, "more", moved.Detail)
	assert.Equal(t, "400", moved.Code)
	assert.Equal(t, map[string]any{"k": 1}, moved.Extra)

	again := moved.WithExtra("j", 2)
	assert.Len(t, moved.Extra, 1, "WithExtra must not mutate the receiver")
	assert.Len(t, again.Extra, 2)
}

func TestPreparationErrorMessage(t *testing.T) {
	err := newPreparationError(
		NewError("one", "/a"),
		NewError("two", "/b"),
		NewError("three", ""),
		NewError("four", "/d"),
	)
	assert.Equal(t, "preparation failed: /a: one; /b: two; three (and 1 more)", err.Error())
	assert.True(t, errors.Is(err, oaserrors.ErrPreparation))
	assert.Equal(t, "preparation failed", (&PreparationError{}).Error())
}

func TestErrorsOf(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", newPreparationError(NewError("x", "/y")))
	errs := ErrorsOf(err)
	require.Len(t, errs, 1)
	assert.Equal(t, "/y", errs[0].Pointer)
	assert.Nil(t, ErrorsOf(errors.New("plain")))
}

func TestTranslate(t *testing.T) {
	t.Run("invalid input keeps message and detail", func(t *testing.T) {
		pe := translate(&oaserrors.InvalidInputError{Message: "bad data", Detail: "why"}, "/p")
		require.Len(t, pe.Errors, 1)
		assert.Equal(t, "bad data", pe.Errors[0].Title)
		assert.Equal(t, "why", pe.Errors[0].Detail)
		assert.Equal(t, "/p", pe.Errors[0].Pointer)
	})

	t.Run("preparation error passes through", func(t *testing.T) {
		inner := newPreparationError(NewError("child", "/p/0"))
		assert.Same(t, inner, translate(inner, "/p"))
	})

	t.Run("other errors become titles", func(t *testing.T) {
		pe := translate(errors.New("boom"), "p")
		assert.Equal(t, "boom", pe.Errors[0].Title)
		assert.Equal(t, "/p", pe.Errors[0].Pointer)
	})
}

func TestCollectorKeepsCause(t *testing.T) {
	limit := &oaserrors.ResourceLimitError{ResourceType: "nesting_depth", Limit: 1}
	var c collector
	c.add(&PreparationError{Errors: []Error{NewError("deep", "/a")}, cause: limit})
	c.add(newPreparationError(NewError("other", "/b")))

	err := c.err()
	require.Error(t, err)
	assert.Len(t, ErrorsOf(err), 2)
	assert.ErrorIs(t, err, oaserrors.ErrResourceLimit)
	assert.ErrorIs(t, err, oaserrors.ErrPreparation)
}

func TestReroot(t *testing.T) {
	err := newPreparationError(NewError("bad", "/limit"), NewError("worse", ""))
	got := Reroot(err, "/query")
	assert.Equal(t, []string{"/query/limit", "/query"}, []string{ErrorsOf(got)[0].Pointer, ErrorsOf(got)[1].Pointer})
	assert.Equal(t, "/limit", err.Errors[0].Pointer, "the original is unchanged")

	plain := errors.New("io failure")
	assert.Same(t, plain, Reroot(plain, "/body"))
}

func TestJoinErrors(t *testing.T) {
	assert.NoError(t, JoinErrors(nil, nil))

	limited := &PreparationError{
		Errors: []Error{NewError("too deep", "/a")},
		cause:  &oaserrors.ResourceLimitError{ResourceType: "nesting_depth", Limit: 1, Actual: 2},
	}
	err := JoinErrors(newPreparationError(NewError("one", "/x")), nil, limited, errors.New("raw"))
	require.Error(t, err)
	assert.Len(t, ErrorsOf(err), 3)
	assert.ErrorIs(t, err, oaserrors.ErrResourceLimit)
	assert.Equal(t, "raw", ErrorsOf(err)[2].Title)
}
