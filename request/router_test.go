package request

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/paramprep/oaserrors"
	"github.com/erraggy/paramprep/param"
)

func TestNewRoute(t *testing.T) {
	t.Run("literal path", func(t *testing.T) {
		rt, err := newRoute("/pets")
		require.NoError(t, err)
		assert.Empty(t, rt.names)
		_, ok := rt.match("/pets")
		assert.True(t, ok)
	})

	t.Run("multiple parameters", func(t *testing.T) {
		rt, err := newRoute("/users/{userId}/posts/{postId}")
		require.NoError(t, err)
		assert.Equal(t, []string{"userId", "postId"}, rt.names)
		params, ok := rt.match("/users/1/posts/2")
		require.True(t, ok)
		assert.Equal(t, map[string]string{"userId": "1", "postId": "2"}, params)
	})

	t.Run("escapes regex characters", func(t *testing.T) {
		rt, err := newRoute("/api.v1/users")
		require.NoError(t, err)
		_, ok := rt.match("/apiXv1/users")
		assert.False(t, ok)
	})

	t.Run("parameters do not cross segments", func(t *testing.T) {
		rt, err := newRoute("/pets/{petId}")
		require.NoError(t, err)
		_, ok := rt.match("/pets/1/toys")
		assert.False(t, ok)
	})

	for _, tc := range []struct{ template, msg string }{
		{"", "cannot be empty"},
		{"/pets/{petId", "unclosed"},
		{"/pets/{}", "empty path parameter"},
		{"/users/{id}/posts/{id}", "duplicate"},
	} {
		t.Run("rejects "+tc.template, func(t *testing.T) {
			_, err := newRoute(tc.template)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
}

func testRouter(t *testing.T) *Router {
	t.Helper()
	r, err := NewRouter()
	require.NoError(t, err)

	byID := &Operation{Path: []*param.Definition{
		param.Must(param.Integer("petId", param.Required(), param.Coerce())),
	}}
	require.NoError(t, r.Handle(http.MethodGet, "/pets/{petId}", byID))
	require.NoError(t, r.Handle(http.MethodDelete, "/pets/{petId}", byID))
	require.NoError(t, r.Handle("get", "/pets/mine", &Operation{}))
	return r
}

func TestRouterPrefersLiteralTemplates(t *testing.T) {
	r := testRouter(t)
	assert.Equal(t, []string{"/pets/mine", "/pets/{petId}"}, r.Templates())

	_, template, _, err := r.Match(http.MethodGet, "/pets/mine")
	require.NoError(t, err)
	assert.Equal(t, "/pets/mine", template)
}

func TestRouterMatchErrors(t *testing.T) {
	r := testRouter(t)

	_, _, _, err := r.Match(http.MethodGet, "/owners")
	assert.ErrorIs(t, err, oaserrors.ErrNotFound)

	_, _, _, err = r.Match(http.MethodPost, "/pets/1")
	var mna *MethodNotAllowedError
	require.True(t, errors.As(err, &mna))
	assert.Equal(t, []string{"DELETE", "GET"}, mna.Allowed)
	assert.ErrorIs(t, err, oaserrors.ErrNotFound)
}

func TestRouterHandleErrors(t *testing.T) {
	r := testRouter(t)
	tests := []struct {
		name     string
		method   string
		template string
		op       *Operation
	}{
		{"nil operation", http.MethodGet, "/x", nil},
		{"bad template", http.MethodGet, "/x/{", &Operation{}},
		{"duplicate operation", http.MethodGet, "/pets/{petId}", &Operation{Path: []*param.Definition{param.Must(param.String("petId"))}}},
		{"undeclared path parameter", http.MethodGet, "/owners/{ownerId}", &Operation{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := r.Handle(tt.method, tt.template, tt.op)
			assert.ErrorIs(t, err, oaserrors.ErrConfig)
		})
	}
	assert.Len(t, r.Templates(), 2)
}

func TestRouterPrepare(t *testing.T) {
	r := testRouter(t)
	res, err := r.Prepare(httptest.NewRequest(http.MethodGet, "/pets/42", nil))
	require.NoError(t, err)
	assert.Equal(t, "/pets/{petId}", res.MatchedPath)
	assert.Equal(t, int64(42), res.Path["petId"])

	res, err = r.Prepare(httptest.NewRequest(http.MethodGet, "/pets/x", nil))
	require.Error(t, err)
	assert.Equal(t, "/pets/{petId}", res.MatchedPath)
	assert.Equal(t, "/path/petId", param.ErrorsOf(err)[0].Pointer)
}

func TestMiddleware(t *testing.T) {
	r := testRouter(t)
	var seen *Result
	h := r.Middleware(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		seen, _ = FromContext(req.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name   string
		method string
		target string
		status int
		title  string
	}{
		{"prepared", http.MethodGet, "/pets/5", http.StatusNoContent, ""},
		{"invalid", http.MethodGet, "/pets/five", http.StatusBadRequest, "Invalid request"},
		{"unknown path", http.MethodGet, "/owners", http.StatusNotFound, "Not found"},
		{"wrong method", http.MethodPut, "/pets/5", http.StatusMethodNotAllowed, "Method not allowed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.target, nil))
			assert.Equal(t, tt.status, rec.Code)
			if tt.title == "" {
				require.NotNil(t, seen)
				assert.Equal(t, int64(5), seen.Path["petId"])
				return
			}
			assert.Nil(t, seen)
			assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
			var p Problem
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
			assert.Equal(t, tt.title, p.Title)
			assert.Equal(t, tt.status, p.Status)
		})
	}
}

func TestMiddlewareProblemListsErrors(t *testing.T) {
	r := testRouter(t)
	rec := httptest.NewRecorder()
	r.Middleware(http.NotFoundHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/pets/five", nil))

	var p Problem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	require.Len(t, p.Errors, 1)
	assert.Equal(t, "/path/petId", p.Errors[0].Pointer)
	assert.Equal(t, "Unable to cast value of type string to integer", p.Errors[0].Title)
}

func TestMiddlewareAllowHeader(t *testing.T) {
	r := testRouter(t)
	rec := httptest.NewRecorder()
	r.Middleware(http.NotFoundHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/pets/1", nil))
	assert.Equal(t, "DELETE, GET", rec.Header().Get("Allow"))
}
