package request

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/erraggy/paramprep/oaserrors"
	"github.com/erraggy/paramprep/param"
)

type resultKey struct{}

// FromContext returns the Result stored by Router.Middleware.
func FromContext(ctx context.Context) (*Result, bool) {
	res, ok := ctx.Value(resultKey{}).(*Result)
	return res, ok
}

// NewContext returns a copy of ctx carrying res.
func NewContext(ctx context.Context, res *Result) context.Context {
	return context.WithValue(ctx, resultKey{}, res)
}

// Problem is the JSON document written for rejected requests.
type Problem struct {
	Title  string        `json:"title"`
	Status int           `json:"status"`
	Errors []param.Error `json:"errors,omitempty"`
}

// Middleware prepares every request before next runs.
//
// Unroutable requests get 404 (405 with an Allow header for a wrong method);
// preparation failures get 400 with a Problem body; other failures get 500.
// On success the Result is available to next through FromContext.
func (r *Router) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		res, err := r.Prepare(req)
		if err == nil {
			next.ServeHTTP(w, req.WithContext(NewContext(req.Context(), res)))
			return
		}

		var mna *MethodNotAllowedError
		switch {
		case errors.As(err, &mna):
			w.Header().Set("Allow", strings.Join(mna.Allowed, ", "))
			writeProblem(w, Problem{Title: "Method not allowed", Status: http.StatusMethodNotAllowed})
		case errors.Is(err, oaserrors.ErrNotFound):
			writeProblem(w, Problem{Title: "Not found", Status: http.StatusNotFound})
		case errors.Is(err, oaserrors.ErrPreparation):
			writeProblem(w, Problem{Title: "Invalid request", Status: http.StatusBadRequest, Errors: param.ErrorsOf(err)})
		default:
			writeProblem(w, Problem{Title: "Internal error", Status: http.StatusInternalServerError})
		}
	})
}

func writeProblem(w http.ResponseWriter, p Problem) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	_ = json.NewEncoder(w).Encode(p)
}
