package request

// Result holds the prepared parameters of a request, by location.
type Result struct {
	// MatchedPath is the path template that matched the request, when routed.
	MatchedPath string

	// Method is the HTTP method of the request.
	Method string

	Path   map[string]any
	Query  map[string]any
	Header map[string]any
	Cookie map[string]any

	// Body is the prepared body, or nil when the operation declares none or
	// the request carried none.
	Body any
}

func newResult(method string) *Result {
	return &Result{
		Method: method,
		Path:   make(map[string]any),
		Query:  make(map[string]any),
		Header: make(map[string]any),
		Cookie: make(map[string]any),
	}
}

// Location returns the prepared values of one location.
// The body is returned under its own key "body" when present.
func (r *Result) Location(loc Location) map[string]any {
	switch loc {
	case LocationPath:
		return r.Path
	case LocationQuery:
		return r.Query
	case LocationHeader:
		return r.Header
	case LocationCookie:
		return r.Cookie
	case LocationBody:
		if r.Body == nil {
			return map[string]any{}
		}
		return map[string]any{"body": r.Body}
	}
	return nil
}
