package request

import (
	"fmt"
	"net/http"
	"regexp"
	"sort"
	"strings"

	"github.com/erraggy/paramprep/oaserrors"
)

// route matches request paths against one path template such as
// "/pets/{petId}" and extracts the parameter segments.
type route struct {
	template string
	regex    *regexp.Regexp
	names    []string

	// specificity orders routes: literal characters raise it, parameters lower it.
	specificity int

	operations map[string]*Operation
}

func newRoute(template string) (*route, error) {
	if template == "" {
		return nil, fmt.Errorf("path template cannot be empty")
	}

	var re strings.Builder
	re.WriteString("^")
	var names []string
	specificity := 0

	for i := 0; i < len(template); {
		if template[i] != '{' {
			c := template[i]
			if strings.IndexByte(`\.+*?()|[]{}^$`, c) >= 0 {
				re.WriteByte('\\')
			}
			re.WriteByte(c)
			if c != '/' {
				specificity++
			}
			i++
			continue
		}

		end := strings.IndexByte(template[i:], '}')
		if end == -1 {
			return nil, fmt.Errorf("unclosed path parameter at position %d in template %q", i, template)
		}
		name := template[i+1 : i+end]
		if name == "" {
			return nil, fmt.Errorf("empty path parameter at position %d in template %q", i, template)
		}
		for _, existing := range names {
			if existing == name {
				return nil, fmt.Errorf("duplicate path parameter %q in template %q", name, template)
			}
		}
		names = append(names, name)
		re.WriteString("([^/]+)")
		specificity--
		i += end + 1
	}
	re.WriteString("$")

	regex, err := regexp.Compile(re.String())
	if err != nil {
		return nil, fmt.Errorf("failed to compile path pattern for template %q: %w", template, err)
	}
	return &route{
		template:    template,
		regex:       regex,
		names:       names,
		specificity: specificity,
		operations:  make(map[string]*Operation),
	}, nil
}

// match reports whether path matches and returns the raw parameter segments.
func (r *route) match(path string) (map[string]string, bool) {
	m := r.regex.FindStringSubmatch(path)
	if m == nil || len(m) != len(r.names)+1 {
		return nil, false
	}
	params := make(map[string]string, len(r.names))
	for i, name := range r.names {
		params[name] = m[i+1]
	}
	return params, true
}

// Router maps path templates and methods to operations.
//
// Register every route with Handle before serving; matching is safe for
// concurrent use once registration is complete.
type Router struct {
	routes []*route
	opts   []Option
}

// NewRouter creates an empty router. opts apply to every Prepare call.
func NewRouter(opts ...Option) (*Router, error) {
	if _, err := newConfig(opts); err != nil {
		return nil, err
	}
	return &Router{opts: opts}, nil
}

// Handle registers op for method on the path template.
//
// Every "{name}" segment of the template must be declared in op.Path.
func (r *Router) Handle(method, template string, op *Operation) error {
	if op == nil {
		return &oaserrors.ConfigError{Option: "Handle", Value: template, Message: "operation cannot be nil"}
	}
	method = strings.ToUpper(method)

	var rt *route
	for _, existing := range r.routes {
		if existing.template == template {
			rt = existing
			break
		}
	}
	if rt == nil {
		var err error
		if rt, err = newRoute(template); err != nil {
			return &oaserrors.ConfigError{Option: "Handle", Value: template, Message: "invalid path template", Cause: err}
		}
	}
	if _, dup := rt.operations[method]; dup {
		return &oaserrors.ConfigError{Option: "Handle", Value: method + " " + template, Message: "operation already registered"}
	}

	declared := make(map[string]bool, len(op.Path))
	for _, d := range op.Path {
		declared[d.Name()] = true
	}
	for _, name := range rt.names {
		if !declared[name] {
			return &oaserrors.ConfigError{Parameter: name, Option: "Handle", Value: template, Message: "path parameter is not declared by the operation"}
		}
	}

	rt.operations[method] = op
	if len(rt.operations) == 1 {
		r.routes = append(r.routes, rt)
		// Most specific first, then longest, then alphabetical for stability.
		sort.SliceStable(r.routes, func(i, j int) bool {
			a, b := r.routes[i], r.routes[j]
			if a.specificity != b.specificity {
				return a.specificity > b.specificity
			}
			if len(a.template) != len(b.template) {
				return len(a.template) > len(b.template)
			}
			return a.template < b.template
		})
	}
	return nil
}

// Templates returns the registered templates in match order.
func (r *Router) Templates() []string {
	out := make([]string, len(r.routes))
	for i, rt := range r.routes {
		out[i] = rt.template
	}
	return out
}

// Match finds the operation for method and path.
// It returns oaserrors.ErrNotFound when no template matches, and an
// *MethodNotAllowedError when the template has no operation for method.
func (r *Router) Match(method, path string) (*Operation, string, map[string]string, error) {
	for _, rt := range r.routes {
		params, ok := rt.match(path)
		if !ok {
			continue
		}
		if op, ok := rt.operations[strings.ToUpper(method)]; ok {
			return op, rt.template, params, nil
		}
		allowed := make([]string, 0, len(rt.operations))
		for m := range rt.operations {
			allowed = append(allowed, m)
		}
		sort.Strings(allowed)
		return nil, rt.template, nil, &MethodNotAllowedError{Method: method, Template: rt.template, Allowed: allowed}
	}
	return nil, "", nil, fmt.Errorf("no matching path found for %s: %w", path, oaserrors.ErrNotFound)
}

// Prepare routes req and prepares its parameters.
func (r *Router) Prepare(req *http.Request) (*Result, error) {
	op, template, params, err := r.Match(req.Method, req.URL.Path)
	if err != nil {
		return nil, err
	}
	res, err := op.Prepare(req, params, r.opts...)
	if res != nil {
		res.MatchedPath = template
	}
	return res, err
}

// MethodNotAllowedError reports a path that matched without an operation for the method.
type MethodNotAllowedError struct {
	Method   string
	Template string
	Allowed  []string
}

func (e *MethodNotAllowedError) Error() string {
	return fmt.Sprintf("method %s not allowed for path %s", e.Method, e.Template)
}

// Is matches oaserrors.ErrNotFound: no operation exists for the request.
func (e *MethodNotAllowedError) Is(target error) bool {
	return target == oaserrors.ErrNotFound
}
