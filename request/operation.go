package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"

	"github.com/erraggy/paramprep/internal/pathutil"
	"github.com/erraggy/paramprep/oaserrors"
	"github.com/erraggy/paramprep/param"
)

// Operation declares the parameters of one endpoint by location.
// An Operation is read-only once in use and safe for concurrent Prepare calls.
type Operation struct {
	Path   []*param.Definition
	Query  []*param.Definition
	Header []*param.Definition
	Cookie []*param.Definition

	// Body prepares the JSON request body. Its name is ignored: body errors
	// are addressed from "/body".
	Body *param.Definition
}

// Definitions returns the declared definitions of a non-body location.
func (o *Operation) Definitions(loc Location) []*param.Definition {
	switch loc {
	case LocationPath:
		return o.Path
	case LocationQuery:
		return o.Query
	case LocationHeader:
		return o.Header
	case LocationCookie:
		return o.Cookie
	}
	return nil
}

// Prepare extracts and prepares every declared parameter of req.
//
// pathParams holds the raw path segments matched by the router. Query values
// repeated in the URL become arrays; header lookup is case-insensitive; the
// body is decoded as JSON with numbers preserved.
//
// Every location is prepared even when an earlier one fails. Preparation
// failures are returned as one *param.PreparationError together with the
// partial Result; configuration and I/O problems are returned as plain errors.
func (o *Operation) Prepare(req *http.Request, pathParams map[string]string, opts ...Option) (*Result, error) {
	if req == nil {
		return nil, fmt.Errorf("request: request cannot be nil")
	}
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	res := newResult(req.Method)
	var failures []error

	for _, loc := range []Location{LocationPath, LocationQuery, LocationHeader, LocationCookie} {
		defs := o.Definitions(loc)
		raw := extract(loc, req, pathParams, defs)
		if loc == LocationQuery && cfg.strictQuery {
			failures = append(failures, unknownQuery(raw, defs))
		}
		if len(defs) == 0 {
			continue
		}

		batch, err := param.NewBatch(ContextFor(loc, cfg.contextOptions()...), defs...)
		if err != nil {
			return nil, fmt.Errorf("request: %s parameters: %w", loc, err)
		}
		values, err := batch.Prepare(raw)
		if err != nil {
			failures = append(failures, param.Reroot(err, loc.Pointer()))
		}
		dst := res.Location(loc)
		for name, v := range values.PreparedMap() {
			dst[name] = v
		}
	}

	if o.Body != nil {
		body, err := o.prepareBody(req, cfg)
		switch {
		case err == nil:
			res.Body = body
		case errors.Is(err, oaserrors.ErrPreparation):
			failures = append(failures, err)
		default:
			return nil, err
		}
	}

	if err := param.JoinErrors(failures...); err != nil {
		cfg.logger.Debug("request preparation failed",
			"method", req.Method,
			"path", req.URL.Path,
			"errors", len(param.ErrorsOf(err)),
		)
		return res, err
	}
	return res, nil
}

func (o *Operation) prepareBody(req *http.Request, cfg *config) (any, error) {
	pointer := LocationBody.Pointer()

	buf := getBodyBuffer()
	defer putBodyBuffer(buf)
	if req.Body != nil {
		limited := io.LimitReader(req.Body, cfg.maxBodySize+1)
		if _, err := buf.ReadFrom(limited); err != nil {
			return nil, fmt.Errorf("request: reading body: %w", err)
		}
	}
	if int64(buf.Len()) > cfg.maxBodySize {
		e := param.NewError(fmt.Sprintf("Request body exceeds %d bytes", cfg.maxBodySize), pointer)
		return nil, &param.PreparationError{Errors: []param.Error{e}}
	}

	if buf.Len() == 0 {
		if o.Body.Required() {
			return nil, &param.PreparationError{Errors: []param.Error{param.NewError("Missing required parameter", pointer)}}
		}
		if def, ok := o.Body.Default(); ok {
			return def, nil
		}
		return nil, nil
	}

	dec := json.NewDecoder(buf)
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		e := param.NewError("Malformed JSON body", pointer).WithDetail(err.Error())
		return nil, &param.PreparationError{Errors: []param.Error{e}}
	}

	ctx := ContextFor(LocationBody, cfg.contextOptions()...)
	prepared, err := o.Body.WithName("").Prepare(raw, param.NewValues(nil, param.WithContext(ctx)))
	if err != nil {
		return nil, param.Reroot(err, pointer)
	}
	return prepared, nil
}

// extract collects the raw inputs of one location. Query parameters are taken
// in full; the other locations only report declared names.
func extract(loc Location, req *http.Request, pathParams map[string]string, defs []*param.Definition) map[string]any {
	raw := make(map[string]any)
	switch loc {
	case LocationPath:
		for name, v := range pathParams {
			raw[name] = v
		}
	case LocationQuery:
		for name, vs := range req.URL.Query() {
			raw[name] = multi(vs)
		}
	case LocationHeader:
		for _, d := range defs {
			if vs := req.Header.Values(d.Name()); len(vs) > 0 {
				raw[d.Name()] = multi(vs)
			}
		}
	case LocationCookie:
		for _, d := range defs {
			if c, err := req.Cookie(d.Name()); err == nil {
				raw[d.Name()] = c.Value
			}
		}
	}
	return raw
}

// multi keeps a single value as a string and turns repeats into an array.
func multi(vs []string) any {
	if len(vs) == 1 {
		return vs[0]
	}
	out := make([]any, len(vs))
	for i, v := range vs {
		out[i] = v
	}
	return out
}

func unknownQuery(raw map[string]any, defs []*param.Definition) error {
	declared := make(map[string]bool, len(defs))
	for _, d := range defs {
		declared[d.Name()] = true
	}
	var unknown []string
	for name := range raw {
		if !declared[name] {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	slices.Sort(unknown)
	errs := make([]param.Error, len(unknown))
	for i, name := range unknown {
		errs[i] = param.NewError("Unknown query parameter", pathutil.Join(LocationQuery.Pointer(), name))
	}
	return &param.PreparationError{Errors: errs}
}
