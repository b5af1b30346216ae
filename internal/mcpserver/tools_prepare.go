package mcpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/paramprep/oaserrors"
	"github.com/erraggy/paramprep/param"
	"github.com/erraggy/paramprep/request"
)

type prepareInput struct {
	Schema   schemaInput    `json:"schema"             jsonschema:"The parameter schema document"`
	Values   map[string]any `json:"values,omitempty"   jsonschema:"Raw parameter values keyed by parameter name"`
	Location string         `json:"location,omitempty" jsonschema:"Where the values come from: path, query, header, cookie or body (default body). Non-body locations deserialize comma-separated strings."`
	Offset   int            `json:"offset,omitempty"   jsonschema:"Skip the first N errors (for pagination)"`
	Limit    int            `json:"limit,omitempty"    jsonschema:"Maximum number of errors to return (default 100)"`
}

type prepareIssue struct {
	Pointer string `json:"pointer"`
	Title   string `json:"title"`
	Detail  string `json:"detail,omitempty"`
	Code    string `json:"code,omitempty"`
}

type prepareOutput struct {
	Valid      bool           `json:"valid"`
	Values     map[string]any `json:"values,omitempty"`
	ErrorCount int            `json:"error_count"`
	Returned   int            `json:"returned"`
	Errors     []prepareIssue `json:"errors,omitempty"`
}

func handlePrepare(_ context.Context, _ *mcp.CallToolRequest, input prepareInput) (*mcp.CallToolResult, prepareOutput, error) {
	loc, err := parseLocation(input.Location, request.LocationBody)
	if err != nil {
		return errResult(err), prepareOutput{}, nil
	}
	defs, err := input.Schema.resolve()
	if err != nil {
		return errResult(err), prepareOutput{}, nil
	}
	batch, err := param.NewBatch(request.ContextFor(loc, param.WithMaxDepth(cfg.MaxDepth)), defs...)
	if err != nil {
		return errResult(err), prepareOutput{}, nil
	}
	raw, err := preserveNumbers(input.Values)
	if err != nil {
		return errResult(err), prepareOutput{}, nil
	}

	values, err := batch.Prepare(raw)
	if err != nil && !errors.Is(err, oaserrors.ErrPreparation) {
		return errResult(err), prepareOutput{}, nil
	}

	errs := param.ErrorsOf(err)
	output := prepareOutput{
		Valid:      len(errs) == 0,
		ErrorCount: len(errs),
	}
	if output.Valid {
		output.Values = values.PreparedMap()
	}
	output.Errors = makeSlice[prepareIssue](len(errs))
	for _, e := range errs {
		output.Errors = append(output.Errors, prepareIssue{
			Pointer: e.Pointer,
			Title:   e.Title,
			Detail:  e.Detail,
			Code:    e.Code,
		})
	}
	output.Errors = paginate(output.Errors, input.Offset, input.Limit)
	output.Returned = len(output.Errors)
	return nil, output, nil
}

// parseLocation maps a tool argument to a request location.
func parseLocation(s string, fallback request.Location) (request.Location, error) {
	if s == "" {
		return fallback, nil
	}
	loc := request.Location(s)
	if !slices.Contains(request.Locations, loc) {
		return "", fmt.Errorf("invalid location %q; valid values: path, query, header, cookie, body", s)
	}
	return loc, nil
}

// preserveNumbers re-decodes tool arguments with json.Number so that
// integral values keep their integer kind instead of becoming float64.
func preserveNumbers(values map[string]any) (map[string]any, error) {
	if len(values) == 0 {
		return values, nil
	}
	data, err := json.Marshal(values)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var out map[string]any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}
