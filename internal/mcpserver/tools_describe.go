package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/paramprep/openapi"
	"github.com/erraggy/paramprep/param"
	"github.com/erraggy/paramprep/request"
)

// describeFormats are the accepted describe output formats.
var describeFormats = []string{"text", "oas3", "oas2"}

type describeInput struct {
	Schema   schemaInput `json:"schema"             jsonschema:"The parameter schema document"`
	Format   string      `json:"format,omitempty"   jsonschema:"Output format: text, oas3 or oas2 (default text)"`
	Location string      `json:"location,omitempty" jsonschema:"Parameter location for oas3 parameters and oas2 output: path, query, header, cookie or body"`
	Name     string      `json:"name,omitempty"     jsonschema:"Only describe the parameter with this name"`
}

type describedParameter struct {
	Name          string            `json:"name"`
	Type          string            `json:"type"`
	Required      bool              `json:"required"`
	Documentation string            `json:"documentation,omitempty"`
	Nested        map[string]string `json:"nested,omitempty"`
	Schema        any               `json:"schema,omitempty"`
	Parameter     any               `json:"parameter,omitempty"`
}

type describeOutput struct {
	Format     string               `json:"format"`
	Count      int                  `json:"count"`
	Parameters []describedParameter `json:"parameters,omitempty"`
}

func handleDescribe(_ context.Context, _ *mcp.CallToolRequest, input describeInput) (*mcp.CallToolResult, describeOutput, error) {
	format := input.Format
	if format == "" {
		format = cfg.DescribeFormat
	}
	var loc request.Location
	var err error
	switch format {
	case "text":
	case "oas3":
		loc, err = parseLocation(input.Location, "")
	case "oas2":
		loc, err = parseLocation(input.Location, request.LocationQuery)
	default:
		err = fmt.Errorf("invalid format %q; valid values: text, oas3, oas2", format)
	}
	if err != nil {
		return errResult(err), describeOutput{}, nil
	}

	defs, err := input.Schema.resolve()
	if err != nil {
		return errResult(err), describeOutput{}, nil
	}

	output := describeOutput{Format: format}
	for _, d := range defs {
		if input.Name != "" && d.Name() != input.Name {
			continue
		}
		p, err := describe(d, format, loc)
		if err != nil {
			return errResult(err), describeOutput{}, nil
		}
		output.Parameters = append(output.Parameters, p)
	}
	if input.Name != "" && len(output.Parameters) == 0 {
		return errResult(fmt.Errorf("parameter %q not found", input.Name)), describeOutput{}, nil
	}
	output.Count = len(output.Parameters)
	return nil, output, nil
}

func describe(d *param.Definition, format string, loc request.Location) (describedParameter, error) {
	p := describedParameter{
		Name:     d.Name(),
		Type:     d.Kind().String(),
		Required: d.Required(),
	}
	switch format {
	case "text":
		p.Documentation = d.Documentation()
		if nested := param.Describe(d); len(nested) > 1 {
			delete(nested, d.Pointer())
			p.Nested = nested
		}
	case "oas3":
		p.Schema = openapi.ToSchema(d)
		if loc != "" && loc != request.LocationBody {
			op, err := openapi.ToParameter(d, loc)
			if err != nil {
				return p, err
			}
			p.Parameter = op
		}
	case "oas2":
		sp, err := openapi.ToSwaggerParameter(d, loc)
		if err != nil {
			return p, err
		}
		p.Parameter = sp
	}
	return p, nil
}
