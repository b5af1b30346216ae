package commands

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"slices"
	"sort"

	"github.com/erraggy/paramprep/openapi"
	"github.com/erraggy/paramprep/param"
	"github.com/erraggy/paramprep/request"
)

// OpenAPI targets of the describe command.
const (
	OASText = "text"
	OAS3    = "3"
	OAS2    = "2"
)

// DescribeFlags contains flags for the describe command
type DescribeFlags struct {
	commonFlags
	OAS  string
	Name string
}

// DescribedParameter is the text description of one parameter.
type DescribedParameter struct {
	Name          string            `json:"name" yaml:"name"`
	Type          string            `json:"type" yaml:"type"`
	Required      bool              `json:"required" yaml:"required"`
	Documentation string            `json:"documentation,omitempty" yaml:"documentation,omitempty"`
	Nested        map[string]string `json:"nested,omitempty" yaml:"nested,omitempty"`
}

// SetupDescribeFlags creates and configures a FlagSet for the describe command.
// Returns the FlagSet and a DescribeFlags struct with bound flag variables.
func SetupDescribeFlags() (*flag.FlagSet, *DescribeFlags) {
	fs := flag.NewFlagSet("describe", flag.ContinueOnError)
	flags := &DescribeFlags{}

	flags.register(fs)
	fs.StringVar(&flags.OAS, "oas", OASText, "description target: text, 3 (OpenAPI 3.0), or 2 (Swagger 2.0)")
	fs.StringVar(&flags.Name, "name", "", "only describe the parameter with this name")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: paramprep describe [flags] <schema-file|->\n\n")
		Writef(fs.Output(), "Document the parameters of a schema document.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nTargets:\n")
		Writef(fs.Output(), "  text (default)  Human-readable constraints per parameter\n")
		Writef(fs.Output(), "  3               OpenAPI 3.0 schemas, or parameters for a non-body location\n")
		Writef(fs.Output(), "  2               Swagger 2.0 parameters for the location\n")
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  paramprep describe params.yaml\n")
		Writef(fs.Output(), "  paramprep describe -oas 3 -l query params.yaml\n")
		Writef(fs.Output(), "  paramprep describe -oas 2 -format json -name limit params.yaml\n")
	}

	return fs, flags
}

// HandleDescribe executes the describe command
func HandleDescribe(args []string) error {
	fs, flags := SetupDescribeFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("describe command requires exactly one schema file or '-' for stdin")
	}
	if !slices.Contains([]string{OASText, OAS3, OAS2}, flags.OAS) {
		return fmt.Errorf("invalid oas '%s'. Valid values: %s, %s, %s", flags.OAS, OASText, OAS3, OAS2)
	}

	cfg, err := flags.config()
	if err != nil {
		return err
	}
	logger, flush, err := cfg.NewLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer flush()

	loc, err := ParseLocation(cfg.Location)
	if err != nil {
		return err
	}
	defs, err := loadDefinitions(fs.Arg(0))
	if err != nil {
		return err
	}
	if flags.Name != "" {
		defs = slices.DeleteFunc(defs, func(d *param.Definition) bool { return d.Name() != flags.Name })
		if len(defs) == 0 {
			return fmt.Errorf("parameter %q not found", flags.Name)
		}
	}
	logger.Debug("describing parameters", "schema", FormatInputPath(fs.Arg(0)), "oas", flags.OAS, "count", len(defs))

	if flags.OAS == OASText {
		return outputDescriptions(describeText(defs), cfg.Format)
	}

	doc, err := describeOpenAPI(defs, flags.OAS, loc)
	if err != nil {
		return err
	}
	format := cfg.Format
	if format == FormatText {
		format = FormatYAML
	}
	return OutputStructured(doc, format)
}

func describeText(defs []*param.Definition) []DescribedParameter {
	out := make([]DescribedParameter, 0, len(defs))
	for _, d := range defs {
		p := DescribedParameter{
			Name:          d.Name(),
			Type:          d.Kind().String(),
			Required:      d.Required(),
			Documentation: d.Documentation(),
		}
		if nested := param.Describe(d); len(nested) > 1 {
			delete(nested, d.Pointer())
			p.Nested = nested
		}
		out = append(out, p)
	}
	return out
}

func outputDescriptions(params []DescribedParameter, format string) error {
	if format != FormatText {
		return OutputStructured(params, format)
	}
	for i, p := range params {
		if i > 0 {
			Writef(stdout, "\n")
		}
		required := ""
		if p.Required {
			required = ", required"
		}
		Writef(stdout, "%s (%s%s)\n", p.Name, p.Type, required)
		if p.Documentation != "" {
			Writef(stdout, "  %s\n", p.Documentation)
		}
		pointers := make([]string, 0, len(p.Nested))
		for ptr := range p.Nested {
			pointers = append(pointers, ptr)
		}
		sort.Strings(pointers)
		for _, ptr := range pointers {
			Writef(stdout, "  %s: %s\n", ptr, p.Nested[ptr])
		}
	}
	return nil
}

// describeOpenAPI renders the definitions as OpenAPI objects. Body
// definitions become a schema map keyed by name; other locations become a
// parameter list. The result is generic JSON data so YAML output follows the
// OpenAPI field names.
func describeOpenAPI(defs []*param.Definition, oas string, loc request.Location) (any, error) {
	var doc any
	switch {
	case oas == OAS3 && loc == request.LocationBody:
		schemas := make(map[string]any, len(defs))
		for _, d := range defs {
			schemas[d.Name()] = openapi.ToSchema(d)
		}
		doc = schemas
	case oas == OAS3:
		params := make([]any, 0, len(defs))
		for _, d := range defs {
			p, err := openapi.ToParameter(d, loc)
			if err != nil {
				return nil, err
			}
			params = append(params, p)
		}
		doc = params
	default:
		params := make([]any, 0, len(defs))
		for _, d := range defs {
			p, err := openapi.ToSwaggerParameter(d, loc)
			if err != nil {
				return nil, err
			}
			params = append(params, p)
		}
		doc = params
	}
	return toGeneric(doc)
}

func toGeneric(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}
