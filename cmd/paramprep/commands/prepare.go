package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/paramprep/oaserrors"
	"github.com/erraggy/paramprep/param"
	"github.com/erraggy/paramprep/request"
	"github.com/erraggy/paramprep/schema"
)

// ErrPreparationFailed is returned by HandlePrepare after the error list has
// been printed. main exits 1 without printing it again.
var ErrPreparationFailed = errors.New("preparation failed")

// PrepareFlags contains flags for the prepare command
type PrepareFlags struct {
	commonFlags
	Schema string
	Quiet  bool
}

// PrepareIssue is one reported preparation failure.
type PrepareIssue struct {
	Pointer string `json:"pointer" yaml:"pointer"`
	Title   string `json:"title" yaml:"title"`
	Detail  string `json:"detail,omitempty" yaml:"detail,omitempty"`
	Code    string `json:"code" yaml:"code"`
}

// PrepareResult is the structured output of the prepare command.
type PrepareResult struct {
	Valid      bool           `json:"valid" yaml:"valid"`
	Location   string         `json:"location" yaml:"location"`
	Values     map[string]any `json:"values,omitempty" yaml:"values,omitempty"`
	ErrorCount int            `json:"errorCount" yaml:"errorCount"`
	Errors     []PrepareIssue `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// SetupPrepareFlags creates and configures a FlagSet for the prepare command.
// Returns the FlagSet and a PrepareFlags struct with bound flag variables.
func SetupPrepareFlags() (*flag.FlagSet, *PrepareFlags) {
	fs := flag.NewFlagSet("prepare", flag.ContinueOnError)
	flags := &PrepareFlags{}

	flags.register(fs)
	fs.StringVar(&flags.Schema, "schema", "", "path to the parameter schema document (YAML or JSON)")
	fs.StringVar(&flags.Schema, "s", "", "path to the parameter schema document (shorthand)")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only set the exit code, print nothing on success")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only set the exit code, print nothing on success")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: paramprep prepare -schema <file> [flags] <values-file|->\n\n")
		Writef(fs.Output(), "Prepare raw parameter values against a schema document. The values file is a\n")
		Writef(fs.Output(), "JSON or YAML object keyed by parameter name.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nLocations:\n")
		Writef(fs.Output(), "  body (default)  Values are already decoded JSON\n")
		Writef(fs.Output(), "  path, query, header, cookie\n")
		Writef(fs.Output(), "                  Values are raw strings; arrays and objects use the comma-separated form\n")
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  paramprep prepare -schema params.yaml values.json\n")
		Writef(fs.Output(), "  echo '{\"limit\": \"20\"}' | paramprep prepare -s params.yaml -l query -\n")
		Writef(fs.Output(), "  paramprep prepare -s params.yaml --format json values.yaml | jq '.errors'\n")
		Writef(fs.Output(), "\nExit Codes:\n")
		Writef(fs.Output(), "  0    All values prepared\n")
		Writef(fs.Output(), "  1    Preparation failed or the command was misused\n")
	}

	return fs, flags
}

// HandlePrepare executes the prepare command
func HandlePrepare(args []string) error {
	fs, flags := SetupPrepareFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("prepare command requires exactly one values file or '-' for stdin")
	}
	if flags.Schema == "" {
		return fmt.Errorf("prepare command requires -schema")
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
	defs, err := loadDefinitions(flags.Schema)
	if err != nil {
		return err
	}
	data, err := ReadInput(fs.Arg(0))
	if err != nil {
		return err
	}
	raw, err := decodeValues(data)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", FormatInputPath(fs.Arg(0)), err)
	}

	ctx := request.ContextFor(loc, param.WithLogger(logger), param.WithMaxDepth(cfg.MaxDepth))
	batch, err := param.NewBatch(ctx, defs...)
	if err != nil {
		return err
	}
	logger.Info("preparing parameters", "schema", flags.Schema, "location", string(loc), "count", len(defs))
	values, err := batch.Prepare(raw)
	if err != nil && !errors.Is(err, oaserrors.ErrPreparation) {
		return err
	}

	result := newPrepareResult(loc, values, err)
	if !flags.Quiet {
		if err := outputPrepareResult(result, cfg.Format); err != nil {
			return err
		}
	}
	if !result.Valid {
		return ErrPreparationFailed
	}
	return nil
}

func newPrepareResult(loc request.Location, values *param.Values, err error) *PrepareResult {
	errs := param.ErrorsOf(err)
	result := &PrepareResult{
		Valid:      len(errs) == 0,
		Location:   string(loc),
		ErrorCount: len(errs),
	}
	if result.Valid {
		result.Values = values.PreparedMap()
	}
	for _, e := range errs {
		result.Errors = append(result.Errors, PrepareIssue{
			Pointer: e.Pointer,
			Title:   e.Title,
			Detail:  e.Detail,
			Code:    e.Code,
		})
	}
	return result
}

func outputPrepareResult(result *PrepareResult, format string) error {
	if format == FormatJSON || format == FormatYAML {
		return OutputStructured(result, format)
	}

	if !result.Valid {
		Writef(stdout, "Errors (%d):\n", result.ErrorCount)
		for _, e := range result.Errors {
			Writef(stdout, "  %s: %s\n", e.Pointer, e.Title)
			if e.Detail != "" {
				Writef(stdout, "      %s\n", e.Detail)
			}
		}
		return nil
	}

	names := make([]string, 0, len(result.Values))
	for name := range result.Values {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		b, err := json.Marshal(result.Values[name])
		if err != nil {
			return fmt.Errorf("rendering %s: %w", name, err)
		}
		Writef(stdout, "%s = %s\n", name, b)
	}
	return nil
}

// loadDefinitions parses and builds a schema document.
func loadDefinitions(path string) ([]*param.Definition, error) {
	data, err := ReadInput(path)
	if err != nil {
		return nil, err
	}
	doc, err := schema.Parse(data)
	if err != nil {
		return nil, err
	}
	return doc.Build()
}

// decodeValues decodes a JSON or YAML object. JSON numbers are kept as
// json.Number so integer parameters never see a float64.
func decodeValues(data []byte) (map[string]any, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return map[string]any{}, nil
	}
	raw := map[string]any{}
	if trimmed[0] == '{' {
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		return raw, nil
	}
	if err := yaml.Unmarshal(trimmed, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}
