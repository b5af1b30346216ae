package deserialize

import (
	"reflect"
	"strings"

	"github.com/erraggy/paramprep/internal/equalutil"
	"github.com/erraggy/paramprep/oaserrors"
)

// Style is an OpenAPI parameter serialization style.
type Style string

const (
	// StyleSimple separates values with commas. Default for path and header parameters.
	StyleSimple Style = "simple"
	// StyleForm separates values with commas. Default for query and cookie parameters.
	StyleForm Style = "form"
	// StyleLabel prefixes values with a dot.
	StyleLabel Style = "label"
	// StyleMatrix prefixes values with ";name=".
	StyleMatrix Style = "matrix"
	// StyleSpaceDelimited separates array values with spaces.
	StyleSpaceDelimited Style = "spaceDelimited"
	// StylePipeDelimited separates array values with pipes.
	StylePipeDelimited Style = "pipeDelimited"
)

// Deserializer splits raw parameter input according to one style.
// It is immutable and safe for concurrent use.
type Deserializer struct {
	style   Style
	explode bool
	name    string
}

// Option configures a Deserializer.
type Option func(*Deserializer)

// WithExplode sets whether object values are serialized as key=value pairs
// (true) or as alternating key,value lists (false).
func WithExplode(explode bool) Option {
	return func(d *Deserializer) {
		d.explode = explode
	}
}

// WithName sets the parameter name expected in matrix-style input.
func WithName(name string) Option {
	return func(d *Deserializer) {
		d.name = name
	}
}

// New creates a Deserializer for style. Explode defaults to true.
func New(style Style, opts ...Option) (*Deserializer, error) {
	switch style {
	case StyleSimple, StyleForm, StyleLabel, StyleMatrix, StyleSpaceDelimited, StylePipeDelimited:
	default:
		return nil, &oaserrors.ConfigError{Option: "style", Value: string(style), Message: "unsupported serialization style"}
	}
	d := &Deserializer{style: style, explode: true}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Simple returns the standard deserializer: comma-separated arrays and
// comma-separated key=value objects.
func Simple() *Deserializer {
	return &Deserializer{style: StyleSimple, explode: true}
}

// Style returns the configured style.
func (d *Deserializer) Style() Style { return d.style }

// separator returns the array separator for the style.
func (d *Deserializer) separator() string {
	switch d.style {
	case StyleSpaceDelimited:
		return " "
	case StylePipeDelimited:
		return "|"
	case StyleLabel:
		if d.explode {
			return "."
		}
	}
	return ","
}

// pairSeparator returns the separator between exploded key=value pairs.
func (d *Deserializer) pairSeparator() string {
	switch d.style {
	case StyleLabel:
		return "."
	case StyleMatrix:
		return ";"
	}
	return ","
}

// unwrap strips the style's prefix from a serialized string.
func (d *Deserializer) unwrap(s string) string {
	switch d.style {
	case StyleLabel:
		return strings.TrimPrefix(s, ".")
	case StyleMatrix:
		s = strings.TrimPrefix(s, ";")
		if d.name != "" && (!d.explode || !strings.Contains(s, ";")) {
			s = strings.TrimPrefix(s, d.name+"=")
		}
	}
	return s
}

// DeserializeArray converts raw input into an ordered sequence.
// Strings are split by the style's separator; slices pass through.
func (d *Deserializer) DeserializeArray(raw any) ([]any, error) {
	switch x := raw.(type) {
	case string:
		return d.splitArray(x), nil
	case []string:
		if len(x) == 1 {
			return d.splitArray(x[0]), nil
		}
		out := make([]any, len(x))
		for i, s := range x {
			out[i] = s
		}
		return out, nil
	case []any:
		return x, nil
	}

	if raw != nil {
		rv := reflect.ValueOf(raw)
		if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
			if out, ok := equalutil.Normalize(raw).([]any); ok {
				return out, nil
			}
		}
	}
	return nil, oaserrors.NewInvalidInput("Unable to deserialize value of type %s into an array", describe(raw))
}

func (d *Deserializer) splitArray(s string) []any {
	s = d.unwrap(s)
	if d.style == StyleMatrix && d.explode && d.name != "" {
		var out []any
		prefix := d.name + "="
		for part := range strings.SplitSeq(s, ";") {
			if v, ok := strings.CutPrefix(part, prefix); ok {
				out = append(out, v)
			}
		}
		if out != nil {
			return out
		}
	}
	if s == "" {
		return []any{}
	}
	parts := strings.Split(s, d.separator())
	out := make([]any, len(parts))
	for i, p := range parts {
		out[i] = p
	}
	return out
}

// DeserializeObject converts raw input into a keyed mapping.
// Strings are parsed as key=value pairs (explode) or alternating key,value
// lists; string slices are parsed element-wise; maps pass through.
func (d *Deserializer) DeserializeObject(raw any) (map[string]any, error) {
	switch x := raw.(type) {
	case map[string]any:
		return x, nil
	case string:
		return d.parseObject(x)
	case []string:
		if len(x) == 1 {
			return d.parseObject(x[0])
		}
		return d.pairs(x)
	case []any:
		parts := make([]string, len(x))
		for i, e := range x {
			s, ok := e.(string)
			if !ok {
				return nil, oaserrors.NewInvalidInput("Unable to deserialize item of type %s into an object entry", describe(e))
			}
			parts[i] = s
		}
		return d.pairs(parts)
	}

	if out, ok := equalutil.Normalize(raw).(map[string]any); ok && raw != nil {
		return out, nil
	}
	return nil, oaserrors.NewInvalidInput("Unable to deserialize value of type %s into an object", describe(raw))
}

func (d *Deserializer) parseObject(s string) (map[string]any, error) {
	s = d.unwrap(s)
	if s == "" {
		return map[string]any{}, nil
	}
	sep := d.pairSeparator()
	if !d.explode {
		sep = ","
	}
	return d.pairs(strings.Split(s, sep))
}

func (d *Deserializer) pairs(parts []string) (map[string]any, error) {
	result := make(map[string]any, len(parts))
	if d.explode {
		for _, part := range parts {
			if part == "" {
				continue
			}
			key, val, ok := strings.Cut(part, "=")
			if !ok || key == "" {
				return nil, oaserrors.NewInvalidInput("Malformed key=value pair %q", part)
			}
			result[key] = val
		}
		return result, nil
	}

	if len(parts)%2 != 0 {
		return nil, oaserrors.NewInvalidInput("Expected an even number of key,value items, got %d", len(parts))
	}
	for i := 0; i+1 < len(parts); i += 2 {
		if parts[i] == "" {
			return nil, oaserrors.NewInvalidInput("Empty key at position %d", i)
		}
		result[parts[i]] = parts[i+1]
	}
	return result, nil
}

func describe(v any) string {
	if v == nil {
		return "null"
	}
	return reflect.TypeOf(v).String()
}
