package openapi

import (
	"math"
	"slices"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/erraggy/paramprep/format"
	"github.com/erraggy/paramprep/internal/pathutil"
	"github.com/erraggy/paramprep/oaserrors"
	"github.com/erraggy/paramprep/param"
)

// ImportOption configures FromSchema and FromParameter.
type ImportOption func(*importer)

// WithCoercion makes every imported definition coerce its input to the
// declared type. FromParameter always enables it, since parameters outside
// the body arrive as strings.
func WithCoercion() ImportOption {
	return func(im *importer) {
		im.coerce = true
	}
}

// IgnoreUnknownFormats drops formats that format.ByName does not know
// instead of failing the import.
func IgnoreUnknownFormats() ImportOption {
	return func(im *importer) {
		im.lenientFormats = true
	}
}

type importer struct {
	coerce         bool
	lenientFormats bool

	// stack holds the schemas being imported, for cycle detection.
	stack []*openapi3.Schema
}

func newImporter(opts []ImportOption) *importer {
	im := &importer{}
	for _, opt := range opts {
		opt(im)
	}
	return im
}

// FromSchema builds a definition called name from an OAS 3.0 schema.
// References must already be resolved, as openapi3.Loader does.
func FromSchema(name string, s *openapi3.Schema, opts ...ImportOption) (*param.Definition, error) {
	return newImporter(opts).build(name, pathutil.Join("", name), s, false)
}

// FromParameter builds a definition from an OAS 3.0 parameter. The
// parameter's required flag, description and deprecation apply on top of
// its schema.
func FromParameter(p *openapi3.Parameter, opts ...ImportOption) (*param.Definition, error) {
	if p == nil {
		return nil, &oaserrors.ConfigError{Option: "parameter", Message: "parameter is nil"}
	}
	if p.Schema == nil || p.Schema.Value == nil {
		return nil, &oaserrors.ConfigError{Parameter: p.Name, Option: "schema", Message: "parameter has no resolved schema"}
	}
	im := newImporter(append([]ImportOption{WithCoercion()}, opts...))
	s := p.Schema.Value
	var extra []param.Option
	if p.Description != "" && s.Description == "" {
		extra = append(extra, param.Description(p.Description))
	}
	if p.Deprecated && !s.Deprecated {
		extra = append(extra, param.Deprecated())
	}
	return im.build(p.Name, pathutil.Join("", p.Name), s, p.Required, extra...)
}

func (im *importer) build(name, where string, s *openapi3.Schema, required bool, extra ...param.Option) (*param.Definition, error) {
	if s == nil {
		return nil, &oaserrors.ConfigError{Parameter: name, Option: "schema", Value: where, Message: "unresolved schema reference"}
	}
	if slices.Contains(im.stack, s) {
		return nil, &oaserrors.ConfigError{Parameter: name, Option: "schema", Value: where, Message: "circular schema reference"}
	}
	im.stack = append(im.stack, s)
	defer func() { im.stack = im.stack[:len(im.stack)-1] }()

	kind, nullable, err := kindOf(s)
	if err != nil {
		err.Parameter = name
		err.Value = where
		return nil, err
	}

	var opts []param.Option
	if required {
		opts = append(opts, param.Required())
	}
	if nullable {
		opts = append(opts, param.Nullable())
	}
	if im.coerce {
		opts = append(opts, param.Coerce())
	}
	if s.Description != "" {
		opts = append(opts, param.Description(s.Description))
	}
	if s.Deprecated {
		opts = append(opts, param.Deprecated())
	}
	switch {
	case s.ReadOnly:
		opts = append(opts, param.ReadOnly())
	case s.WriteOnly:
		opts = append(opts, param.WriteOnly())
	}
	if len(s.Enum) > 0 {
		enum := make([]any, len(s.Enum))
		for i, v := range s.Enum {
			enum[i] = normalize(kind, v)
		}
		opts = append(opts, param.Enum(enum...))
	}
	if s.Default != nil && !required {
		opts = append(opts, param.Default(normalize(kind, s.Default)))
	}
	if s.Example != nil {
		opts = append(opts, param.Examples(normalize(kind, s.Example)))
	}
	if s.Format != "" {
		f, ok := format.ByName(s.Format)
		switch {
		case ok && f.AppliesTo(kind):
			opts = append(opts, param.WithFormat(f))
		case !im.lenientFormats:
			return nil, &oaserrors.ConfigError{Parameter: name, Option: "format", Value: s.Format, Message: "unknown format for " + kind.String()}
		}
	}

	switch kind {
	case param.KindString:
		if s.MinLength > 0 {
			opts = append(opts, param.MinLength(int(s.MinLength)))
		}
		if s.MaxLength != nil {
			opts = append(opts, param.MaxLength(int(*s.MaxLength)))
		}
		if s.Pattern != "" {
			opts = append(opts, param.Pattern(s.Pattern))
		}
	case param.KindNumber, param.KindInteger:
		if s.Min != nil {
			if s.ExclusiveMin {
				opts = append(opts, param.ExclusiveMinimum(*s.Min))
			} else {
				opts = append(opts, param.Minimum(*s.Min))
			}
		}
		if s.Max != nil {
			if s.ExclusiveMax {
				opts = append(opts, param.ExclusiveMaximum(*s.Max))
			} else {
				opts = append(opts, param.Maximum(*s.Max))
			}
		}
		if s.MultipleOf != nil {
			opts = append(opts, param.MultipleOf(*s.MultipleOf))
		}
	case param.KindArray:
		items, err := im.items(name, where, s.Items)
		if err != nil {
			return nil, err
		}
		if len(items) > 0 {
			opts = append(opts, param.Items(items...))
		}
		if s.MinItems > 0 {
			opts = append(opts, param.MinItems(int(s.MinItems)))
		}
		if s.MaxItems != nil {
			opts = append(opts, param.MaxItems(int(*s.MaxItems)))
		}
		if s.UniqueItems {
			opts = append(opts, param.UniqueItems())
		}
	case param.KindObject:
		props, err := im.properties(where, s)
		if err != nil {
			return nil, err
		}
		if len(props) > 0 {
			opts = append(opts, param.Properties(props...))
		}
		switch ap := s.AdditionalProperties; {
		case ap.Has != nil:
			opts = append(opts, param.AdditionalProperties(*ap.Has))
		case ap.Schema != nil:
			opts = append(opts, param.AdditionalProperties(true))
		}
		if s.MinProps > 0 {
			opts = append(opts, param.MinProperties(int(s.MinProps)))
		}
		if s.MaxProps != nil {
			opts = append(opts, param.MaxProperties(int(*s.MaxProps)))
		}
	}

	return param.New(kind, name, append(opts, extra...)...)
}

// items imports the item schema of an array. A type-less anyOf or oneOf
// lists alternative item definitions.
func (im *importer) items(name, where string, ref *openapi3.SchemaRef) ([]*param.Definition, error) {
	if ref == nil {
		return nil, nil
	}
	where = where + "/items"
	s := ref.Value
	if s == nil {
		return nil, &oaserrors.ConfigError{Parameter: name, Option: "items", Value: ref.Ref, Message: "unresolved schema reference"}
	}
	if s.IsEmpty() {
		return nil, nil
	}
	alternatives := s.AnyOf
	if len(alternatives) == 0 {
		alternatives = s.OneOf
	}
	if s.Type == nil && len(alternatives) > 0 {
		out := make([]*param.Definition, 0, len(alternatives))
		for i, alt := range alternatives {
			if alt.Value == nil {
				return nil, &oaserrors.ConfigError{Parameter: name, Option: "items", Value: alt.Ref, Message: "unresolved schema reference"}
			}
			def, err := im.build("", pathutil.JoinIndex(where, i), alt.Value, false)
			if err != nil {
				return nil, err
			}
			out = append(out, def)
		}
		return out, nil
	}
	def, err := im.build("", where, s, false)
	if err != nil {
		return nil, err
	}
	return []*param.Definition{def}, nil
}

// properties imports object properties in name order, since OpenAPI
// property maps carry none.
func (im *importer) properties(where string, s *openapi3.Schema) ([]*param.Definition, error) {
	names := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		names = append(names, name)
	}
	slices.Sort(names)
	out := make([]*param.Definition, 0, len(names))
	for _, name := range names {
		ref := s.Properties[name]
		var value *openapi3.Schema
		if ref != nil {
			value = ref.Value
		}
		def, err := im.build(name, pathutil.Join(where, name), value, slices.Contains(s.Required, name))
		if err != nil {
			return nil, err
		}
		out = append(out, def)
	}
	return out, nil
}

// kindOf maps the schema type to a kind. "null" in a type list (OAS 3.1)
// means nullable. A missing type is inferred from object or array keywords.
func kindOf(s *openapi3.Schema) (param.Kind, bool, *oaserrors.ConfigError) {
	nullable := s.Nullable
	var types []string
	for _, t := range s.Type.Slice() {
		if t == openapi3.TypeNull {
			nullable = true
			continue
		}
		types = append(types, t)
	}
	switch len(types) {
	case 0:
		switch {
		case len(s.Properties) > 0 || s.AdditionalProperties.Has != nil || s.AdditionalProperties.Schema != nil:
			return param.KindObject, nullable, nil
		case s.Items != nil:
			return param.KindArray, nullable, nil
		}
		return 0, false, &oaserrors.ConfigError{Option: "type", Message: "schema has no type"}
	case 1:
		kind, ok := param.ParseKind(types[0])
		if !ok {
			return 0, false, &oaserrors.ConfigError{Option: "type", Message: "unknown parameter type " + types[0]}
		}
		return kind, nullable, nil
	}
	return 0, false, &oaserrors.ConfigError{Option: "type", Message: "multiple types are not supported: " + strings.Join(types, ", ")}
}

// normalize turns integral JSON numbers into int64 for integer definitions,
// so that enum members and defaults compare like prepared values.
func normalize(kind param.Kind, v any) any {
	f, ok := v.(float64)
	if !ok || kind != param.KindInteger || f != math.Trunc(f) || math.IsInf(f, 0) {
		return v
	}
	return int64(f)
}
