package schema

import (
	"fmt"
	"slices"
	"strings"

	"github.com/erraggy/paramprep/format"
	"github.com/erraggy/paramprep/internal/pathutil"
	"github.com/erraggy/paramprep/oaserrors"
	"github.com/erraggy/paramprep/param"
	"github.com/erraggy/paramprep/rules"
)

// Option configures how a Document is turned into definitions.
type Option func(*builder)

// WithEngine sets the rule engine of every built definition.
func WithEngine(e rules.Engine) Option {
	return func(b *builder) {
		b.engine = e
	}
}

type builder struct {
	doc    *Document
	engine rules.Engine

	// resolving is the chain of definitions being expanded, for cycle detection.
	resolving []string
}

// Build turns every top-level parameter into a Definition, in document order.
// All misconfigurations are reported as *oaserrors.ConfigError.
func (doc *Document) Build(opts ...Option) ([]*param.Definition, error) {
	b := &builder{doc: doc}
	for _, opt := range opts {
		opt(b)
	}
	out := make([]*param.Definition, 0, len(doc.Parameters))
	for i, s := range doc.Parameters {
		if s == nil {
			return nil, &oaserrors.ConfigError{Option: "parameters", Value: i, Message: "parameter entry is empty"}
		}
		if s.Name == "" {
			return nil, &oaserrors.ConfigError{Option: "parameters", Value: i, Message: "parameter has no name"}
		}
		def, err := b.build(s, s.Name, pathutil.Join("", s.Name))
		if err != nil {
			return nil, err
		}
		out = append(out, def)
	}
	return out, nil
}

// Definition builds the named reusable definition.
func (doc *Document) Definition(name string, opts ...Option) (*param.Definition, error) {
	b := &builder{doc: doc}
	for _, opt := range opts {
		opt(b)
	}
	return b.build(&Schema{Ref: pathutil.DefinitionRef(name)}, name, pathutil.DefinitionRef(name))
}

// Batch builds the top-level parameters into a param.Batch.
func (doc *Document) Batch(ctx *param.Context, opts ...Option) (*param.Batch, error) {
	defs, err := doc.Build(opts...)
	if err != nil {
		return nil, err
	}
	return param.NewBatch(ctx, defs...)
}

// Load parses data and builds its top-level parameters.
func Load(data []byte, opts ...Option) ([]*param.Definition, error) {
	doc, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return doc.Build(opts...)
}

func (b *builder) fail(where string, option string, value any, format string, args ...any) error {
	return &oaserrors.ConfigError{Parameter: where, Option: option, Value: value, Message: fmt.Sprintf(format, args...)}
}

// resolve follows a $ref chain. The referencing schema's name, required flag
// and description override the target's.
func (b *builder) resolve(s *Schema, where string) (*Schema, func(), error) {
	name, ok := pathutil.DefinitionName(s.Ref)
	if !ok {
		return nil, nil, b.fail(where, "$ref", s.Ref, "only local %s references are supported", pathutil.RefPrefixDefinitions)
	}
	if slices.Contains(b.resolving, name) {
		chain := append(slices.Clone(b.resolving), name)
		return nil, nil, b.fail(where, "$ref", s.Ref, "circular reference: %s", strings.Join(chain, " -> "))
	}
	target, ok := b.doc.Definitions[name]
	if !ok || target == nil {
		return nil, nil, b.fail(where, "$ref", s.Ref, "definition %q not found", name)
	}

	resolved := *target
	if s.Required {
		resolved.Required = true
	}
	if s.Description != "" {
		resolved.Description = s.Description
	}
	b.resolving = append(b.resolving, name)
	done := func() { b.resolving = b.resolving[:len(b.resolving)-1] }
	return &resolved, done, nil
}

func (b *builder) build(s *Schema, name, where string) (*param.Definition, error) {
	if s.Ref != "" {
		resolved, done, err := b.resolve(s, where)
		if err != nil {
			return nil, err
		}
		defer done()
		return b.build(resolved, name, where)
	}

	kind, ok := param.ParseKind(s.Type)
	if !ok {
		return nil, b.fail(where, "type", s.Type, "unknown parameter type")
	}
	opts, err := b.options(s, where)
	if err != nil {
		return nil, err
	}
	def, err := param.New(kind, name, opts...)
	if err != nil {
		return nil, fmt.Errorf("schema: %s: %w", where, err)
	}
	return def, nil
}

func (b *builder) options(s *Schema, where string) ([]param.Option, error) {
	var opts []param.Option
	add := func(cond bool, opt param.Option) {
		if cond {
			opts = append(opts, opt)
		}
	}

	add(b.engine != nil, param.WithEngine(b.engine))
	add(s.Description != "", param.Description(s.Description))
	add(s.Required, param.Required())
	add(s.Nullable, param.Nullable())
	add(s.Default != nil, param.Default(s.Default))
	add(s.Enum != nil, param.Enum(s.Enum...))
	add(s.StrictEnum, param.StrictEnum())
	add(len(s.Examples) > 0, param.Examples(s.Examples...))
	add(s.Deprecated, param.Deprecated())
	add(s.ReadOnly, param.ReadOnly())
	add(s.WriteOnly, param.WriteOnly())
	add(s.Coerce, param.Coerce())

	if s.Format != "" {
		f, ok := format.ByName(s.Format)
		if !ok {
			return nil, b.fail(where, "format", s.Format, "unknown format")
		}
		opts = append(opts, param.WithFormat(f))
	}

	if s.MinLength != nil {
		opts = append(opts, param.MinLength(*s.MinLength))
	}
	if s.MaxLength != nil {
		opts = append(opts, param.MaxLength(*s.MaxLength))
	}
	add(s.Pattern != "", param.Pattern(s.Pattern))
	add(s.NoTrim, param.NoTrim())
	add(s.Sanitize, param.Sanitize())
	add(s.NormalizeUnicode, param.NormalizeUnicode())

	if s.Minimum != nil {
		if s.ExclusiveMinimum {
			opts = append(opts, param.ExclusiveMinimum(*s.Minimum))
		} else {
			opts = append(opts, param.Minimum(*s.Minimum))
		}
	}
	if s.Maximum != nil {
		if s.ExclusiveMaximum {
			opts = append(opts, param.ExclusiveMaximum(*s.Maximum))
		} else {
			opts = append(opts, param.Maximum(*s.Maximum))
		}
	}
	if s.MultipleOf != nil {
		opts = append(opts, param.MultipleOf(*s.MultipleOf))
	}
	add(s.StrictDecimal, param.StrictDecimal())

	if len(s.Items) > 0 {
		items := make([]*param.Definition, len(s.Items))
		for i, is := range s.Items {
			if is == nil {
				return nil, b.fail(where, "items", i, "item schema is empty")
			}
			item, err := b.build(is, "", pathutil.Join(where, "items", fmt.Sprint(i)))
			if err != nil {
				return nil, err
			}
			items[i] = item
		}
		opts = append(opts, param.Items(items...))
	}
	if s.MinItems != nil {
		opts = append(opts, param.MinItems(*s.MinItems))
	}
	if s.MaxItems != nil {
		opts = append(opts, param.MaxItems(*s.MaxItems))
	}
	add(s.UniqueItems, param.UniqueItems())

	if len(s.Properties) > 0 {
		props := make([]*param.Definition, len(s.Properties))
		for i, p := range s.Properties {
			if p.Schema == nil {
				return nil, b.fail(where, "properties", p.Name, "property schema is empty")
			}
			prop, err := b.build(p.Schema, p.Name, pathutil.Join(where, p.Name))
			if err != nil {
				return nil, err
			}
			props[i] = prop
		}
		opts = append(opts, param.Properties(props...))
	}
	if s.AdditionalProperties != nil {
		opts = append(opts, param.AdditionalProperties(*s.AdditionalProperties))
	}
	if s.MinProperties != nil {
		opts = append(opts, param.MinProperties(*s.MinProperties))
	}
	if s.MaxProperties != nil {
		opts = append(opts, param.MaxProperties(*s.MaxProperties))
	}

	for _, dep := range s.DependsOn {
		if dep.When == "" {
			opts = append(opts, param.DependsOn(dep.Name))
			continue
		}
		r, err := rules.Expr(dep.When, dep.Message)
		if err != nil {
			return nil, b.fail(where, "dependsOn", dep.When, "invalid condition: %v", err)
		}
		opts = append(opts, param.DependsOnWhen(dep.Name, r.Check))
	}
	add(len(s.DependsOnAbsenceOf) > 0, param.DependsOnAbsenceOf(s.DependsOnAbsenceOf...))

	var extra []rules.Rule
	for _, rs := range s.Rules {
		r, err := rules.Expr(rs.Expr, rs.Message)
		if err != nil {
			return nil, b.fail(where, "rules", rs.Expr, "invalid expression: %v", err)
		}
		extra = append(extra, r)
	}
	if s.JSONSchema != nil {
		r, err := rules.JSONSchema(s.JSONSchema)
		if err != nil {
			return nil, b.fail(where, "jsonSchema", nil, "invalid JSON Schema: %v", err)
		}
		extra = append(extra, r)
	}
	add(len(extra) > 0, param.WithRules(extra...))

	return opts, nil
}
