package param

import (
	"slices"
	"strconv"
	"strings"

	"github.com/erraggy/paramprep/internal/pathutil"
	"github.com/erraggy/paramprep/internal/stringutil"
)

// Constraints is a read-only snapshot of a definition's configuration, used
// by documentation exporters.
type Constraints struct {
	Kind        Kind
	Name        string
	Description string
	Required    bool
	Nullable    bool
	HasDefault  bool
	Default     any
	Enum        []any
	Examples    []any
	Deprecated  bool
	Access      Access
	Format      string

	MinLength *int
	MaxLength *int
	Pattern   string

	Minimum          *float64
	Maximum          *float64
	ExclusiveMinimum bool
	ExclusiveMaximum bool
	MultipleOf       *float64

	// Items lists the item definitions in declaration order, grouped by kind.
	Items       []*Definition
	MinItems    *int
	MaxItems    *int
	UniqueItems bool

	Properties           []*Definition
	AdditionalProperties bool
	MinProperties        *int
	MaxProperties        *int
	SchemaName           string
}

// Constraints returns a snapshot of the definition's configuration.
func (d *Definition) Constraints() Constraints {
	c := Constraints{
		Kind:        d.kind,
		Name:        d.name,
		Description: d.description,
		Required:    d.required,
		Nullable:    d.nullable,
		HasDefault:  d.hasDefault,
		Default:     d.def,
		Enum:        slices.Clone(d.enum),
		Examples:    slices.Clone(d.examples),
		Deprecated:  d.deprecated,
		Access:      d.access,

		MinLength: d.str.minLength,
		MaxLength: d.str.maxLength,

		Minimum:          d.num.minimum,
		Maximum:          d.num.maximum,
		ExclusiveMinimum: d.num.exclusiveMinimum,
		ExclusiveMaximum: d.num.exclusiveMaximum,
		MultipleOf:       d.num.multipleOf,

		MinItems:    d.arr.minItems,
		MaxItems:    d.arr.maxItems,
		UniqueItems: d.arr.uniqueItems,

		Properties:           slices.Clone(d.obj.properties),
		AdditionalProperties: d.additionalAllowed(),
		MinProperties:        d.obj.minProperties,
		MaxProperties:        d.obj.maxProperties,
		SchemaName:           d.obj.schemaName,
	}
	if d.format != nil {
		c.Format = d.format.Name()
	}
	if d.str.pattern != nil {
		c.Pattern = d.str.pattern.Source()
	}
	for _, k := range d.arr.itemKinds {
		c.Items = append(c.Items, d.arr.items[k]...)
	}
	return c
}

// Documentation renders a human-readable description of the parameter: its
// description, constraints, format and documented steps, one per line.
func (d *Definition) Documentation() string {
	var lines []string
	if d.description != "" {
		lines = append(lines, d.description)
	}

	head := d.shapeName()
	switch {
	case d.required:
		head += ", required"
	case d.hasDefault:
		head += ", default " + stringutil.RenderValue(d.def)
	}
	if d.nullable {
		head += ", nullable"
	}
	if d.deprecated {
		head += ", deprecated"
	}
	lines = append(lines, "Type: "+head)

	if len(d.enum) > 0 {
		lines = append(lines, "Allowed values: "+stringutil.RenderList(d.enum))
	}
	if all := d.Rules(); len(all) > 0 {
		descs := make([]string, len(all))
		for i, r := range all {
			descs[i] = r.Description()
		}
		lines = append(lines, "Constraints: "+strings.Join(descs, ", "))
	}
	if len(d.dependsOn) > 0 {
		names := make([]string, len(d.dependsOn))
		for i, dep := range d.dependsOn {
			names[i] = dep.name
		}
		lines = append(lines, "Requires: "+strings.Join(names, ", "))
	}
	if len(d.dependsAbsent) > 0 {
		lines = append(lines, "Excludes: "+strings.Join(d.dependsAbsent, ", "))
	}
	if d.format != nil && d.format.Documentation() != "" {
		lines = append(lines, "Format: "+d.format.Documentation())
	}
	for _, s := range d.userSteps {
		if doc, ok := s.(Documenter); ok && doc.Documentation() != "" {
			lines = append(lines, doc.Documentation())
		}
	}
	if len(d.examples) > 0 {
		lines = append(lines, "Examples: "+stringutil.RenderList(d.examples))
	}
	return strings.Join(lines, "\n")
}

// Describe returns the documentation of d and, recursively, of its items
// and properties, keyed by pointer. Item definitions are keyed
// "<array>/items/<kind>" with a position suffix when a kind has several.
func Describe(d *Definition) map[string]string {
	out := make(map[string]string)
	describeInto(out, d, d.Pointer())
	return out
}

func describeInto(out map[string]string, d *Definition, ptr string) {
	out[ptr] = d.Documentation()
	for _, p := range d.obj.properties {
		describeInto(out, p, pathutil.Join(ptr, p.name))
	}
	for _, k := range d.arr.itemKinds {
		defs := d.arr.items[k]
		for i, item := range defs {
			key := k.String()
			if len(defs) > 1 {
				key += strconv.Itoa(i)
			}
			describeInto(out, item, pathutil.Join(ptr, "items", key))
		}
	}
}
