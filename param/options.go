package param

import (
	"fmt"
	"slices"

	"github.com/erraggy/paramprep/oaserrors"
	"github.com/erraggy/paramprep/rules"
)

// Option configures a Definition during construction.
type Option func(*Definition) error

func configErr(d *Definition, option string, value any, format string, args ...any) error {
	return &oaserrors.ConfigError{
		Parameter: d.name,
		Option:    option,
		Value:     value,
		Message:   fmt.Sprintf(format, args...),
	}
}

// onlyFor guards shape-specific options.
func onlyFor(option string, kinds ...Kind) func(*Definition) error {
	return func(d *Definition) error {
		if slices.Contains(kinds, d.kind) {
			return nil
		}
		return configErr(d, option, nil, "not applicable to %s parameters", d.kind)
	}
}

func nonNegative(d *Definition, option string, n int) error {
	if n < 0 {
		return configErr(d, option, n, "must not be negative")
	}
	return nil
}

// Required marks the parameter as mandatory. It conflicts with Default.
func Required() Option {
	return func(d *Definition) error {
		if d.hasDefault {
			return configErr(d, "Required", nil, "a parameter with a default value cannot be required")
		}
		d.required = true
		return nil
	}
}

// Nullable lets null pass through every step except dependency checks.
func Nullable() Option {
	return func(d *Definition) error {
		d.nullable = true
		return nil
	}
}

// Default sets the value used when the parameter is absent. It conflicts with Required.
func Default(v any) Option {
	return func(d *Definition) error {
		if d.required {
			return configErr(d, "Default", v, "a required parameter cannot have a default value")
		}
		d.def = v
		d.hasDefault = true
		return nil
	}
}

// Enum restricts the value to the given set.
func Enum(values ...any) Option {
	return func(d *Definition) error {
		if len(values) == 0 {
			return configErr(d, "Enum", nil, "at least one value is required")
		}
		d.enum = slices.Clone(values)
		return nil
	}
}

// StrictEnum compares enum members without cross-type conversion.
// The default is loose comparison, where "1" matches 1.
func StrictEnum() Option {
	return func(d *Definition) error {
		d.strictEnum = true
		return nil
	}
}

// Examples records example values for documentation.
func Examples(values ...any) Option {
	return func(d *Definition) error {
		d.examples = append(d.examples, values...)
		return nil
	}
}

// Deprecated marks the parameter as deprecated.
func Deprecated() Option {
	return func(d *Definition) error {
		d.deprecated = true
		return nil
	}
}

// ReadOnly marks the parameter as read-only.
func ReadOnly() Option {
	return func(d *Definition) error {
		d.access = AccessReadOnly
		return nil
	}
}

// WriteOnly marks the parameter as write-only.
func WriteOnly() Option {
	return func(d *Definition) error {
		d.access = AccessWriteOnly
		return nil
	}
}

// Description sets the human description.
func Description(s string) Option {
	return func(d *Definition) error {
		d.description = s
		return nil
	}
}

// Coerce enables automatic conversion of alternate runtime types, e.g. "12" to 12.
func Coerce() Option {
	return func(d *Definition) error {
		d.coerce = true
		return nil
	}
}

// WithFormat attaches a format. The format must apply to the parameter's kind.
func WithFormat(f Format) Option {
	return func(d *Definition) error {
		if f == nil {
			return configErr(d, "Format", nil, "format is nil")
		}
		if !f.AppliesTo(d.kind) {
			return configErr(d, "Format", f.Name(), "format does not apply to %s parameters", d.kind)
		}
		d.format = f
		return nil
	}
}

// WithRules appends ad-hoc validation rules, evaluated after shape and format rules.
func WithRules(rs ...rules.Rule) Option {
	return func(d *Definition) error {
		for _, r := range rs {
			if r == nil {
				return configErr(d, "Rules", nil, "rule is nil")
			}
		}
		d.userRules = append(d.userRules, rs...)
		return nil
	}
}

// WithSteps appends ad-hoc preparation steps, run last in registration order.
func WithSteps(steps ...Step) Option {
	return func(d *Definition) error {
		for _, s := range steps {
			if s == nil {
				return configErr(d, "Steps", nil, "step is nil")
			}
		}
		d.userSteps = append(d.userSteps, steps...)
		return nil
	}
}

// WithEngine sets the rule engine. The default is rules.NewEvaluator().
func WithEngine(e rules.Engine) Option {
	return func(d *Definition) error {
		if e == nil {
			return configErr(d, "Engine", nil, "engine is nil")
		}
		d.engine = e
		return nil
	}
}

// DependsOn requires each named parameter to be present alongside this one.
func DependsOn(names ...string) Option {
	return func(d *Definition) error {
		for _, n := range names {
			if n == "" {
				return configErr(d, "DependsOn", nil, "dependency name is empty")
			}
			d.dependsOn = append(d.dependsOn, dependency{name: n})
		}
		return nil
	}
}

// DependsOnWhen requires name to be present and its value to satisfy when.
func DependsOnWhen(name string, when Predicate) Option {
	return func(d *Definition) error {
		if name == "" {
			return configErr(d, "DependsOn", nil, "dependency name is empty")
		}
		d.dependsOn = append(d.dependsOn, dependency{name: name, when: when})
		return nil
	}
}

// DependsOnAbsenceOf forbids each named parameter from being present alongside this one.
func DependsOnAbsenceOf(names ...string) Option {
	return func(d *Definition) error {
		for _, n := range names {
			if n == "" {
				return configErr(d, "DependsOnAbsenceOf", nil, "dependency name is empty")
			}
		}
		d.dependsAbsent = append(d.dependsAbsent, names...)
		return nil
	}
}

// MinLength sets the minimum string length in characters.
func MinLength(n int) Option {
	return func(d *Definition) error {
		if err := onlyFor("MinLength", KindString)(d); err != nil {
			return err
		}
		if err := nonNegative(d, "MinLength", n); err != nil {
			return err
		}
		d.str.minLength = &n
		return nil
	}
}

// MaxLength sets the maximum string length in characters.
func MaxLength(n int) Option {
	return func(d *Definition) error {
		if err := onlyFor("MaxLength", KindString)(d); err != nil {
			return err
		}
		if err := nonNegative(d, "MaxLength", n); err != nil {
			return err
		}
		d.str.maxLength = &n
		return nil
	}
}

// Pattern requires the string to match a regular expression. Delimited
// "/expr/flags" patterns are accepted. An invalid pattern is a configuration error.
func Pattern(pattern string) Option {
	return func(d *Definition) error {
		if err := onlyFor("Pattern", KindString)(d); err != nil {
			return err
		}
		r, err := rules.Pattern(pattern)
		if err != nil {
			return &oaserrors.ConfigError{Parameter: d.name, Option: "Pattern", Value: pattern, Message: "invalid pattern", Cause: err}
		}
		d.str.pattern = r
		return nil
	}
}

// NoTrim disables the default whitespace trimming of strings.
func NoTrim() Option {
	return func(d *Definition) error {
		if err := onlyFor("NoTrim", KindString)(d); err != nil {
			return err
		}
		d.str.noTrim = true
		return nil
	}
}

// Sanitize strips HTML markup and encodes quotes after validation.
// It is unsafe for binary or pre-formatted data and therefore opt-in.
func Sanitize() Option {
	return func(d *Definition) error {
		if err := onlyFor("Sanitize", KindString)(d); err != nil {
			return err
		}
		d.str.sanitize = true
		return nil
	}
}

// NormalizeUnicode converts strings to Unicode NFC before validation.
func NormalizeUnicode() Option {
	return func(d *Definition) error {
		if err := onlyFor("NormalizeUnicode", KindString)(d); err != nil {
			return err
		}
		d.str.normalize = true
		return nil
	}
}

// Minimum sets an inclusive lower bound.
func Minimum(v float64) Option {
	return func(d *Definition) error {
		if err := onlyFor("Minimum", KindInteger, KindNumber)(d); err != nil {
			return err
		}
		d.num.minimum = &v
		d.num.exclusiveMinimum = false
		return nil
	}
}

// ExclusiveMinimum sets an exclusive lower bound.
func ExclusiveMinimum(v float64) Option {
	return func(d *Definition) error {
		if err := onlyFor("ExclusiveMinimum", KindInteger, KindNumber)(d); err != nil {
			return err
		}
		d.num.minimum = &v
		d.num.exclusiveMinimum = true
		return nil
	}
}

// Maximum sets an inclusive upper bound.
func Maximum(v float64) Option {
	return func(d *Definition) error {
		if err := onlyFor("Maximum", KindInteger, KindNumber)(d); err != nil {
			return err
		}
		d.num.maximum = &v
		d.num.exclusiveMaximum = false
		return nil
	}
}

// ExclusiveMaximum sets an exclusive upper bound.
func ExclusiveMaximum(v float64) Option {
	return func(d *Definition) error {
		if err := onlyFor("ExclusiveMaximum", KindInteger, KindNumber)(d); err != nil {
			return err
		}
		d.num.maximum = &v
		d.num.exclusiveMaximum = true
		return nil
	}
}

// MultipleOf requires the number to be an integral multiple of m.
func MultipleOf(m float64) Option {
	return func(d *Definition) error {
		if err := onlyFor("MultipleOf", KindInteger, KindNumber)(d); err != nil {
			return err
		}
		if m <= 0 {
			return configErr(d, "MultipleOf", m, "must be greater than zero")
		}
		d.num.multipleOf = &m
		return nil
	}
}

// StrictDecimal narrows a number parameter to float input only.
func StrictDecimal() Option {
	return func(d *Definition) error {
		if err := onlyFor("StrictDecimal", KindNumber)(d); err != nil {
			return err
		}
		d.num.strictDecimal = true
		return nil
	}
}

// Items declares the accepted item definitions of an array, grouped by kind.
// Candidates of one kind are tried in the order given; the first that
// prepares an item wins. Without Items any item shape is accepted.
func Items(defs ...*Definition) Option {
	return func(d *Definition) error {
		if err := onlyFor("Items", KindArray)(d); err != nil {
			return err
		}
		if d.arr.items == nil {
			d.arr.items = make(map[Kind][]*Definition)
		}
		for _, item := range defs {
			if item == nil {
				return configErr(d, "Items", nil, "item definition is nil")
			}
			if _, ok := d.arr.items[item.kind]; !ok {
				d.arr.itemKinds = append(d.arr.itemKinds, item.kind)
			}
			d.arr.items[item.kind] = append(d.arr.items[item.kind], item)
		}
		return nil
	}
}

// MinItems sets the minimum item count.
func MinItems(n int) Option {
	return func(d *Definition) error {
		if err := onlyFor("MinItems", KindArray)(d); err != nil {
			return err
		}
		if err := nonNegative(d, "MinItems", n); err != nil {
			return err
		}
		d.arr.minItems = &n
		return nil
	}
}

// MaxItems sets the maximum item count.
func MaxItems(n int) Option {
	return func(d *Definition) error {
		if err := onlyFor("MaxItems", KindArray)(d); err != nil {
			return err
		}
		if err := nonNegative(d, "MaxItems", n); err != nil {
			return err
		}
		d.arr.maxItems = &n
		return nil
	}
}

// UniqueItems requires pairwise distinct items.
func UniqueItems() Option {
	return func(d *Definition) error {
		if err := onlyFor("UniqueItems", KindArray)(d); err != nil {
			return err
		}
		d.arr.uniqueItems = true
		return nil
	}
}

// ForEach appends steps that run on every item after it matched an item definition.
func ForEach(steps ...Step) Option {
	return func(d *Definition) error {
		if err := onlyFor("ForEach", KindArray)(d); err != nil {
			return err
		}
		for _, s := range steps {
			if s == nil {
				return configErr(d, "ForEach", nil, "step is nil")
			}
		}
		d.arr.forEach = append(d.arr.forEach, steps...)
		return nil
	}
}

// Properties declares the properties of an object, in sweep order.
// Each definition must be named; names must be unique.
func Properties(defs ...*Definition) Option {
	return func(d *Definition) error {
		if err := onlyFor("Properties", KindObject)(d); err != nil {
			return err
		}
		if d.obj.byName == nil {
			d.obj.byName = make(map[string]*Definition)
		}
		for _, p := range defs {
			if p == nil {
				return configErr(d, "Properties", nil, "property definition is nil")
			}
			if p.name == "" {
				return configErr(d, "Properties", nil, "property definition has no name")
			}
			if _, dup := d.obj.byName[p.name]; dup {
				return configErr(d, "Properties", p.name, "duplicate property")
			}
			d.obj.byName[p.name] = p
			d.obj.properties = append(d.obj.properties, p)
		}
		return nil
	}
}

// AdditionalProperties sets whether undeclared keys are allowed. When not
// set, they are allowed only if no properties are declared.
func AdditionalProperties(allowed bool) Option {
	return func(d *Definition) error {
		if err := onlyFor("AdditionalProperties", KindObject)(d); err != nil {
			return err
		}
		d.obj.additional = &allowed
		return nil
	}
}

// MinProperties sets the minimum property count.
func MinProperties(n int) Option {
	return func(d *Definition) error {
		if err := onlyFor("MinProperties", KindObject)(d); err != nil {
			return err
		}
		if err := nonNegative(d, "MinProperties", n); err != nil {
			return err
		}
		d.obj.minProperties = &n
		return nil
	}
}

// MaxProperties sets the maximum property count.
func MaxProperties(n int) Option {
	return func(d *Definition) error {
		if err := onlyFor("MaxProperties", KindObject)(d); err != nil {
			return err
		}
		if err := nonNegative(d, "MaxProperties", n); err != nil {
			return err
		}
		d.obj.maxProperties = &n
		return nil
	}
}

// SchemaName tags an object for documentation reuse. It does not affect preparation.
func SchemaName(name string) Option {
	return func(d *Definition) error {
		if err := onlyFor("SchemaName", KindObject)(d); err != nil {
			return err
		}
		d.obj.schemaName = name
		return nil
	}
}
