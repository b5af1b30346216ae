package param

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/erraggy/paramprep/internal/equalutil"
	"github.com/erraggy/paramprep/internal/stringutil"
	"github.com/erraggy/paramprep/oaserrors"
	"github.com/erraggy/paramprep/rules"
)

func (d *Definition) typeStep() Step {
	kind, coerce, strict := d.kind, d.coerce, d.num.strictDecimal
	return NewStep("Check type "+kind.String(), func(v any, _ string, _ *Values) (any, error) {
		if out, ok := accept(kind, v, strict); ok {
			return out, nil
		}
		if kind == KindInteger && outOfRange(v) {
			return nil, &oaserrors.InvalidInputError{
				Message: "Integer out of range",
				Detail:  fmt.Sprintf("%v does not fit in a signed 64-bit integer", v),
			}
		}
		if !coerce {
			return nil, oaserrors.NewInvalidInput("Expected %s, got %s", kind, typeName(v))
		}
		if out, ok := cast(kind, v); ok {
			return out, nil
		}
		return nil, oaserrors.NewInvalidInput("Unable to cast value of type %s to %s", typeName(v), kind)
	})
}

func (d *Definition) enumStep() Step {
	allowed, strict := d.enum, d.strictEnum
	equal := equalutil.Loose
	if strict {
		equal = equalutil.Strict
	}
	list := stringutil.RenderList(allowed)
	return NewDocumentedStep("Check enum", "Allowed values: "+list, func(v any, _ string, _ *Values) (any, error) {
		for _, a := range allowed {
			if equal(v, a) {
				return v, nil
			}
		}
		return nil, oaserrors.NewInvalidInput("Value must be one of: %s", list)
	})
}

func (d *Definition) dependencyStep() Step {
	deps, absent := d.dependsOn, d.dependsAbsent
	return NewStep("Check dependencies", func(v any, _ string, values *Values) (any, error) {
		var missing []string
		for _, dep := range deps {
			if !values.Has(dep.name) {
				missing = append(missing, dep.name)
			}
		}
		if len(missing) > 0 {
			return nil, oaserrors.NewInvalidInput("Missing required dependencies: %s", strings.Join(missing, ", "))
		}
		for _, dep := range deps {
			if dep.when == nil {
				continue
			}
			other, err := values.Get(dep.name)
			if err != nil {
				return nil, err
			}
			if err := dep.when(other); err != nil {
				return nil, err
			}
		}

		var present []string
		for _, name := range absent {
			if values.Has(name) {
				present = append(present, name)
			}
		}
		if len(present) > 0 {
			return nil, oaserrors.NewInvalidInput("Parameter cannot be combined with: %s", strings.Join(present, ", "))
		}
		return v, nil
	})
}

func (d *Definition) ruleStep(all []rules.Rule) Step {
	engine := d.engine
	descs := make([]string, len(all))
	for i, r := range all {
		descs[i] = r.Description()
	}
	return NewDocumentedStep("Validate rules", strings.Join(descs, ", "), func(v any, _ string, _ *Values) (any, error) {
		if msgs := engine.Evaluate(all, v); len(msgs) > 0 {
			return nil, &oaserrors.InvalidInputError{Message: strings.Join(msgs, "; ")}
		}
		return v, nil
	})
}

func (d *Definition) shapeRules() []rules.Rule {
	var out []rules.Rule
	switch d.kind {
	case KindString:
		if d.str.minLength != nil {
			out = append(out, rules.MinLength(*d.str.minLength))
		}
		if d.str.maxLength != nil {
			out = append(out, rules.MaxLength(*d.str.maxLength))
		}
		if d.str.pattern != nil {
			out = append(out, d.str.pattern)
		}
	case KindInteger, KindNumber:
		if d.num.minimum != nil {
			out = append(out, rules.Minimum(*d.num.minimum, d.num.exclusiveMinimum))
		}
		if d.num.maximum != nil {
			out = append(out, rules.Maximum(*d.num.maximum, d.num.exclusiveMaximum))
		}
		if d.num.multipleOf != nil {
			out = append(out, rules.MultipleOf(*d.num.multipleOf))
		}
	case KindArray:
		if d.arr.minItems != nil {
			out = append(out, rules.MinItems(*d.arr.minItems))
		}
		if d.arr.maxItems != nil {
			out = append(out, rules.MaxItems(*d.arr.maxItems))
		}
		if d.arr.uniqueItems {
			out = append(out, rules.UniqueItems())
		}
	case KindObject:
		if d.obj.minProperties != nil {
			out = append(out, rules.MinProperties(*d.obj.minProperties))
		}
		if d.obj.maxProperties != nil {
			out = append(out, rules.MaxProperties(*d.obj.maxProperties))
		}
		var required []string
		for _, p := range d.obj.properties {
			if p.required {
				required = append(required, p.name)
			}
		}
		if len(required) > 0 {
			out = append(out, rules.RequiredProperties(required...))
		}
		if !d.additionalAllowed() {
			names := make([]string, len(d.obj.properties))
			for i, p := range d.obj.properties {
				names[i] = p.name
			}
			out = append(out, rules.NoAdditionalProperties(names...))
		}
	}
	return out
}

func (d *Definition) preCastSteps() []Step {
	switch d.kind {
	case KindArray:
		return []Step{NewStep("Deserialize array", deserializeArray)}
	case KindObject:
		return []Step{NewStep("Deserialize object", deserializeObject)}
	}
	return nil
}

func deserializeArray(v any, _ string, values *Values) (any, error) {
	ds := values.Context().Deserializer()
	if ds == nil || v == nil {
		return v, nil
	}
	if _, ok := v.([]any); ok {
		return v, nil
	}
	return ds.DeserializeArray(v)
}

func deserializeObject(v any, _ string, values *Values) (any, error) {
	ds := values.Context().Deserializer()
	if ds == nil || v == nil {
		return v, nil
	}
	if _, ok := v.(map[string]any); ok {
		return v, nil
	}
	return ds.DeserializeObject(v)
}

func (d *Definition) preValidationSteps() []Step {
	if d.kind != KindString {
		return nil
	}
	var steps []Step
	if d.str.normalize {
		steps = append(steps, Transform("Normalize unicode", func(v any) (any, error) {
			s := v.(string)
			if !utf8.ValidString(s) {
				return nil, oaserrors.NewInvalidInput("Invalid UTF-8 string")
			}
			return norm.NFC.String(s), nil
		}))
	}
	if !d.str.noTrim {
		steps = append(steps, Transform("Trim string", func(v any) (any, error) {
			return strings.TrimSpace(v.(string)), nil
		}))
	}
	return steps
}

func (d *Definition) postValidationSteps() []Step {
	switch d.kind {
	case KindString:
		if d.str.sanitize {
			return []Step{Transform("Sanitize string", func(v any) (any, error) {
				return stringutil.StripTags(v.(string)), nil
			})}
		}
	case KindNumber:
		return []Step{Transform("Cast to float", func(v any) (any, error) {
			if i, ok := v.(int64); ok {
				return float64(i), nil
			}
			return v, nil
		})}
	case KindArray:
		return []Step{d.itemStep()}
	case KindObject:
		return []Step{d.propertyStep()}
	}
	return nil
}
