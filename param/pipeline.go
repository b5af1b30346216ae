package param

import (
	"fmt"

	"github.com/erraggy/paramprep/oaserrors"
	"github.com/erraggy/paramprep/rules"
)

// assemble builds the rule set and the ordered step list. It runs once, at the
// end of New.
//
// Order: dependency checks, pre-cast, type check, enum, pre-validation, rules,
// post-validation, format steps, user steps. Nullable definitions wrap every
// step after the dependency checks so null passes straight through.
func (d *Definition) assemble() {
	d.builtinRules = d.shapeRules()

	var steps []Step
	steps = append(steps, d.preCastSteps()...)
	steps = append(steps, d.typeStep())
	if len(d.enum) > 0 {
		steps = append(steps, d.enumStep())
	}
	steps = append(steps, d.preValidationSteps()...)
	if d.format != nil {
		steps = append(steps, d.format.PreValidationSteps()...)
	}
	if all := d.Rules(); len(all) > 0 {
		steps = append(steps, d.ruleStep(all))
	}
	steps = append(steps, d.postValidationSteps()...)
	if d.format != nil {
		steps = append(steps, d.format.Steps()...)
	}
	steps = append(steps, d.userSteps...)

	if d.nullable {
		steps = wrapNullable(steps)
	}
	d.pipeline = steps

	if len(d.dependsOn) > 0 || len(d.dependsAbsent) > 0 {
		d.depSteps = []Step{d.dependencyStep()}
	}
}

func wrapNullable(steps []Step) []Step {
	out := make([]Step, len(steps))
	for i, s := range steps {
		out[i] = nullSkip{s}
	}
	return out
}

// Rules returns every validation rule in evaluation order: shape rules, then
// format rules, then user rules.
func (d *Definition) Rules() []rules.Rule {
	var out []rules.Rule
	out = append(out, d.builtinRules...)
	if d.format != nil {
		out = append(out, d.format.Rules()...)
	}
	out = append(out, d.userRules...)
	return out
}

// Steps returns the assembled pipeline, excluding dependency checks.
func (d *Definition) Steps() []Step {
	out := make([]Step, len(d.pipeline))
	copy(out, d.pipeline)
	return out
}

// Prepare runs the pipeline against value.
//
// When values is nil, or holds no entries, dependency checks are skipped and a
// single-entry collection is synthesized from the parameter name and value.
// Otherwise dependency checks run against values, and each step's output is
// written back to the parameter's entry so later steps observe it.
//
// A failure is returned as *PreparationError.
func (d *Definition) Prepare(value any, values *Values) (any, error) {
	checkDeps := values != nil && values.Len() > 0
	if values == nil {
		values = NewValues(nil)
	}
	out, _, err := d.prepare(value, values, checkDeps)
	return out, err
}

func (d *Definition) prepare(value any, values *Values, checkDeps bool) (any, *Values, error) {
	pointer := d.Pointer()
	ctx := values.Context()
	if values.depth > ctx.MaxDepth() {
		limit := &oaserrors.ResourceLimitError{
			ResourceType: "nesting_depth",
			Limit:        int64(ctx.MaxDepth()),
			Actual:       int64(values.depth),
		}
		e := NewError(fmt.Sprintf("Maximum nesting depth of %d exceeded", ctx.MaxDepth()), pointer)
		return nil, values, &PreparationError{Errors: []Error{e}, cause: limit}
	}

	if d.name != "" && !values.Has(d.name) {
		values = values.withEntry(d.name, value)
	}

	total := len(d.pipeline)
	if checkDeps {
		total += len(d.depSteps)
	}
	r := runner{name: d.name, pointer: pointer, total: total, logger: ctx.Logger()}
	if checkDeps {
		var err error
		if value, values, err = r.run(d.depSteps, value, values); err != nil {
			return nil, values, err
		}
	}
	return r.run(d.pipeline, value, values)
}

// runner executes steps in order, threading the value and the collection.
type runner struct {
	name     string
	pointer  string
	position int
	total    int
	logger   Logger
}

func (r *runner) run(steps []Step, value any, values *Values) (any, *Values, error) {
	for _, s := range steps {
		r.position++
		r.logger.Debug("executing step",
			"parameter", r.pointer,
			"step", s.Description(),
			"position", r.position,
			"total", r.total,
		)
		out, err := s.Prepare(value, r.pointer, values)
		if err != nil {
			return nil, values, translate(err, r.pointer)
		}
		value = out
		if r.name != "" {
			if next, err := values.WithPrepared(r.name, value); err == nil {
				values = next
			}
		}
	}
	return value, values, nil
}
