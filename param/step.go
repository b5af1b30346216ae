package param

import "github.com/erraggy/paramprep/rules"

// Step is one unit of a preparation pipeline.
//
// Prepare receives the current value, the parameter's full pointer name (for
// nested parameters this includes every enclosing object and array segment,
// e.g. "/test/person/firstName") and the live values collection. It returns
// the transformed value or fails.
//
// Steps must not retain per-call state; one Step value is shared by every
// concurrent preparation of the definition that owns it. A step signals bad
// input by returning *oaserrors.InvalidInputError (or any error); the pipeline
// translates it into an Error addressed to the parameter.
type Step interface {
	Description() string
	Prepare(value any, name string, values *Values) (any, error)
}

// Documenter is implemented by steps that contribute API documentation.
type Documenter interface {
	Documentation() string
}

// StepFunc is the signature of a step's transform.
type StepFunc func(value any, name string, values *Values) (any, error)

type funcStep struct {
	desc string
	doc  string
	fn   StepFunc
}

func (s funcStep) Description() string { return s.desc }

func (s funcStep) Documentation() string { return s.doc }

func (s funcStep) Prepare(value any, name string, values *Values) (any, error) {
	return s.fn(value, name, values)
}

// NewStep creates a Step from a function.
func NewStep(description string, fn StepFunc) Step {
	return funcStep{desc: description, fn: fn}
}

// NewDocumentedStep creates a Step that also contributes API documentation.
func NewDocumentedStep(description, documentation string, fn StepFunc) Step {
	return funcStep{desc: description, doc: documentation, fn: fn}
}

// Transform creates a Step from a value-only conversion.
func Transform(description string, fn func(value any) (any, error)) Step {
	return funcStep{desc: description, fn: func(v any, _ string, _ *Values) (any, error) {
		return fn(v)
	}}
}

// nullSkip passes nil through without calling the wrapped step.
type nullSkip struct {
	Step
}

func (s nullSkip) Prepare(value any, name string, values *Values) (any, error) {
	if value == nil {
		return nil, nil
	}
	return s.Step.Prepare(value, name, values)
}

func (s nullSkip) Documentation() string {
	if d, ok := s.Step.(Documenter); ok {
		return d.Documentation()
	}
	return ""
}

// Format is a named bundle of rules, steps and documentation that applies to
// exactly one parameter kind.
type Format interface {
	// Name is the OpenAPI format name, e.g. "uuid".
	Name() string
	// AppliesTo reports whether the format may be attached to kind.
	AppliesTo(kind Kind) bool
	// Rules are evaluated after the built-in shape rules.
	Rules() []rules.Rule
	// PreValidationSteps run before rule evaluation.
	PreValidationSteps() []Step
	// Steps run after the shape's post-validation steps.
	Steps() []Step
	// Documentation describes the format.
	Documentation() string
}
