package rules

import (
	"errors"
	"fmt"
)

// Rule is a single validation predicate.
type Rule interface {
	// Description returns a short human-readable summary, e.g. "minLength: 3".
	Description() string
	// Check returns nil when value satisfies the rule, or an error whose
	// message describes the violation.
	Check(value any) error
}

// Engine evaluates a set of rules against a value and returns every failure message.
// An empty result means the value passed.
type Engine interface {
	Evaluate(rules []Rule, value any) []string
}

// Evaluator is the default Engine.
// It is stateless and safe for concurrent use.
type Evaluator struct {
	stopOnFirst bool
}

// EvaluatorOption configures an Evaluator.
type EvaluatorOption func(*Evaluator)

// StopOnFirstFailure makes the evaluator return after the first failing rule.
func StopOnFirstFailure() EvaluatorOption {
	return func(e *Evaluator) {
		e.stopOnFirst = true
	}
}

// NewEvaluator creates an Evaluator.
func NewEvaluator(opts ...EvaluatorOption) *Evaluator {
	e := &Evaluator{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate implements Engine.
func (e *Evaluator) Evaluate(rules []Rule, value any) []string {
	var msgs []string
	for _, r := range rules {
		if r == nil {
			continue
		}
		if err := r.Check(value); err != nil {
			msgs = append(msgs, err.Error())
			if e.stopOnFirst {
				break
			}
		}
	}
	return msgs
}

var _ Engine = (*Evaluator)(nil)

// funcRule adapts a function to the Rule interface.
type funcRule struct {
	desc string
	fn   func(any) error
}

func (r funcRule) Description() string { return r.desc }

func (r funcRule) Check(value any) error { return r.fn(value) }

// Func creates a Rule from a check function.
func Func(description string, check func(value any) error) Rule {
	return funcRule{desc: description, fn: check}
}

// Predicate creates a Rule from a boolean predicate; a false result fails
// with message.
func Predicate(description, message string, pred func(value any) bool) Rule {
	return funcRule{desc: description, fn: func(v any) error {
		if pred(v) {
			return nil
		}
		return errors.New(message)
	}}
}

func failf(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}
