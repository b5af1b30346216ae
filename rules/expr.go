package rules

import (
	"errors"
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// ExprRule evaluates an expr-lang boolean expression with the candidate bound
// to the variable "value".
//
//	r, _ := rules.Expr(`value % 2 == 0`, "value must be even")
type ExprRule struct {
	source  string
	message string
	program *vm.Program
}

// exprEnv declares the variables available to rule expressions. Value is
// typed any so expressions are checked when the rule runs.
type exprEnv struct {
	Value any `expr:"value"`
}

// Expr compiles expression once; the returned rule is safe for concurrent use.
// When message is empty a generic failure message naming the expression is used.
func Expr(expression, message string) (*ExprRule, error) {
	if expression == "" {
		return nil, errors.New("empty rule expression")
	}
	program, err := expr.Compile(expression, expr.Env(exprEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", expression, err)
	}
	return &ExprRule{source: expression, message: message, program: program}, nil
}

// Description implements Rule.
func (r *ExprRule) Description() string { return "expression: " + r.source }

// Source returns the expression text.
func (r *ExprRule) Source() string { return r.source }

// Check implements Rule.
func (r *ExprRule) Check(value any) error {
	ok, err := r.Eval(value)
	if err != nil {
		return err
	}
	if !ok {
		if r.message != "" {
			return errors.New(r.message)
		}
		return failf("value does not satisfy %q", r.source)
	}
	return nil
}

// Eval runs the expression against value.
func (r *ExprRule) Eval(value any) (bool, error) {
	out, err := expr.Run(r.program, exprEnv{Value: value})
	if err != nil {
		return false, fmt.Errorf("eval %q: %w", r.source, err)
	}
	b, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("eval %q: expected bool result, got %T", r.source, out)
	}
	return b, nil
}
