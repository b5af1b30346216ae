// Package rules provides the validation rule capability used by parameter
// preparation pipelines.
//
// A [Rule] is a predicate with a human-readable description. Rules are
// evaluated together by an [Engine]; the default engine, [Evaluator], runs every
// rule and reports every failure message so one response lists every broken
// constraint.
//
// The engine is injected into parameter definitions explicitly; there is no
// process-wide rule registry.
//
// # Built-in Rules
//
// Shape constraints: [MinLength], [MaxLength], [Pattern], [Minimum],
// [Maximum], [MultipleOf], [MinItems], [MaxItems], [UniqueItems],
// [MinProperties], [MaxProperties], [RequiredProperties] and
// [NoAdditionalProperties].
//
// Ad-hoc rules: [Func] wraps a Go predicate, [Expr] compiles an expr-lang
// expression evaluated against "value", and [JSONSchema] validates against a
// JSON Schema (draft 2020-12) document.
//
// # Example
//
//	minLen := rules.MinLength(3)
//	msgs := rules.NewEvaluator().Evaluate([]rules.Rule{minLen}, "ab")
//	// msgs == []string{"string length 2 is less than minimum 3"}
package rules
