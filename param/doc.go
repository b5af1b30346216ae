// Package param provides the parameter preparation pipeline: immutable
// parameter definitions that convert raw, loosely-typed input into validated,
// normalized values, or report pointer-addressed errors.
//
// Import path: github.com/erraggy/paramprep/param
//
// # Definitions
//
// A [Definition] describes one named parameter of a [Kind] (string, number,
// integer, boolean, array or object) with its constraints. Definitions are
// built with functional options and are immutable afterwards, so one
// definition may be shared by any number of concurrent preparations:
//
//	limit := param.Must(param.Integer("limit",
//	    param.Coerce(),
//	    param.Minimum(1),
//	    param.Maximum(100),
//	    param.Default(20),
//	))
//
// Misconfiguration (a required parameter with a default, a format attached to
// the wrong kind, an invalid pattern) is reported at construction time as a
// *oaserrors.ConfigError.
//
// # Pipeline
//
// Each definition assembles its ordered step list once:
//
//  1. dependency checks (only when a populated [Values] collection is supplied)
//  2. pre-cast steps (array and object deserialization)
//  3. type check, with optional coercion
//  4. enum check
//  5. pre-validation steps (string normalization and trimming, format steps)
//  6. rule evaluation: every rule runs and all failures are reported together
//  7. post-validation steps (float cast, item and property preparation)
//  8. format steps
//  9. user steps
//
// Nullable definitions let null pass through steps 2-9 unchanged.
//
// # Nested Structures
//
// Array items and object properties are prepared recursively through the same
// pipeline. Failures from every item or property are collected and returned
// together, each addressed by an RFC 6901 pointer such as "/test/person/firstName"
// or "/tags/3".
//
// # Errors
//
// Preparation failures are returned as *[PreparationError]; use [ErrorsOf] to
// extract the [Error] list, and errors.Is(err, oaserrors.ErrPreparation) to
// recognize them.
//
// # Batches
//
// A [Batch] prepares sibling top-level parameters against one shared values
// collection, applying required and default semantics and aggregating every
// failure.
package param
