// Package oaserrors provides structured error types for the paramprep library.
//
// Import path: github.com/erraggy/paramprep/oaserrors
//
// This package enables programmatic error handling via [errors.Is] and [errors.As],
// allowing callers to distinguish a schema author's mistake from routine invalid
// client input.
//
// # Error Types
//
//   - [ConfigError]: an invalid parameter definition, detected while the schema is built
//   - [InvalidInputError]: a collaborator (deserializer, rule, predicate, format step)
//     rejected a value; translated into a structured parameter error at the step boundary
//   - [ResourceLimitError]: preparation exceeded a configured limit (nesting depth)
//
// # Sentinel Errors
//
//   - [ErrConfig]: Matches any [ConfigError]
//   - [ErrInvalidInput]: Matches any [InvalidInputError]
//   - [ErrResourceLimit]: Matches any [ResourceLimitError]
//   - [ErrPreparation]: Matches a failed preparation (param.PreparationError)
//   - [ErrNotFound]: A values collection has no entry with the requested name
//   - [ErrNotPrepared]: A prepared value was read before it was set
//
// # Usage
//
//	_, err := def.Prepare(raw, nil)
//	switch {
//	case errors.Is(err, oaserrors.ErrPreparation):
//	    // render param.ErrorsOf(err) to the client
//	case err != nil:
//	    // programming error
//	}
package oaserrors
