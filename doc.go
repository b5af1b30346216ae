// Package paramprep prepares request parameters described by the OpenAPI
// parameter model.
//
// A parameter definition turns one raw input value into a prepared value by
// running an ordered pipeline of steps: deserialization, type checking or
// coercion, enum membership, dependency checks, validation rules, string
// post-processing, array item and object property preparation, format steps
// and user steps. Every failure is reported as a structured error with a
// JSON pointer to the offending value.
//
// # Overview
//
// The library consists of these packages:
//
//   - param: definitions, the preparation pipeline, values, errors and batches
//   - rules: validation rules and the pluggable rule engine
//   - format: standard formats such as uuid, date-time and byte
//   - deserialize: comma, space, pipe and label delimited string deserializers
//   - request: preparation of whole HTTP requests, routing and middleware
//   - schema: declarative YAML definition documents
//   - openapi: export to OAS 3.0 and 2.0, import from OAS 3.0
//   - oaserrors: sentinel and typed errors for errors.Is and errors.As
//
// # Installation
//
//	go get github.com/erraggy/paramprep
//
// # Quick Start
//
// Declare a definition once and reuse it concurrently:
//
//	import "github.com/erraggy/paramprep/param"
//
//	limit := param.Must(param.Integer("limit",
//		param.Coerce(),
//		param.Minimum(1),
//		param.Maximum(100),
//	))
//
//	v, err := limit.Prepare("25", nil) // int64(25), nil
//
// Prepare several parameters with cross-parameter dependencies:
//
//	batch, err := param.NewBatch(param.DefaultContext(),
//		param.Must(param.String("cardNumber")),
//		param.Must(param.String("cvv", param.DependsOn("cardNumber"))),
//	)
//	values, err := batch.Prepare(map[string]any{"cvv": "123"})
//	for _, e := range param.ErrorsOf(err) {
//		fmt.Printf("%s: %s\n", e.Pointer, e.Title)
//	}
//	// /cvv: Missing required dependencies: cardNumber
//
// Load definitions from YAML:
//
//	import "github.com/erraggy/paramprep/schema"
//
//	defs, err := schema.Load(data)
//
// # Errors
//
// Misconfigured definitions fail at construction time with an
// *oaserrors.ConfigError. Invalid input fails at preparation time with a
// *param.PreparationError listing every problem found.
//
//	if errors.Is(err, oaserrors.ErrConfig) { ... }
//	if errors.Is(err, oaserrors.ErrPreparation) { ... }
//
// # Command Line
//
// The paramprep command prepares JSON input against a YAML schema, prints
// documentation as OAS 3.0 or 2.0 and serves both operations to MCP
// clients. See cmd/paramprep.
package paramprep
