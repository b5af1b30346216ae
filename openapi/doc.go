// Package openapi translates parameter definitions to and from OpenAPI
// documents.
//
// Export works from the read-only param.Definition.Constraints snapshot, so
// any definition can be documented regardless of how it was built:
//
//   - ToSchema and ToParameter produce OAS 3.0 objects (github.com/getkin/kin-openapi)
//   - Operation documents a whole request.Operation as parameters plus a JSON request body
//   - ToSwaggerSchema and ToSwaggerParameter produce OAS 2.0 objects (github.com/go-openapi/spec)
//
// Behavior without an OpenAPI counterpart (user rules, user steps,
// dependencies) is carried in the human-readable parameter description
// produced by param.Definition.Documentation.
//
// # Import
//
// FromSchema and FromParameter build definitions from OAS 3.0 schemas. Types,
// nullability, enums, defaults, formats (resolved with format.ByName) and
// the string, numeric, array and object constraints are carried over.
// Cyclic schema graphs cannot be expressed as immutable definitions and are
// rejected with an *oaserrors.ConfigError.
//
//	doc, _ := openapi3.NewLoader().LoadFromFile("petstore.yaml")
//	op := doc.Paths.Find("/pets").Get
//	for _, ref := range op.Parameters {
//	    def, err := openapi.FromParameter(ref.Value)
//	    ...
//	}
package openapi
