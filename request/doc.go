// Package request prepares the parameters of an HTTP request.
//
// An Operation groups the parameter definitions of one endpoint by location:
// path, query, header, cookie and body. Prepare extracts the raw inputs from
// an *http.Request, runs each location as one param.Batch and reports every
// failure in a single *param.PreparationError whose pointers are rooted at
// the location, e.g. "/query/limit" or "/body/owner/name".
//
// # Contexts
//
// Each location gets its own param.Context (see ContextFor). Path, query,
// header and cookie values arrive as strings, so their contexts carry the
// standard comma-separated deserializer; the JSON body is already structured
// and its context has none.
//
// # Basic Usage
//
//	op := &request.Operation{
//	    Path:  []*param.Definition{param.Must(param.Integer("petId", param.Required(), param.Coerce()))},
//	    Query: []*param.Definition{param.Must(param.Array("tags"))},
//	}
//	res, err := op.Prepare(req, map[string]string{"petId": "42"})
//	if err != nil {
//	    for _, e := range param.ErrorsOf(err) {
//	        log.Printf("%s: %s", e.Pointer, e.Title)
//	    }
//	}
//	petID := res.Path["petId"] // int64(42)
//
// # Routing and Middleware
//
// A Router maps path templates such as "/pets/{petId}" to operations and
// extracts the path parameters. Router.Middleware rejects unprepared
// requests with a 400 problem document and hands the Result to the next
// handler through the request context (see FromContext).
package request
