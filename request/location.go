package request

import (
	"github.com/erraggy/paramprep/deserialize"
	"github.com/erraggy/paramprep/param"
)

// Location is where a parameter is carried in an HTTP request.
type Location string

// Parameter locations.
const (
	LocationPath   Location = "path"
	LocationQuery  Location = "query"
	LocationHeader Location = "header"
	LocationCookie Location = "cookie"
	LocationBody   Location = "body"
)

// Locations lists every location in preparation order.
var Locations = []Location{LocationPath, LocationQuery, LocationHeader, LocationCookie, LocationBody}

// Pointer returns the pointer that roots the location's errors.
func (l Location) Pointer() string {
	return "/" + string(l)
}

// ContextFor returns the preparation context for a location. String-carried
// locations deserialize with deserialize.Simple(); the body has no
// deserializer. opts are applied after the location defaults.
func ContextFor(loc Location, opts ...param.ContextOption) *param.Context {
	var all []param.ContextOption
	if loc != LocationBody {
		all = append(all, param.WithDeserializer(deserialize.Simple()))
	}
	all = append(all, opts...)
	return param.NewContext(all...)
}
