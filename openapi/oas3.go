package openapi

import (
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/erraggy/paramprep/oaserrors"
	"github.com/erraggy/paramprep/param"
	"github.com/erraggy/paramprep/request"
)

// ToSchema renders d as an OAS 3.0 schema.
func ToSchema(d *param.Definition) *openapi3.Schema {
	c := d.Constraints()
	s := openapi3.NewSchema()
	s.Type = &openapi3.Types{c.Kind.String()}
	s.Format = c.Format
	s.Description = c.Description
	s.Nullable = c.Nullable
	s.Deprecated = c.Deprecated
	s.ReadOnly = c.Access == param.AccessReadOnly
	s.WriteOnly = c.Access == param.AccessWriteOnly
	if len(c.Enum) > 0 {
		s.Enum = c.Enum
	}
	if c.HasDefault {
		s.Default = c.Default
	}
	if len(c.Examples) > 0 {
		s.Example = c.Examples[0]
	}

	switch c.Kind {
	case param.KindString:
		if c.MinLength != nil {
			s.MinLength = uint64(*c.MinLength)
		}
		if c.MaxLength != nil {
			s.MaxLength = openapi3.Ptr(uint64(*c.MaxLength))
		}
		s.Pattern = c.Pattern
	case param.KindNumber, param.KindInteger:
		s.Min = c.Minimum
		s.Max = c.Maximum
		s.ExclusiveMin = c.ExclusiveMinimum
		s.ExclusiveMax = c.ExclusiveMaximum
		s.MultipleOf = c.MultipleOf
	case param.KindArray:
		s.Items = itemsRef(c.Items)
		if c.MinItems != nil {
			s.MinItems = uint64(*c.MinItems)
		}
		if c.MaxItems != nil {
			s.MaxItems = openapi3.Ptr(uint64(*c.MaxItems))
		}
		s.UniqueItems = c.UniqueItems
	case param.KindObject:
		if len(c.Properties) > 0 {
			s.Properties = make(openapi3.Schemas, len(c.Properties))
		}
		for _, p := range c.Properties {
			s.Properties[p.Name()] = openapi3.NewSchemaRef("", ToSchema(p))
			if p.Required() {
				s.Required = append(s.Required, p.Name())
			}
		}
		s.AdditionalProperties = openapi3.AdditionalProperties{Has: openapi3.Ptr(c.AdditionalProperties)}
		if c.MinProperties != nil {
			s.MinProps = uint64(*c.MinProperties)
		}
		if c.MaxProperties != nil {
			s.MaxProps = openapi3.Ptr(uint64(*c.MaxProperties))
		}
	}
	return s
}

// itemsRef renders array item definitions. An array without item
// definitions accepts anything, which is the empty schema. Several
// candidates become an anyOf.
func itemsRef(items []*param.Definition) *openapi3.SchemaRef {
	switch len(items) {
	case 0:
		return openapi3.NewSchemaRef("", openapi3.NewSchema())
	case 1:
		return openapi3.NewSchemaRef("", ToSchema(items[0]))
	}
	schemas := make([]*openapi3.Schema, 0, len(items))
	for _, item := range items {
		schemas = append(schemas, ToSchema(item))
	}
	return openapi3.NewSchemaRef("", openapi3.NewAnyOfSchema(schemas...))
}

// ToParameter renders d as an OAS 3.0 parameter at loc. The description is
// the definition's full documentation so that rules and dependencies with
// no schema keyword stay visible. The body is not a parameter location;
// use Operation for it.
func ToParameter(d *param.Definition, loc request.Location) (*openapi3.Parameter, error) {
	var p *openapi3.Parameter
	switch loc {
	case request.LocationPath:
		p = openapi3.NewPathParameter(d.Name())
	case request.LocationQuery:
		p = openapi3.NewQueryParameter(d.Name())
	case request.LocationHeader:
		p = openapi3.NewHeaderParameter(d.Name())
	case request.LocationCookie:
		p = openapi3.NewCookieParameter(d.Name())
	default:
		return nil, &oaserrors.ConfigError{
			Parameter: d.Name(),
			Option:    "in",
			Value:     string(loc),
			Message:   "not a parameter location",
		}
	}
	c := d.Constraints()
	p.Description = d.Documentation()
	p.Deprecated = c.Deprecated
	p.Required = p.Required || c.Required
	if len(c.Examples) > 0 {
		p.Example = c.Examples[0]
	}
	if c.Kind == param.KindArray || c.Kind == param.KindObject {
		// Collections are comma-separated, matching deserialize.Simple.
		p.Style = openapi3.SerializationSimple
		if loc == request.LocationQuery || loc == request.LocationCookie {
			p.Style = openapi3.SerializationForm
		}
		p.Explode = openapi3.Ptr(false)
	}
	p.Schema = openapi3.NewSchemaRef("", ToSchema(d))
	return p, nil
}

// Operation documents op as an OAS 3.0 operation: one parameter per path,
// query, header and cookie definition and, when op has a body, a JSON
// request body.
func Operation(op *request.Operation) (*openapi3.Operation, error) {
	out := openapi3.NewOperation()
	for _, loc := range request.Locations {
		if loc == request.LocationBody {
			continue
		}
		for _, d := range op.Definitions(loc) {
			p, err := ToParameter(d, loc)
			if err != nil {
				return nil, err
			}
			out.AddParameter(p)
		}
	}
	if op.Body != nil {
		body := openapi3.NewRequestBody().
			WithDescription(op.Body.Documentation()).
			WithRequired(op.Body.Required()).
			WithContent(openapi3.NewContentWithJSONSchema(ToSchema(op.Body)))
		out.RequestBody = &openapi3.RequestBodyRef{Value: body}
	}
	return out, nil
}
