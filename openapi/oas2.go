package openapi

import (
	"github.com/go-openapi/spec"

	"github.com/erraggy/paramprep/oaserrors"
	"github.com/erraggy/paramprep/param"
	"github.com/erraggy/paramprep/request"
)

// collectionFormat is the OAS 2.0 name of the comma-separated encoding
// implemented by deserialize.Simple.
const collectionFormat = "csv"

// itemKindsExtension lists the item kinds of an array whose items have
// several definitions, which OAS 2.0 cannot express.
const itemKindsExtension = "x-item-kinds"

// ToSwaggerSchema renders d as an OAS 2.0 schema.
func ToSwaggerSchema(d *param.Definition) *spec.Schema {
	c := d.Constraints()
	s := new(spec.Schema).Typed(c.Kind.String(), c.Format)
	s.Description = c.Description
	if c.Nullable {
		s.AsNullable()
	}
	if c.Access == param.AccessReadOnly {
		s.AsReadOnly()
	}
	if c.HasDefault {
		s.WithDefault(c.Default)
	}
	if len(c.Examples) > 0 {
		s.WithExample(c.Examples[0])
	}
	cv := commonValidations(c)
	s.Maximum, s.ExclusiveMaximum = cv.Maximum, cv.ExclusiveMaximum
	s.Minimum, s.ExclusiveMinimum = cv.Minimum, cv.ExclusiveMinimum
	s.MaxLength, s.MinLength, s.Pattern = cv.MaxLength, cv.MinLength, cv.Pattern
	s.MaxItems, s.MinItems, s.UniqueItems = cv.MaxItems, cv.MinItems, cv.UniqueItems
	s.MultipleOf, s.Enum = cv.MultipleOf, cv.Enum

	switch c.Kind {
	case param.KindArray:
		switch len(c.Items) {
		case 0:
		case 1:
			s.CollectionOf(*ToSwaggerSchema(c.Items[0]))
		default:
			kinds := make([]string, 0, len(c.Items))
			for _, item := range c.Items {
				kinds = append(kinds, item.Kind().String())
			}
			s.AddExtension(itemKindsExtension, kinds)
		}
	case param.KindObject:
		for _, p := range c.Properties {
			s.SetProperty(p.Name(), *ToSwaggerSchema(p))
			if p.Required() {
				s.AddRequired(p.Name())
			}
		}
		s.AdditionalProperties = &spec.SchemaOrBool{Allows: c.AdditionalProperties}
		if c.MinProperties != nil {
			s.WithMinProperties(int64(*c.MinProperties))
		}
		if c.MaxProperties != nil {
			s.WithMaxProperties(int64(*c.MaxProperties))
		}
	}
	return s
}

// ToSwaggerParameter renders d as an OAS 2.0 parameter at loc. Body
// definitions become a body parameter carrying a schema; every other
// location uses the simple parameter model, which has no objects.
func ToSwaggerParameter(d *param.Definition, loc request.Location) (*spec.Parameter, error) {
	c := d.Constraints()
	var p *spec.Parameter
	switch loc {
	case request.LocationBody:
		p = spec.BodyParam(d.Name(), ToSwaggerSchema(d))
		if c.Required {
			p.AsRequired()
		}
		return p.WithDescription(d.Documentation()), nil
	case request.LocationPath:
		p = spec.PathParam(d.Name())
	case request.LocationQuery:
		p = spec.QueryParam(d.Name())
	case request.LocationHeader:
		p = spec.HeaderParam(d.Name())
	default:
		return nil, &oaserrors.ConfigError{Parameter: d.Name(), Option: "in", Value: string(loc), Message: "not an OAS 2.0 parameter location"}
	}
	if c.Kind == param.KindObject {
		return nil, &oaserrors.ConfigError{Parameter: d.Name(), Option: "in", Value: string(loc), Message: "objects can only be body parameters"}
	}
	p.WithDescription(d.Documentation())
	p.Typed(c.Kind.String(), c.Format)
	p.WithValidations(commonValidations(c))
	if c.Required {
		p.AsRequired()
	}
	if c.Nullable {
		p.Nullable = true
	}
	if c.HasDefault {
		p.WithDefault(c.Default)
	}
	if c.Kind == param.KindArray {
		items, err := swaggerItems(d.Name(), c.Items)
		if err != nil {
			return nil, err
		}
		p.CollectionOf(items, collectionFormat)
	}
	return p, nil
}

func swaggerItems(name string, defs []*param.Definition) (*spec.Items, error) {
	if len(defs) != 1 {
		// Several candidates, or none, leave the item type open.
		return spec.NewItems().Typed(param.KindString.String(), ""), nil
	}
	c := defs[0].Constraints()
	if c.Kind == param.KindObject {
		return nil, &oaserrors.ConfigError{Parameter: name, Option: "items", Message: "object items can only appear in body parameters"}
	}
	items := spec.NewItems().Typed(c.Kind.String(), c.Format).WithValidations(commonValidations(c))
	if c.Nullable {
		items.AsNullable()
	}
	if c.HasDefault {
		items.WithDefault(c.Default)
	}
	if c.Kind == param.KindArray {
		nested, err := swaggerItems(name, c.Items)
		if err != nil {
			return nil, err
		}
		items.CollectionOf(nested, collectionFormat)
	}
	return items, nil
}

func commonValidations(c param.Constraints) spec.CommonValidations {
	cv := spec.CommonValidations{
		Maximum:          c.Maximum,
		ExclusiveMaximum: c.ExclusiveMaximum,
		Minimum:          c.Minimum,
		ExclusiveMinimum: c.ExclusiveMinimum,
		Pattern:          c.Pattern,
		UniqueItems:      c.UniqueItems,
		MultipleOf:       c.MultipleOf,
		Enum:             c.Enum,
	}
	cv.MaxLength = int64Ptr(c.MaxLength)
	cv.MinLength = int64Ptr(c.MinLength)
	cv.MaxItems = int64Ptr(c.MaxItems)
	cv.MinItems = int64Ptr(c.MinItems)
	return cv
}

func int64Ptr(n *int) *int64 {
	if n == nil {
		return nil
	}
	v := int64(*n)
	return &v
}
