package param

import "maps"

// additionalAllowed resolves the additional-properties tri-state: explicit,
// or allowed only when no properties are declared.
func (d *Definition) additionalAllowed() bool {
	if d.obj.additional != nil {
		return *d.obj.additional
	}
	return len(d.obj.properties) == 0
}

func (d *Definition) propertyStep() Step {
	props := d.obj.properties
	return NewStep("Prepare properties", func(v any, name string, values *Values) (any, error) {
		obj := v.(map[string]any)
		if len(props) == 0 {
			return obj, nil
		}

		order := make([]string, len(props))
		for i, p := range props {
			order[i] = p.name
		}
		siblings := values.nested(obj, order...)
		out := maps.Clone(obj)

		var c collector
		for _, p := range props {
			raw, ok := obj[p.name]
			if !ok {
				continue
			}
			child := p.scoped(name, p.name)
			prepared, next, err := child.prepare(raw, siblings, true)
			if err != nil {
				c.add(err)
				continue
			}
			out[p.name] = prepared
			siblings = next
		}
		if err := c.err(); err != nil {
			return nil, err
		}
		return out, nil
	})
}
