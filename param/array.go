package param

import (
	"strconv"
	"strings"

	"github.com/erraggy/paramprep/internal/pathutil"
)

// inferred holds the item definitions used when an array declares no Items.
var inferred map[Kind]*Definition

func init() {
	inferred = make(map[Kind]*Definition, len(Kinds))
	for _, k := range Kinds {
		inferred[k] = Must(New(k, ""))
	}
}

func (d *Definition) itemStep() Step {
	arr := d.arr
	return NewStep("Prepare items", func(v any, name string, values *Values) (any, error) {
		items := v.([]any)
		out := make([]any, len(items))
		var c collector
		for i, item := range items {
			prepared, err := arr.prepareItem(i, item, name, values)
			if err != nil {
				c.add(err)
				continue
			}
			out[i] = prepared
		}
		if err := c.err(); err != nil {
			return nil, err
		}
		return out, nil
	})
}

// candidates resolves the item definitions to try for item.
func (a arrayConfig) candidates(item any, pointer string) ([]*Definition, *PreparationError) {
	k, ok := KindOf(item)
	if item == nil && len(a.items) > 0 {
		var nullable []*Definition
		for _, kind := range a.itemKinds {
			for _, def := range a.items[kind] {
				if def.nullable {
					nullable = append(nullable, def)
				}
			}
		}
		if len(nullable) > 0 {
			return nullable, nil
		}
	}
	if len(a.items) == 0 {
		if !ok {
			return nil, newPreparationError(NewError("Unrecognized item type "+typeName(item), pointer))
		}
		return []*Definition{inferred[k]}, nil
	}

	if ok {
		if defs, found := a.items[k]; found {
			return defs, nil
		}
		if defs, found := a.items[KindNumber]; found && k == KindInteger {
			return defs, nil
		}
	}

	var all []*Definition
	for _, kind := range a.itemKinds {
		all = append(all, a.items[kind]...)
	}
	if len(all) == 1 && all[0].coerce {
		return all, nil
	}

	names := make([]string, len(a.itemKinds))
	for i, kind := range a.itemKinds {
		names[i] = kind.String()
	}
	title := "Invalid item type " + typeName(item) + ", expected one of: " + strings.Join(names, ", ")
	return nil, newPreparationError(NewError(title, pointer))
}

func (a arrayConfig) prepareItem(i int, item any, parent string, values *Values) (any, error) {
	key := strconv.Itoa(i)
	pointer := pathutil.Join(parent, key)

	defs, perr := a.candidates(item, pointer)
	if perr != nil {
		return nil, perr
	}

	var (
		winner   *Definition
		prepared any
		itemVals *Values
		lastErr  error
	)
	for _, def := range defs {
		candidate := def.scoped(parent, key)
		vals := values.nested(map[string]any{key: item}, key)
		out, next, err := candidate.prepare(item, vals, false)
		if err != nil {
			lastErr = err
			continue
		}
		winner, prepared, itemVals = candidate, out, next
		break
	}

	if winner == nil {
		if len(defs) == 1 {
			return nil, lastErr
		}
		shapes := make([]string, len(defs))
		for j, def := range defs {
			shapes[j] = def.shapeName()
		}
		title := "Item does not match any allowed definition (type mismatch or constraint failure): " + strings.Join(shapes, ", ")
		return nil, newPreparationError(NewError(title, pointer))
	}

	if len(a.forEach) == 0 {
		return prepared, nil
	}
	steps := a.forEach
	if winner.nullable {
		steps = wrapNullable(steps)
	}
	r := runner{name: key, pointer: pointer, total: len(steps), logger: values.Context().Logger()}
	out, _, err := r.run(steps, prepared, itemVals)
	return out, err
}
