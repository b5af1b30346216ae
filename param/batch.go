package param

import (
	"maps"

	"github.com/erraggy/paramprep/oaserrors"
)

// Batch prepares a set of sibling top-level parameters together.
//
// Definitions are processed in declaration order against one shared values
// collection, so dependency checks see every sibling and later parameters
// observe earlier prepared values. Every failure is collected; Prepare
// returns one aggregated *PreparationError.
type Batch struct {
	ctx  *Context
	defs []*Definition
}

// NewBatch creates a batch. Definition names must be non-empty and unique.
// A nil ctx uses DefaultContext().
func NewBatch(ctx *Context, defs ...*Definition) (*Batch, error) {
	if ctx == nil {
		ctx = DefaultContext()
	}
	seen := make(map[string]bool, len(defs))
	for _, d := range defs {
		if d == nil {
			return nil, &oaserrors.ConfigError{Option: "Batch", Message: "definition is nil"}
		}
		if d.name == "" {
			return nil, &oaserrors.ConfigError{Option: "Batch", Message: "definition has no name"}
		}
		if seen[d.name] {
			return nil, &oaserrors.ConfigError{Parameter: d.name, Option: "Batch", Message: "duplicate parameter"}
		}
		seen[d.name] = true
	}
	return &Batch{ctx: ctx, defs: defs}, nil
}

// Definitions returns the batch definitions in declaration order.
func (b *Batch) Definitions() []*Definition {
	out := make([]*Definition, len(b.defs))
	copy(out, b.defs)
	return out
}

// Context returns the batch context.
func (b *Batch) Context() *Context { return b.ctx }

// Prepare prepares raw against every definition.
//
// An absent required parameter fails with "Missing required parameter"; an
// absent parameter with a default takes the default as its prepared value
// without running the pipeline and counts as present for dependency checks;
// other absent parameters are skipped. Present parameters run their full
// pipeline with dependency checks.
//
// Entries follow declaration order, then any undeclared inputs sorted by name.
//
// The returned collection holds every input entry; successful parameters have
// a prepared value. It is returned even when preparation fails.
func (b *Batch) Prepare(raw map[string]any) (*Values, error) {
	order := make([]string, len(b.defs))
	merged := make(map[string]any, len(raw)+len(b.defs))
	maps.Copy(merged, raw)
	defaulted := make(map[string]bool)
	for i, d := range b.defs {
		order[i] = d.name
		if _, ok := raw[d.name]; !ok && !d.required && d.hasDefault {
			merged[d.name] = d.def
			defaulted[d.name] = true
		}
	}
	values := NewValues(merged, WithContext(b.ctx), WithOrder(order...))

	var c collector
	for _, d := range b.defs {
		switch {
		case defaulted[d.name]:
			values, _ = values.WithPrepared(d.name, d.def)
			continue
		case !values.Has(d.name):
			if d.required {
				c.addError(NewError("Missing required parameter", d.Pointer()))
			}
			continue
		}

		v, _ := values.Raw(d.name)
		_, next, err := d.prepare(v, values, true)
		if err != nil {
			c.add(err)
			continue
		}
		values = next
	}
	return values, c.err()
}
