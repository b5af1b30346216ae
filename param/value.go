package param

import (
	"fmt"
	"maps"
	"slices"

	"github.com/erraggy/paramprep/oaserrors"
)

// Value wraps one raw input and, once computed, its prepared counterpart.
// A Value is immutable; WithPrepared returns a new holder.
type Value struct {
	name       string
	raw        any
	prepared   any
	isPrepared bool
}

// NewValue creates an unprepared value holder.
func NewValue(name string, raw any) *Value {
	return &Value{name: name, raw: raw}
}

// Name returns the parameter name.
func (v *Value) Name() string { return v.name }

// Raw returns the raw input.
func (v *Value) Raw() any { return v.raw }

// IsPrepared reports whether a prepared value has been set.
func (v *Value) IsPrepared() bool { return v.isPrepared }

// Prepared returns the prepared value, or oaserrors.ErrNotPrepared.
func (v *Value) Prepared() (any, error) {
	if !v.isPrepared {
		return nil, fmt.Errorf("parameter %q: %w", v.name, oaserrors.ErrNotPrepared)
	}
	return v.prepared, nil
}

// Current returns the prepared value when set, else the raw value.
func (v *Value) Current() any {
	if v.isPrepared {
		return v.prepared
	}
	return v.raw
}

// WithPrepared returns a copy holding prepared.
func (v *Value) WithPrepared(prepared any) *Value {
	return &Value{name: v.name, raw: v.raw, prepared: prepared, isPrepared: true}
}

// Values is an ordered, copy-on-write collection of named values sharing one Context.
// The set of names is fixed per instance; updates return a new collection.
type Values struct {
	names   []string
	entries map[string]*Value
	ctx     *Context
	depth   int
}

// ValuesOption configures NewValues.
type ValuesOption func(*Values)

// WithContext sets the shared context. A nil context keeps the default.
func WithContext(ctx *Context) ValuesOption {
	return func(v *Values) {
		if ctx != nil {
			v.ctx = ctx
		}
	}
}

// WithOrder fixes the iteration order of names. Names listed here come first,
// in the given order; remaining names follow sorted.
func WithOrder(names ...string) ValuesOption {
	return func(v *Values) {
		v.names = slices.Clone(names)
	}
}

// NewValues creates a collection from raw inputs.
func NewValues(raw map[string]any, opts ...ValuesOption) *Values {
	v := &Values{entries: make(map[string]*Value, len(raw))}
	for _, opt := range opts {
		opt(v)
	}
	if v.ctx == nil {
		v.ctx = DefaultContext()
	}

	ordered := make([]string, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, name := range v.names {
		if _, ok := raw[name]; ok && !seen[name] {
			ordered = append(ordered, name)
			seen[name] = true
		}
	}
	rest := make([]string, 0, len(raw)-len(ordered))
	for name := range raw {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	slices.Sort(rest)
	v.names = append(ordered, rest...)

	for name, r := range raw {
		v.entries[name] = NewValue(name, r)
	}
	return v
}

// Context returns the shared context.
func (v *Values) Context() *Context { return v.ctx }

// Len returns the number of names.
func (v *Values) Len() int { return len(v.names) }

// Names returns the names in order.
func (v *Values) Names() []string { return slices.Clone(v.names) }

// Has reports whether name is present, even if its raw value is nil.
func (v *Values) Has(name string) bool {
	_, ok := v.entries[name]
	return ok
}

// Value returns the holder for name, or oaserrors.ErrNotFound.
func (v *Values) Value(name string) (*Value, error) {
	e, ok := v.entries[name]
	if !ok {
		return nil, fmt.Errorf("parameter %q: %w", name, oaserrors.ErrNotFound)
	}
	return e, nil
}

// Raw returns the raw value for name.
func (v *Values) Raw(name string) (any, error) {
	e, err := v.Value(name)
	if err != nil {
		return nil, err
	}
	return e.Raw(), nil
}

// Prepared returns the prepared value for name.
func (v *Values) Prepared(name string) (any, error) {
	e, err := v.Value(name)
	if err != nil {
		return nil, err
	}
	return e.Prepared()
}

// Get returns the prepared value for name when available, else the raw value.
func (v *Values) Get(name string) (any, error) {
	e, err := v.Value(name)
	if err != nil {
		return nil, err
	}
	return e.Current(), nil
}

// WithPrepared returns a copy of the collection with name's prepared value set.
func (v *Values) WithPrepared(name string, prepared any) (*Values, error) {
	if name == "" {
		return nil, fmt.Errorf("empty parameter name: %w", oaserrors.ErrNotFound)
	}
	e, err := v.Value(name)
	if err != nil {
		return nil, err
	}
	out := v.clone()
	out.entries[name] = e.WithPrepared(prepared)
	return out, nil
}

// PreparedMap returns every prepared value keyed by name. Unprepared entries are omitted.
func (v *Values) PreparedMap() map[string]any {
	out := make(map[string]any, len(v.entries))
	for name, e := range v.entries {
		if e.isPrepared {
			out[name] = e.prepared
		}
	}
	return out
}

// withEntry returns a copy with an extra raw entry appended.
func (v *Values) withEntry(name string, raw any) *Values {
	out := v.clone()
	if _, ok := out.entries[name]; !ok {
		out.names = append(out.names, name)
	}
	out.entries[name] = NewValue(name, raw)
	return out
}

// nested returns an empty collection one level deeper sharing the context.
func (v *Values) nested(raw map[string]any, order ...string) *Values {
	out := NewValues(raw, WithContext(v.ctx), WithOrder(order...))
	out.depth = v.depth + 1
	return out
}

func (v *Values) clone() *Values {
	return &Values{
		names:   slices.Clone(v.names),
		entries: maps.Clone(v.entries),
		ctx:     v.ctx,
		depth:   v.depth,
	}
}
