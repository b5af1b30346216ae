package rules

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/erraggy/paramprep/internal/equalutil"
)

type itemCount struct {
	n   int
	max bool
}

// MinItems requires an array of at least n items.
func MinItems(n int) Rule { return itemCount{n: n} }

// MaxItems requires an array of at most n items.
func MaxItems(n int) Rule { return itemCount{n: n, max: true} }

func (r itemCount) Description() string {
	if r.max {
		return fmt.Sprintf("maxItems: %d", r.n)
	}
	return fmt.Sprintf("minItems: %d", r.n)
}

func (r itemCount) Check(value any) error {
	l, ok := lengthOf(value, reflect.Slice, reflect.Array)
	if !ok {
		return nil
	}
	if r.max && l > r.n {
		return failf("array has %d items, maximum is %d", l, r.n)
	}
	if !r.max && l < r.n {
		return failf("array has %d items, minimum is %d", l, r.n)
	}
	return nil
}

type uniqueItems struct{}

// UniqueItems requires all array items to be pairwise distinct.
func UniqueItems() Rule { return uniqueItems{} }

func (uniqueItems) Description() string { return "uniqueItems: true" }

func (uniqueItems) Check(value any) error {
	items, ok := equalutil.Normalize(value).([]any)
	if !ok {
		return nil
	}
	for i := range items {
		for j := i + 1; j < len(items); j++ {
			if equalutil.Strict(items[i], items[j]) {
				return failf("array items must be unique")
			}
		}
	}
	return nil
}

type propertyCount struct {
	n   int
	max bool
}

// MinProperties requires an object with at least n properties.
func MinProperties(n int) Rule { return propertyCount{n: n} }

// MaxProperties requires an object with at most n properties.
func MaxProperties(n int) Rule { return propertyCount{n: n, max: true} }

func (r propertyCount) Description() string {
	if r.max {
		return fmt.Sprintf("maxProperties: %d", r.n)
	}
	return fmt.Sprintf("minProperties: %d", r.n)
}

func (r propertyCount) Check(value any) error {
	l, ok := lengthOf(value, reflect.Map)
	if !ok {
		return nil
	}
	if r.max && l > r.n {
		return failf("object has %d properties, maximum is %d", l, r.n)
	}
	if !r.max && l < r.n {
		return failf("object has %d properties, minimum is %d", l, r.n)
	}
	return nil
}

type requiredProperties []string

// RequiredProperties requires every named key to be present on an object.
// One failure lists every missing name, in the order given.
func RequiredProperties(names ...string) Rule {
	return requiredProperties(slices.Clone(names))
}

func (r requiredProperties) Description() string {
	return "required: " + strings.Join(r, ", ")
}

func (r requiredProperties) Check(value any) error {
	keys, ok := keysOf(value)
	if !ok {
		return nil
	}
	var missing []string
	for _, name := range r {
		if _, ok := keys[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return failf("missing required properties: %s", strings.Join(missing, ", "))
	}
	return nil
}

type noAdditional map[string]struct{}

// NoAdditionalProperties rejects object keys outside allowed.
// One failure lists every disallowed key, sorted.
func NoAdditionalProperties(allowed ...string) Rule {
	m := make(noAdditional, len(allowed))
	for _, a := range allowed {
		m[a] = struct{}{}
	}
	return m
}

func (r noAdditional) Description() string { return "additionalProperties: false" }

func (r noAdditional) Check(value any) error {
	keys, ok := keysOf(value)
	if !ok {
		return nil
	}
	var extra []string
	for k := range keys {
		if _, ok := r[k]; !ok {
			extra = append(extra, k)
		}
	}
	if len(extra) > 0 {
		slices.Sort(extra)
		return failf("additional properties are not allowed: %s", strings.Join(extra, ", "))
	}
	return nil
}

func lengthOf(value any, kinds ...reflect.Kind) (int, bool) {
	if value == nil {
		return 0, false
	}
	rv := reflect.ValueOf(value)
	if !slices.Contains(kinds, rv.Kind()) {
		return 0, false
	}
	return rv.Len(), true
}

func keysOf(value any) (map[string]struct{}, bool) {
	if m, ok := value.(map[string]any); ok {
		keys := make(map[string]struct{}, len(m))
		for k := range m {
			keys[k] = struct{}{}
		}
		return keys, true
	}
	if value == nil {
		return nil, false
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	keys := make(map[string]struct{}, rv.Len())
	for _, k := range rv.MapKeys() {
		keys[k.String()] = struct{}{}
	}
	return keys, true
}
