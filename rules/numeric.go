package rules

import (
	"encoding/json"
	"fmt"
	"math"
)

type bound struct {
	limit     float64
	exclusive bool
	max       bool
}

// Minimum requires a number ≥ limit, or > limit when exclusive.
func Minimum(limit float64, exclusive bool) Rule {
	return bound{limit: limit, exclusive: exclusive}
}

// Maximum requires a number ≤ limit, or < limit when exclusive.
func Maximum(limit float64, exclusive bool) Rule {
	return bound{limit: limit, exclusive: exclusive, max: true}
}

func (r bound) Description() string {
	switch {
	case r.max && r.exclusive:
		return fmt.Sprintf("exclusiveMaximum: %v", r.limit)
	case r.max:
		return fmt.Sprintf("maximum: %v", r.limit)
	case r.exclusive:
		return fmt.Sprintf("exclusiveMinimum: %v", r.limit)
	}
	return fmt.Sprintf("minimum: %v", r.limit)
}

func (r bound) Check(value any) error {
	n, ok := toFloat64(value)
	if !ok {
		return nil
	}
	switch {
	case r.max && r.exclusive && n >= r.limit:
		return failf("value %v must be less than %v", n, r.limit)
	case r.max && !r.exclusive && n > r.limit:
		return failf("value %v exceeds maximum %v", n, r.limit)
	case !r.max && r.exclusive && n <= r.limit:
		return failf("value %v must be greater than %v", n, r.limit)
	case !r.max && !r.exclusive && n < r.limit:
		return failf("value %v is less than minimum %v", n, r.limit)
	}
	return nil
}

type multipleOf float64

// MultipleOf requires a number that is an integral multiple of m.
// A zero divisor accepts every value.
func MultipleOf(m float64) Rule { return multipleOf(m) }

func (r multipleOf) Description() string { return fmt.Sprintf("multipleOf: %v", float64(r)) }

func (r multipleOf) Check(value any) error {
	n, ok := toFloat64(value)
	if !ok || r == 0 {
		return nil
	}
	q := n / float64(r)
	if math.Abs(q-math.Round(q)) > 1e-9 {
		return failf("value %v is not a multiple of %v", n, float64(r))
	}
	return nil
}

// toFloat64 converts a numeric value to float64.
func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
