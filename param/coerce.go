package param

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/erraggy/paramprep/internal/equalutil"
)

// accept returns v in canonical form when its runtime type matches kind.
// Canonical forms: string, int64, float64 (or int64 for numbers, cast later),
// bool, []any and map[string]any.
func accept(kind Kind, v any, strictDecimal bool) (any, bool) {
	vk, ok := KindOf(v)
	if !ok {
		return nil, false
	}
	switch kind {
	case KindString:
		switch s := v.(type) {
		case string:
			return s, true
		case []byte:
			return string(s), true
		}
	case KindInteger:
		if vk == KindInteger {
			if i, ok := equalutil.Normalize(v).(int64); ok {
				return i, true
			}
		}
	case KindNumber:
		if vk == KindNumber || (vk == KindInteger && !strictDecimal) {
			return equalutil.Normalize(v), true
		}
	case KindBoolean:
		if vk == KindBoolean {
			return v, true
		}
	case KindArray, KindObject:
		if vk == kind {
			return equalutil.Normalize(v), true
		}
	}
	return nil, false
}

// outOfRange reports an integer value that does not fit in an int64.
func outOfRange(v any) bool {
	if k, ok := KindOf(v); !ok || k != KindInteger {
		return false
	}
	_, ok := equalutil.Normalize(v).(int64)
	return !ok
}

// cast converts v to kind's canonical form, reporting false when impossible.
func cast(kind Kind, v any) (any, bool) {
	if v == nil {
		return nil, false
	}
	if n, ok := v.(json.Number); ok {
		v = n.String()
	}
	v = equalutil.Normalize(v)

	switch kind {
	case KindString:
		switch x := v.(type) {
		case string:
			return x, true
		case int64:
			return strconv.FormatInt(x, 10), true
		case float64:
			return strconv.FormatFloat(x, 'f', -1, 64), true
		case bool:
			return strconv.FormatBool(x), true
		}
	case KindInteger:
		switch x := v.(type) {
		case string:
			s := strings.TrimSpace(x)
			if i, err := strconv.ParseInt(s, 10, 64); err == nil {
				return i, true
			}
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return floatToInt(f)
			}
		case float64:
			return floatToInt(x)
		case int64:
			return x, true
		case bool:
			if x {
				return int64(1), true
			}
			return int64(0), true
		}
	case KindNumber:
		switch x := v.(type) {
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(x), 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
				return f, true
			}
		case int64:
			return float64(x), true
		case float64:
			return x, true
		case bool:
			if x {
				return float64(1), true
			}
			return float64(0), true
		}
	case KindBoolean:
		switch x := v.(type) {
		case string:
			if b, err := strconv.ParseBool(strings.TrimSpace(x)); err == nil {
				return b, true
			}
		case int64:
			switch x {
			case 0:
				return false, true
			case 1:
				return true, true
			}
		case float64:
			switch x {
			case 0:
				return false, true
			case 1:
				return true, true
			}
		case bool:
			return x, true
		}
	case KindArray:
		switch x := v.(type) {
		case []any:
			return x, true
		case map[string]any:
			return nil, false
		default:
			return []any{x}, true
		}
	case KindObject:
		switch x := v.(type) {
		case map[string]any:
			return x, true
		case []any:
			out := make(map[string]any, len(x))
			for i, e := range x {
				out[strconv.Itoa(i)] = e
			}
			return out, true
		}
	}
	return nil, false
}

func floatToInt(f float64) (any, bool) {
	if f != math.Trunc(f) || math.IsInf(f, 0) || f < math.MinInt64 || f >= math.MaxInt64 {
		return nil, false
	}
	return int64(f), true
}
