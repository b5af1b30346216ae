package param

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// Kind is the closed set of parameter shapes.
type Kind int

const (
	// KindString is a string parameter.
	KindString Kind = iota + 1
	// KindNumber is a decimal number parameter.
	KindNumber
	// KindInteger is an integer parameter.
	KindInteger
	// KindBoolean is a boolean parameter.
	KindBoolean
	// KindArray is an array parameter.
	KindArray
	// KindObject is an object parameter.
	KindObject
)

// Kinds lists every Kind in declaration order.
var Kinds = []Kind{KindString, KindNumber, KindInteger, KindBoolean, KindArray, KindObject}

// String returns the OpenAPI type name of the kind.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindInteger:
		return "integer"
	case KindBoolean:
		return "boolean"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	return k >= KindString && k <= KindObject
}

// ParseKind parses an OpenAPI type name.
func ParseKind(s string) (Kind, bool) {
	for _, k := range Kinds {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}

// KindOf infers the shape of a runtime value.
// It reports false for nil and for types with no parameter shape.
func KindOf(v any) (Kind, bool) {
	switch x := v.(type) {
	case nil:
		return 0, false
	case string, []byte:
		return KindString, true
	case bool:
		return KindBoolean, true
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return KindInteger, true
	case float32, float64:
		return KindNumber, true
	case json.Number:
		if _, err := x.Int64(); err == nil {
			return KindInteger, true
		}
		if _, err := x.Float64(); err == nil {
			return KindNumber, true
		}
		return 0, false
	case []any:
		return KindArray, true
	case map[string]any:
		return KindObject, true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return KindArray, true
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			return KindObject, true
		}
	}
	return 0, false
}

// typeName names the runtime type of v for messages.
func typeName(v any) string {
	if v == nil {
		return "null"
	}
	if k, ok := KindOf(v); ok {
		return k.String()
	}
	return fmt.Sprintf("%T", v)
}
