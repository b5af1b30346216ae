package stringutil

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/erraggy/paramprep/internal/equalutil"
)

// RenderValue renders a value for inclusion in a user-facing message.
// Scalars render verbatim, arrays as "[a, b]" and objects as "{k: v}" with
// keys sorted, recursively.
func RenderValue(v any) string {
	var b strings.Builder
	renderInto(&b, equalutil.Normalize(v))
	return b.String()
}

// RenderList renders each value with RenderValue and joins them with ", ".
func RenderList(values []any) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = RenderValue(v)
	}
	return strings.Join(parts, ", ")
}

func renderInto(b *strings.Builder, v any) {
	switch x := v.(type) {
	case nil:
		b.WriteString("null")
	case string:
		b.WriteString(x)
	case bool:
		b.WriteString(strconv.FormatBool(x))
	case int64:
		b.WriteString(strconv.FormatInt(x, 10))
	case float64:
		b.WriteString(strconv.FormatFloat(x, 'f', -1, 64))
	case []any:
		b.WriteByte('[')
		for i, e := range x {
			if i > 0 {
				b.WriteString(", ")
			}
			renderInto(b, e)
		}
		b.WriteByte(']')
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		b.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(k)
			b.WriteString(": ")
			renderInto(b, x[k])
		}
		b.WriteByte('}')
	default:
		fmt.Fprint(b, x)
	}
}
