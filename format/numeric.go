package format

import (
	"math"

	"github.com/erraggy/paramprep/param"
	"github.com/erraggy/paramprep/rules"
)

// Int32 restricts integers to the signed 32-bit range.
func Int32() *Format {
	return &Format{
		name: "int32",
		kind: param.KindInteger,
		rules: []rules.Rule{
			rules.Minimum(math.MinInt32, false),
			rules.Maximum(math.MaxInt32, false),
		},
		doc: "A signed 32-bit integer.",
	}
}

// Int64 documents a signed 64-bit integer; the integer kind already enforces the range.
func Int64() *Format {
	return &Format{
		name: "int64",
		kind: param.KindInteger,
		doc:  "A signed 64-bit integer.",
	}
}

// Float restricts numbers to the single-precision range.
func Float() *Format {
	return &Format{
		name: "float",
		kind: param.KindNumber,
		rules: []rules.Rule{
			rules.Minimum(-math.MaxFloat32, false),
			rules.Maximum(math.MaxFloat32, false),
		},
		doc: "A single-precision floating point number.",
	}
}

// Double documents a double-precision number.
func Double() *Format {
	return &Format{
		name: "double",
		kind: param.KindNumber,
		doc:  "A double-precision floating point number.",
	}
}
