package format

import (
	"slices"

	"github.com/erraggy/paramprep/param"
	"github.com/erraggy/paramprep/rules"
)

// Format is a standard format implementation.
type Format struct {
	name  string
	kind  param.Kind
	rules []rules.Rule
	pre   []param.Step
	steps []param.Step
	doc   string
}

// Name implements param.Format.
func (f *Format) Name() string { return f.name }

// AppliesTo implements param.Format.
func (f *Format) AppliesTo(kind param.Kind) bool { return kind == f.kind }

// Kind returns the kind the format applies to.
func (f *Format) Kind() param.Kind { return f.kind }

// Rules implements param.Format.
func (f *Format) Rules() []rules.Rule { return slices.Clone(f.rules) }

// PreValidationSteps implements param.Format.
func (f *Format) PreValidationSteps() []param.Step { return slices.Clone(f.pre) }

// Steps implements param.Format.
func (f *Format) Steps() []param.Step { return slices.Clone(f.steps) }

// Documentation implements param.Format.
func (f *Format) Documentation() string { return f.doc }

var _ param.Format = (*Format)(nil)

// Names lists every format ByName recognizes.
var Names = []string{
	"uuid", "date", "date-time", "byte", "yes-no", "email", "uri",
	"ipv4", "ipv6", "hostname", "password", "int32", "int64", "float", "double",
}

// ByName returns the standard format called name.
func ByName(name string) (*Format, bool) {
	switch name {
	case "uuid":
		return UUID(), true
	case "date":
		return Date(), true
	case "date-time":
		return DateTime(), true
	case "byte":
		return Byte(), true
	case "yes-no":
		return YesNo(), true
	case "email":
		return Email(), true
	case "uri":
		return URI(), true
	case "ipv4":
		return IPv4(), true
	case "ipv6":
		return IPv6(), true
	case "hostname":
		return Hostname(), true
	case "password":
		return Password(), true
	case "int32":
		return Int32(), true
	case "int64":
		return Int64(), true
	case "float":
		return Float(), true
	case "double":
		return Double(), true
	}
	return nil, false
}

// stringCheck builds a rule that validates string values with ok.
func stringCheck(desc, message string, ok func(string) bool) rules.Rule {
	return rules.Func(desc, func(v any) error {
		s, isStr := v.(string)
		if !isStr || ok(s) {
			return nil
		}
		return invalidf(message, s)
	})
}

// stringStep builds a step that converts string values with fn.
func stringStep(desc string, fn func(string) (any, error)) param.Step {
	return param.Transform(desc, func(v any) (any, error) {
		s, ok := v.(string)
		if !ok {
			return v, nil
		}
		return fn(s)
	})
}
