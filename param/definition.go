package param

import (
	"fmt"

	"github.com/erraggy/paramprep/internal/pathutil"
	"github.com/erraggy/paramprep/oaserrors"
	"github.com/erraggy/paramprep/rules"
)

// Access is the read/write visibility of a parameter.
type Access int

const (
	// AccessReadWrite is the default visibility.
	AccessReadWrite Access = iota
	// AccessReadOnly marks a parameter that only appears in responses.
	AccessReadOnly
	// AccessWriteOnly marks a parameter that only appears in requests.
	AccessWriteOnly
)

// Predicate inspects the value of another parameter during a dependency
// check. It returns an error (typically *oaserrors.InvalidInputError) to reject it.
type Predicate func(other any) error

type dependency struct {
	name string
	when Predicate
}

type stringConfig struct {
	minLength *int
	maxLength *int
	pattern   *rules.PatternRule
	noTrim    bool
	sanitize  bool
	normalize bool
}

type numericConfig struct {
	minimum          *float64
	maximum          *float64
	exclusiveMinimum bool
	exclusiveMaximum bool
	multipleOf       *float64
	strictDecimal    bool
}

type arrayConfig struct {
	items       map[Kind][]*Definition
	itemKinds   []Kind
	minItems    *int
	maxItems    *int
	uniqueItems bool
	forEach     []Step
}

type objectConfig struct {
	properties    []*Definition
	byName        map[string]*Definition
	additional    *bool
	minProperties *int
	maxProperties *int
	schemaName    string
}

// Definition is an immutable, reusable parameter schema.
//
// Definitions are built once with New (or the shape constructors) and may be
// shared by any number of concurrent Prepare calls. WithName returns an
// independent copy for reuse of one template under several names.
type Definition struct {
	kind        Kind
	name        string
	scope       string
	description string

	required   bool
	nullable   bool
	hasDefault bool
	def        any
	enum       []any
	strictEnum bool
	examples   []any
	deprecated bool
	access     Access
	coerce     bool

	format        Format
	userRules     []rules.Rule
	userSteps     []Step
	dependsOn     []dependency
	dependsAbsent []string
	engine        rules.Engine

	str stringConfig
	num numericConfig
	arr arrayConfig
	obj objectConfig

	// Assembled at construction and never modified afterwards.
	builtinRules []rules.Rule
	pipeline     []Step
	depSteps     []Step
}

// New builds a Definition of kind named name.
// Options are applied in order; any misconfiguration is returned as a
// *oaserrors.ConfigError.
func New(kind Kind, name string, opts ...Option) (*Definition, error) {
	if !kind.Valid() {
		return nil, &oaserrors.ConfigError{Parameter: name, Option: "kind", Value: int(kind), Message: "unknown parameter kind"}
	}
	d := &Definition{kind: kind, name: name}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(d); err != nil {
			return nil, err
		}
	}
	if d.engine == nil {
		d.engine = defaultEngine
	}
	d.assemble()
	return d, nil
}

var defaultEngine rules.Engine = rules.NewEvaluator()

// String builds a string Definition.
func String(name string, opts ...Option) (*Definition, error) { return New(KindString, name, opts...) }

// Integer builds an integer Definition.
func Integer(name string, opts ...Option) (*Definition, error) {
	return New(KindInteger, name, opts...)
}

// Number builds a number Definition.
func Number(name string, opts ...Option) (*Definition, error) { return New(KindNumber, name, opts...) }

// Boolean builds a boolean Definition.
func Boolean(name string, opts ...Option) (*Definition, error) {
	return New(KindBoolean, name, opts...)
}

// Array builds an array Definition.
func Array(name string, opts ...Option) (*Definition, error) { return New(KindArray, name, opts...) }

// Object builds an object Definition.
func Object(name string, opts ...Option) (*Definition, error) { return New(KindObject, name, opts...) }

// Must panics if err is non-nil. It is intended for static schema declarations.
func Must(d *Definition, err error) *Definition {
	if err != nil {
		panic(err)
	}
	return d
}

// Name returns the parameter's own name.
func (d *Definition) Name() string { return d.name }

// Pointer returns the full RFC 6901 pointer of the parameter, including any
// enclosing object or array segments.
func (d *Definition) Pointer() string { return pathutil.Join(d.scope, d.name) }

// Kind returns the parameter shape.
func (d *Definition) Kind() Kind { return d.kind }

// Required reports whether the parameter must be present.
func (d *Definition) Required() bool { return d.required }

// Nullable reports whether null passes through the pipeline.
func (d *Definition) Nullable() bool { return d.nullable }

// Default returns the default value and whether one was set.
func (d *Definition) Default() (any, bool) { return d.def, d.hasDefault }

// Format returns the attached format, or nil.
func (d *Definition) Format() Format { return d.format }

// Description returns the human description.
func (d *Definition) Description() string { return d.description }

// WithName returns a copy of d named name. The copy shares only immutable configuration.
func (d *Definition) WithName(name string) *Definition {
	c := *d
	c.name = name
	return &c
}

// scoped returns a copy addressed under a parent pointer.
func (d *Definition) scoped(parent, name string) *Definition {
	c := *d
	c.scope = parent
	c.name = name
	return &c
}

// shapeName describes the definition in type-mismatch messages, e.g. "string(uuid)".
func (d *Definition) shapeName() string {
	if d.format != nil {
		return fmt.Sprintf("%s(%s)", d.kind, d.format.Name())
	}
	return d.kind.String()
}
