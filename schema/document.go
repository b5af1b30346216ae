package schema

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v4"
)

// Document is a parsed schema document.
type Document struct {
	Definitions map[string]*Schema `yaml:"definitions,omitempty"`
	Parameters  []*Schema          `yaml:"parameters"`
}

// Schema describes one parameter, item or property.
type Schema struct {
	Ref         string `yaml:"$ref,omitempty"`
	Name        string `yaml:"name,omitempty"`
	Type        string `yaml:"type,omitempty"`
	Description string `yaml:"description,omitempty"`
	Format      string `yaml:"format,omitempty"`

	Required   bool  `yaml:"required,omitempty"`
	Nullable   bool  `yaml:"nullable,omitempty"`
	Default    any   `yaml:"default,omitempty"`
	Enum       []any `yaml:"enum,omitempty"`
	StrictEnum bool  `yaml:"strictEnum,omitempty"`
	Examples   []any `yaml:"examples,omitempty"`
	Deprecated bool  `yaml:"deprecated,omitempty"`
	ReadOnly   bool  `yaml:"readOnly,omitempty"`
	WriteOnly  bool  `yaml:"writeOnly,omitempty"`
	Coerce     bool  `yaml:"coerce,omitempty"`

	MinLength        *int   `yaml:"minLength,omitempty"`
	MaxLength        *int   `yaml:"maxLength,omitempty"`
	Pattern          string `yaml:"pattern,omitempty"`
	NoTrim           bool   `yaml:"noTrim,omitempty"`
	Sanitize         bool   `yaml:"sanitize,omitempty"`
	NormalizeUnicode bool   `yaml:"normalizeUnicode,omitempty"`

	Minimum          *float64 `yaml:"minimum,omitempty"`
	Maximum          *float64 `yaml:"maximum,omitempty"`
	ExclusiveMinimum bool     `yaml:"exclusiveMinimum,omitempty"`
	ExclusiveMaximum bool     `yaml:"exclusiveMaximum,omitempty"`
	MultipleOf       *float64 `yaml:"multipleOf,omitempty"`
	StrictDecimal    bool     `yaml:"strictDecimal,omitempty"`

	Items       Items `yaml:"items,omitempty"`
	MinItems    *int  `yaml:"minItems,omitempty"`
	MaxItems    *int  `yaml:"maxItems,omitempty"`
	UniqueItems bool  `yaml:"uniqueItems,omitempty"`

	Properties           Properties `yaml:"properties,omitempty"`
	AdditionalProperties *bool      `yaml:"additionalProperties,omitempty"`
	MinProperties        *int       `yaml:"minProperties,omitempty"`
	MaxProperties        *int       `yaml:"maxProperties,omitempty"`

	DependsOn          []Dependency `yaml:"dependsOn,omitempty"`
	DependsOnAbsenceOf []string     `yaml:"dependsOnAbsenceOf,omitempty"`

	Rules      []Rule         `yaml:"rules,omitempty"`
	JSONSchema map[string]any `yaml:"jsonSchema,omitempty"`
}

// Items is a list of item schemas. A single mapping is accepted as a
// one-element list.
type Items []*Schema

// UnmarshalYAML implements yaml.Unmarshaler.
func (it *Items) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.MappingNode {
		var s Schema
		if err := node.Decode(&s); err != nil {
			return err
		}
		*it = Items{&s}
		return nil
	}
	var list []*Schema
	if err := node.Decode(&list); err != nil {
		return err
	}
	*it = list
	return nil
}

// Property is one named object property.
type Property struct {
	Name   string
	Schema *Schema
}

// Properties is an ordered property list decoded from a mapping.
type Properties []Property

// UnmarshalYAML implements yaml.Unmarshaler, keeping document order.
func (p *Properties) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: properties must be a mapping", node.Line)
	}
	out := make(Properties, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		var s Schema
		if err := val.Decode(&s); err != nil {
			return fmt.Errorf("property %q: %w", key.Value, err)
		}
		out = append(out, Property{Name: key.Value, Schema: &s})
	}
	*p = out
	return nil
}

// MarshalYAML implements yaml.Marshaler, writing properties as an ordered mapping.
func (p Properties) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, prop := range p {
		var val yaml.Node
		if err := val.Encode(prop.Schema); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: prop.Name}, &val)
	}
	return node, nil
}

// Dependency names a sibling the parameter requires. When is an optional
// expr-lang condition evaluated against the sibling's value.
type Dependency struct {
	Name    string `yaml:"name"`
	When    string `yaml:"when,omitempty"`
	Message string `yaml:"message,omitempty"`
}

// UnmarshalYAML implements yaml.Unmarshaler. A bare scalar is a dependency name.
func (d *Dependency) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		d.Name = node.Value
		return nil
	}
	type plain Dependency
	return node.Decode((*plain)(d))
}

// Rule is an expr-lang validation expression evaluated with the value bound
// to "value".
type Rule struct {
	Expr    string `yaml:"expr"`
	Message string `yaml:"message,omitempty"`
}

// UnmarshalYAML implements yaml.Unmarshaler. A bare scalar is an expression.
func (r *Rule) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		r.Expr = node.Value
		return nil
	}
	type plain Rule
	return node.Decode((*plain)(r))
}

// Parse parses a YAML or JSON schema document.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("schema: parsing document: %w", err)
	}
	return &doc, nil
}

// ParseFile reads and parses a schema document.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schema: reading %s: %w", path, err)
	}
	return Parse(data)
}
