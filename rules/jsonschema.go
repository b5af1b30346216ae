package rules

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// JSONSchemaRule validates a value against a compiled JSON Schema document.
type JSONSchemaRule struct {
	schema *jsonschema.Schema
}

// JSONSchema compiles a draft 2020-12 JSON Schema document.
// document may be a JSON string, []byte, or any value that marshals to a schema object.
func JSONSchema(document any) (*JSONSchemaRule, error) {
	var raw []byte
	switch d := document.(type) {
	case string:
		raw = []byte(d)
	case []byte:
		raw = d
	default:
		b, err := json.Marshal(d)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal schema: %w", err)
		}
		raw = b
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("schema.json", bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return nil, err
	}
	return &JSONSchemaRule{schema: schema}, nil
}

// Description implements Rule.
func (r *JSONSchemaRule) Description() string { return "jsonSchema" }

// Check implements Rule.
func (r *JSONSchemaRule) Check(value any) error {
	// Round-trip through JSON so the validator only sees JSON types.
	b, err := json.Marshal(value)
	if err != nil {
		return failf("value cannot be represented as JSON: %v", err)
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return failf("value cannot be represented as JSON: %v", err)
	}

	err = r.schema.Validate(doc)
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	var msgs []string
	collectSchemaErrors(ve, &msgs)
	return errors.New(strings.Join(msgs, "; "))
}

func collectSchemaErrors(err *jsonschema.ValidationError, msgs *[]string) {
	if len(err.Causes) == 0 {
		msg := err.Message
		if err.InstanceLocation != "" {
			msg = err.InstanceLocation + ": " + msg
		}
		*msgs = append(*msgs, msg)
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(cause, msgs)
	}
}
