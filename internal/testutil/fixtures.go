// Package testutil provides test utilities and fixtures for unit tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"go.yaml.in/yaml/v4"
)

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// PetSchemaYAML is a small schema document exercising definitions, $ref reuse,
// nested objects and arrays.
const PetSchemaYAML = `
definitions:
  Tag:
    type: string
    minLength: 2
parameters:
  - name: id
    type: integer
    required: true
    minimum: 1
  - name: status
    type: string
    enum: [available, pending, sold]
    default: available
  - name: tags
    type: array
    items:
      - $ref: "#/definitions/Tag"
  - name: owner
    type: object
    properties:
      name:
        type: string
        required: true
      email:
        type: string
        format: email
`

// WriteTempFile writes content to a file named name in a temporary directory.
// Returns the path to the file.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempFile(t *testing.T, name, content string) string {
	t.Helper()

	tmpFile := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(tmpFile, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write temporary file: %v", err)
	}

	return tmpFile
}

// WriteTempYAML marshals a document to YAML and writes it to a temporary file.
// Returns the path to the temporary file.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempYAML(t *testing.T, doc any) string {
	t.Helper()

	data, err := yaml.Marshal(doc)
	if err != nil {
		t.Fatalf("Failed to marshal document to YAML: %v", err)
	}

	return WriteTempFile(t, "test.yaml", string(data))
}

// WriteTempJSON marshals a document to JSON and writes it to a temporary file.
// Returns the path to the temporary file.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempJSON(t *testing.T, doc any) string {
	t.Helper()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal document to JSON: %v", err)
	}

	return WriteTempFile(t, "test.json", string(data))
}
