package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const petParams = `
definitions:
  Status:
    type: string
    enum: [available, pending, sold]
parameters:
  - name: limit
    type: integer
    coerce: true
    minimum: 1
    maximum: 100
    default: 20
  - name: status
    $ref: "#/definitions/Status"
    required: true
  - name: tags
    type: array
    items:
      type: string
      minLength: 2
`

// clearParamprepEnv isolates tests from ambient PARAMPREP_* settings.
func clearParamprepEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PARAMPREP_LOG_LEVEL", "PARAMPREP_LOG_FORMAT", "PARAMPREP_LOCATION",
		"PARAMPREP_FORMAT", "PARAMPREP_MAX_DEPTH",
	} {
		t.Setenv(key, "")
	}
}

// writeFile writes content into a temp dir and returns the path.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// captureOutput redirects command output, and optionally feeds stdin.
func captureOutput(t *testing.T, input string) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	oldOut, oldIn := stdout, stdin
	stdout, stdin = &buf, strings.NewReader(input)
	t.Cleanup(func() { stdout, stdin = oldOut, oldIn })
	return &buf
}
