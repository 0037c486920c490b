package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteFiles creates a temporary directory holding files (name → content)
// and returns its absolute path. It fails the test immediately on error.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	absPath, err := filepath.Abs(t.TempDir())
	require.NoError(t, err, "Failed to get absolute path for temp dir")

	for name, content := range files {
		path := filepath.Join(absPath, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644), "Failed to write %s", name)
	}
	return absPath
}

// IdentifierMarkdown is a definition document for the identifier language,
// written as Markdown frontmatter with the description in the body.
const IdentifierMarkdown = `---
states: [q0, q1, q2]
alphabet: [A-Z, a-z, 0-9]
start: q0
accepting: [q2]
transitions:
  - {from: q0, on: A-Z, to: q1}
  - {from: q1, on: a-z, to: q1}
  - {from: q1, on: 0-9, to: q2}
  - {from: q2, on: 0-9, to: q2}
---
An uppercase letter, lowercase letters, then digits.
`

// BinaryJSON is a JSON definition accepting binary strings that end in 1.
// The unquoted symbols exercise weakly typed decoding.
const BinaryJSON = `{
  "name": "ends-in-one",
  "description": "binary strings ending in 1",
  "states": ["q0", "q1"],
  "alphabet": ["01"],
  "start": "q0",
  "accepting": ["q1"],
  "transitions": [
    {"from": "q0", "on": 0, "to": "q0"},
    {"from": "q0", "on": 1, "to": "q1"},
    {"from": "q1", "on": 0, "to": "q0"},
    {"from": "q1", "on": 1, "to": "q1"}
  ]
}`
