package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// testEnv returns an Environment writing into buffers, with a fixed clock
// and no browser.
func testEnv() (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env := &Environment{
		Now:         func() time.Time { return time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC) },
		Stdout:      &stdout,
		Stderr:      &stderr,
		OpenBrowser: func(string) {},
	}
	return env, &stdout, &stderr
}

// setupTestDir writes files (relative path to content) under a temp dir
// and returns the dir.
func setupTestDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path) // #nosec G304 -- test path
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

const sampleNote = `# Attention Is All You Need

The Transformer drops recurrence and relies on attention alone.

## Key ideas

- Multi-head attention
- Positional encodings
`
