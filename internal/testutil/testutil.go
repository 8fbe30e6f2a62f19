// Package testutil provides test utilities and constructors with pre-injected dependencies.
package testutil

import (
	"log/slog"
	"testing"

	"extswap/internal/adapters/filesystem"
	"extswap/internal/logging"
)

// Logger returns a test logger for use in tests.
func Logger() *slog.Logger {
	return logging.NewTestLogger()
}

// MemoryTree returns an in-memory filesystem populated with files, keyed by
// slash-separated path.
func MemoryTree(t *testing.T, files map[string]string) *filesystem.Adapter {
	t.Helper()

	fs := filesystem.NewMemory()
	for path, content := range files {
		if err := fs.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to seed %s: %v", path, err)
		}
	}
	return fs
}

// ReadString reads a file from the adapter and fails the test on error.
func ReadString(t *testing.T, fs *filesystem.Adapter, path string) string {
	t.Helper()

	data, err := fs.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}
