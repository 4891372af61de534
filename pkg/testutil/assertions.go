package testutil

import (
	"testing"

	"github.com/spf13/afero"
)

// ReadFile returns the content of path, failing the test if it is unreadable
func ReadFile(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

// AssertFileContent checks that path holds exactly expected
func AssertFileContent(t *testing.T, fs afero.Fs, path, expected string) {
	t.Helper()
	if actual := ReadFile(t, fs, path); actual != expected {
		t.Errorf("File %s content mismatch\nExpected: %q\nActual:   %q", path, expected, actual)
	}
}

// AssertFileExists checks that path exists
func AssertFileExists(t *testing.T, fs afero.Fs, path string) {
	t.Helper()
	ok, err := afero.Exists(fs, path)
	if err != nil {
		t.Fatalf("failed to stat %s: %v", path, err)
	}
	if !ok {
		t.Errorf("Expected file %s to exist", path)
	}
}

// AssertNoFile checks that path does not exist
func AssertNoFile(t *testing.T, fs afero.Fs, path string) {
	t.Helper()
	ok, err := afero.Exists(fs, path)
	if err != nil {
		t.Fatalf("failed to stat %s: %v", path, err)
	}
	if ok {
		t.Errorf("Expected file %s not to exist", path)
	}
}
