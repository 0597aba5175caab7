package testutil

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
)

// TempDir creates a directory removed when t finishes.
func TempDir(t *testing.T) string {
	dir, err := ioutil.TempDir("", "sha2-test")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })
	return dir
}

// WriteFile writes data to dir/name and returns the full path.
func WriteFile(t *testing.T, dir, name string, data []byte) string {
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		t.Fatal(err)
	}
	if err := ioutil.WriteFile(path, data, 0600); err != nil {
		t.Fatal(err)
	}
	return path
}
