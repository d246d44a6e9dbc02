package textfile

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/exp/slices"
)

func TestLoadStripsLineTerminators(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crlf.txt")
	if err := os.WriteFile(path, []byte("one\r\ntwo\n\nthree"), 0o644); err != nil {
		t.Fatal(err)
	}

	lines, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := []string{"one", "two", "", "three"}
	if !slices.Equal(lines, expected) {
		t.Errorf("expected %q, got %q", expected, lines)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	lines, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 0 {
		t.Errorf("expected no lines, got %q", lines)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.txt"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.c")
	lines := []string{"int main() {", "\treturn 0;", "}"}

	n, err := Disk{}.Save(path, lines)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if n != len(data) {
		t.Errorf("expected %d bytes reported, got %d", len(data), n)
	}
	if string(data) != "int main() {\n\treturn 0;\n}\n" {
		t.Errorf("unexpected file content %q", data)
	}

	got, err := Disk{}.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(got, lines) {
		t.Errorf("expected %q, got %q", lines, got)
	}
}

func TestSaveToMissingDirectory(t *testing.T) {
	_, err := Save(filepath.Join(t.TempDir(), "no", "such", "dir.txt"), []string{"x"})
	if err == nil {
		t.Fatal("expected error writing into a missing directory")
	}
}
