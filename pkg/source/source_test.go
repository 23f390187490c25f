package source

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/wsdiff/wsdiff/pkg/errors"
)

func writeFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestOpenMissingPath(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope"))
	if err == nil {
		t.Fatal("expected error for missing path")
	}
	if !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("error code = %q, want INVALID_PATH", errors.GetCode(err))
	}
}

func TestOpenKinds(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "f.txt", "hello\n")

	tree, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	if tree.Kind != KindDirectory {
		t.Error("directory not tagged as KindDirectory")
	}

	tree, err = Open(filepath.Join(dir, "f.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if tree.Kind != KindFile {
		t.Error("file not tagged as KindFile")
	}
}

func TestPathsSortedRecursive(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.txt", "b")
	writeFile(t, dir, "a.txt", "a")
	writeFile(t, dir, "sub/c.txt", "c")

	tree, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	paths, err := tree.Paths()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a.txt", "b.txt", "sub/c.txt"}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("Paths() = %v, want %v", paths, want)
	}
}

func TestReadSingleFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "f.txt", "hello\n")

	tree, err := Open(filepath.Join(dir, "f.txt"))
	if err != nil {
		t.Fatal(err)
	}
	f, err := tree.Read("")
	if err != nil {
		t.Fatal(err)
	}
	if f.Text != "hello\n" {
		t.Errorf("Text = %q", f.Text)
	}
}

func TestReadBinary(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bin"), []byte{0x7f, 'E', 'L', 'F', 0, 1, 2}, 0644); err != nil {
		t.Fatal(err)
	}

	tree, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	_, err = tree.Read("bin")
	if !errors.Is(err, errors.ErrCodeUndecodable) {
		t.Errorf("binary read error code = %q, want UNDECODABLE_SOURCE", errors.GetCode(err))
	}
}

func TestIsBinary(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want bool
	}{
		{"empty", nil, false},
		{"ascii", []byte("hello world\n"), false},
		{"utf8", []byte("héllo wörld\n"), false},
		{"nul", []byte("abc\x00def"), true},
		{"invalid utf8", []byte{0xff, 0xfe, 0x41}, true},
	}
	for _, tt := range tests {
		if got := IsBinary(tt.data); got != tt.want {
			t.Errorf("%s: IsBinary = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestTreeHash(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "one")
	writeFile(t, dir, "sub/b.txt", "two")

	tree, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	h1, err := tree.Hash()
	if err != nil {
		t.Fatal(err)
	}
	if len(h1) != 64 {
		t.Errorf("hash length = %d, want 64", len(h1))
	}

	// Stable for unchanged content
	h2, err := tree.Hash()
	if err != nil {
		t.Fatal(err)
	}
	if h1 != h2 {
		t.Error("hash should be stable for unchanged content")
	}

	// Any content change flips the hash
	writeFile(t, dir, "sub/b.txt", "three")
	h3, err := tree.Hash()
	if err != nil {
		t.Fatal(err)
	}
	if h3 == h1 {
		t.Error("hash should change when content changes")
	}
}
