package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wsdiff/wsdiff/pkg/errors"
)

func testCLI(t *testing.T) *CLI {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	return New(bytes.NewBuffer(nil), LogInfo)
}

func TestRootCommandWiring(t *testing.T) {
	c := testCLI(t)
	root := c.RootCommand()

	if !strings.HasPrefix(root.Use, "wsdiff") {
		t.Errorf("root.Use = %q, want wsdiff prefix", root.Use)
	}

	want := []string{"serve", "cache", "lexers", "completion"}
	for _, name := range want {
		found := false
		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestRootCommandFlags(t *testing.T) {
	c := testCLI(t)
	root := c.RootCommand()

	for _, name := range []string{
		"output", "open", "syntax-css", "lexer", "title",
		"header", "content", "overview", "context", "fold-min",
		"no-filenames", "workers", "no-cache", "refresh",
	} {
		if root.Flags().Lookup(name) == nil {
			t.Errorf("flag --%s not registered", name)
		}
	}

	if got := root.Flags().Lookup("context").DefValue; got != "5" {
		t.Errorf("context default = %q, want %q", got, "5")
	}
	if got := root.Flags().Lookup("output").Shorthand; got != "o" {
		t.Errorf("output shorthand = %q, want %q", got, "o")
	}
}

func TestRunDiffEndToEnd(t *testing.T) {
	c := testCLI(t)
	dir := t.TempDir()

	oldPath := filepath.Join(dir, "old.go")
	newPath := filepath.Join(dir, "new.go")
	outPath := filepath.Join(dir, "diff.html")
	if err := os.WriteFile(oldPath, []byte("package main\n\nfunc main() {}\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(newPath, []byte("package main\n\nfunc main() { println(1) }\n"), 0644); err != nil {
		t.Fatal(err)
	}

	opts := &diffOpts{
		output:  outPath,
		context: 5,
		foldMin: 5,
		noCache: true,
	}
	if err := c.runDiff(context.Background(), oldPath, newPath, opts); err != nil {
		t.Fatalf("runDiff() error = %v", err)
	}

	html, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(html, []byte("<!DOCTYPE html>")) {
		t.Error("output is not a complete HTML document")
	}
	if !bytes.Contains(html, []byte("println(1)")) {
		t.Error("output does not contain the changed line")
	}
}

func TestRunDiffModeConflict(t *testing.T) {
	c := testCLI(t)

	opts := &diffOpts{headerOnly: true, contentOnly: true}
	err := c.runDiff(context.Background(), "a", "b", opts)
	if !errors.Is(err, errors.ErrCodeInvalidFlag) {
		t.Errorf("runDiff() error = %v, want %s", err, errors.ErrCodeInvalidFlag)
	}
}

func TestRunDiffOpenRequiresOutput(t *testing.T) {
	c := testCLI(t)

	opts := &diffOpts{open: true}
	err := c.runDiff(context.Background(), "a", "b", opts)
	if !errors.Is(err, errors.ErrCodeInvalidFlag) {
		t.Errorf("runDiff() error = %v, want %s", err, errors.ErrCodeInvalidFlag)
	}
}

func TestRunDiffMissingStylesheet(t *testing.T) {
	c := testCLI(t)

	opts := &diffOpts{syntaxCSS: filepath.Join(t.TempDir(), "nope.css")}
	err := c.runDiff(context.Background(), "a", "b", opts)
	if !errors.Is(err, errors.ErrCodeInvalidFlag) {
		t.Errorf("runDiff() error = %v, want %s", err, errors.ErrCodeInvalidFlag)
	}
}

func TestWriteArtifact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.html")

	got, err := writeArtifact([]byte("<html></html>"), path)
	if err != nil {
		t.Fatalf("writeArtifact() error = %v", err)
	}
	if got != path {
		t.Errorf("writeArtifact() path = %q, want %q", got, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "<html></html>" {
		t.Errorf("file content = %q", data)
	}
}

func TestCacheDirRespectsXDG(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", base)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error = %v", err)
	}
	if want := filepath.Join(base, "wsdiff"); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestLoadConfig(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)

	// Missing file is not an error.
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Context != 0 {
		t.Errorf("missing config should be zero-valued, got Context=%d", cfg.Context)
	}

	dir := filepath.Join(base, "wsdiff")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	content := "context = 3\nfold_min = 10\n\n[serve]\naddr = \":9999\"\nstore = \"mongo\"\n"
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err = LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Context != 3 {
		t.Errorf("Context = %d, want 3", cfg.Context)
	}
	if cfg.FoldMin != 10 {
		t.Errorf("FoldMin = %d, want 10", cfg.FoldMin)
	}
	if cfg.Serve.Addr != ":9999" {
		t.Errorf("Serve.Addr = %q, want %q", cfg.Serve.Addr, ":9999")
	}
	if cfg.Serve.Store != "mongo" {
		t.Errorf("Serve.Store = %q, want %q", cfg.Serve.Store, "mongo")
	}
}

func TestOrHelpers(t *testing.T) {
	if got := orInt(0, 5); got != 5 {
		t.Errorf("orInt(0, 5) = %d, want 5", got)
	}
	if got := orInt(3, 5); got != 3 {
		t.Errorf("orInt(3, 5) = %d, want 3", got)
	}
	if got := orStr("", "x"); got != "x" {
		t.Errorf("orStr(\"\", \"x\") = %q, want %q", got, "x")
	}
	if got := orStr("a", "x"); got != "a" {
		t.Errorf("orStr(\"a\", \"x\") = %q, want %q", got, "a")
	}
}
