// Package source reads local files and directory trees for comparison.
//
// A [Tree] is one side of a comparison: either a single file or a directory
// root. It answers two questions for the pairer: which relative paths exist
// beneath it, and what is the decoded text of one of them. Binary content is
// reported as an UNDECODABLE_SOURCE error rather than returned, so callers
// can mark the unit skipped without aborting the run.
package source

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"unicode/utf8"

	"github.com/wsdiff/wsdiff/pkg/errors"
)

// Kind tags a tree as a single file or a directory root. The tag is resolved
// once when the tree is opened, never re-checked downstream.
type Kind int

// Tree kinds.
const (
	KindFile Kind = iota
	KindDirectory
)

// sniffLen is the number of leading bytes inspected for NUL when deciding
// whether a file is binary.
const sniffLen = 8000

// Tree is one side of a comparison rooted at a local path.
type Tree struct {
	Root string
	Kind Kind
}

// File is the decoded content of one source.
type File struct {
	Path string // path the content was read from
	Text string
}

// Open stats path and returns a tagged tree. A missing or unreadable path is
// an INVALID_PATH error, which callers treat as fatal.
func Open(path string) (*Tree, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeInvalidPath, "path %q does not exist", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "cannot access %q", path)
	}
	kind := KindFile
	if info.IsDir() {
		kind = KindDirectory
	}
	return &Tree{Root: path, Kind: kind}, nil
}

// Paths returns the sorted relative paths of all regular files beneath the
// tree. For a single-file tree it returns one entry: the file's base name.
func (t *Tree) Paths() ([]string, error) {
	if t.Kind == KindFile {
		return []string{filepath.Base(t.Root)}, nil
	}

	var paths []string
	err := filepath.WalkDir(t.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(t.Root, path)
		if err != nil {
			return err
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "cannot list %q", t.Root)
	}
	sort.Strings(paths)
	return paths, nil
}

// Read decodes the file at rel beneath the tree. For single-file trees rel
// is ignored and the root file is read. Binary content yields an
// UNDECODABLE_SOURCE error.
func (t *Tree) Read(rel string) (*File, error) {
	path := t.Root
	if t.Kind == KindDirectory {
		path = filepath.Join(t.Root, filepath.FromSlash(rel))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "cannot read %q", path)
	}
	if IsBinary(data) {
		return nil, errors.New(errors.ErrCodeUndecodable, "%q is not decodable as text", path)
	}
	return &File{Path: path, Text: string(data)}, nil
}

// Hash returns a content hash of the whole tree: every relative path, its
// length and its raw bytes, in sorted path order. Binary files hash like any
// other file. The pipeline keys its document cache on this.
func (t *Tree) Hash() (string, error) {
	paths, err := t.Paths()
	if err != nil {
		return "", err
	}

	h := sha256.New()
	for _, rel := range paths {
		path := t.Root
		if t.Kind == KindDirectory {
			path = filepath.Join(t.Root, filepath.FromSlash(rel))
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return "", errors.Wrap(errors.ErrCodeFileNotFound, err, "cannot read %q", path)
		}
		fmt.Fprintf(h, "%s\x00%d\x00", rel, len(data))
		h.Write(data)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// IsBinary reports whether data looks like binary content: a NUL byte in the
// sniff window, or bytes that are not valid UTF-8.
func IsBinary(data []byte) bool {
	sniff := data
	if len(sniff) > sniffLen {
		sniff = sniff[:sniffLen]
	}
	if bytes.IndexByte(sniff, 0) >= 0 {
		return true
	}
	// A truncated sniff window can split a multi-byte rune; only the full
	// content decides UTF-8 validity.
	return !utf8.Valid(data)
}
