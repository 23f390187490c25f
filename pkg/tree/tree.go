// Package tree pairs two source trees into an ordered sequence of diff
// units, one per compared file.
//
// Pairing takes the union of relative paths beneath both roots, sorted
// lexicographically so runs are deterministic. Paths present on both sides
// are diffed; one-sided paths become whole-file additions or removals;
// undecodable sources become skipped units. Unit construction is split from
// listing so callers can fan the per-file work out to workers and reassemble
// results in listing order.
package tree

import (
	"sort"

	"github.com/wsdiff/wsdiff/pkg/diff"
	"github.com/wsdiff/wsdiff/pkg/errors"
	"github.com/wsdiff/wsdiff/pkg/highlight"
	"github.com/wsdiff/wsdiff/pkg/source"
)

// PathPair is one entry of the path union: a relative path and which sides
// it exists on. At least one of InOld/InNew is always true.
type PathPair struct {
	Path  string
	InOld bool
	InNew bool
}

// Pairing is the resolved comparison plan for two trees.
type Pairing struct {
	Old   *source.Tree
	New   *source.Tree
	Paths []PathPair
}

// List builds the comparison plan for two opened trees. Comparing a file
// against a directory is rejected up front.
func List(old, new *source.Tree) (*Pairing, error) {
	if old.Kind != new.Kind {
		return nil, errors.New(errors.ErrCodeInvalidInput, "cannot compare a file with a directory (%q vs %q)", old.Root, new.Root)
	}

	p := &Pairing{Old: old, New: new}

	if old.Kind == source.KindFile {
		// Single-file mode: one unit, titled after the new path.
		p.Paths = []PathPair{{Path: new.Root, InOld: true, InNew: true}}
		return p, nil
	}

	oldPaths, err := old.Paths()
	if err != nil {
		return nil, err
	}
	newPaths, err := new.Paths()
	if err != nil {
		return nil, err
	}

	inOld := make(map[string]bool, len(oldPaths))
	for _, path := range oldPaths {
		inOld[path] = true
	}
	inNew := make(map[string]bool, len(newPaths))
	for _, path := range newPaths {
		inNew[path] = true
	}

	union := make([]string, 0, len(oldPaths)+len(newPaths))
	union = append(union, oldPaths...)
	for _, path := range newPaths {
		if !inOld[path] {
			union = append(union, path)
		}
	}
	sort.Strings(union)

	p.Paths = make([]PathPair, len(union))
	for i, path := range union {
		p.Paths[i] = PathPair{Path: path, InOld: inOld[path], InNew: inNew[path]}
	}
	return p, nil
}

// Build computes the diff unit for one path pair. Undecodable sources yield
// a skipped unit; any other read failure is fatal and propagates.
func (p *Pairing) Build(pp PathPair) (diff.Unit, error) {
	unit := diff.Unit{Path: pp.Path}

	rel := pp.Path
	if p.Old.Kind == source.KindFile {
		rel = ""
	}

	var oldText, newText string
	if pp.InOld {
		f, err := p.Old.Read(rel)
		if err != nil {
			if errors.Is(err, errors.ErrCodeUndecodable) {
				unit.Status = diff.StatusSkipped
				return unit, nil
			}
			return unit, err
		}
		unit.OldPath = f.Path
		oldText = f.Text
	}
	if pp.InNew {
		f, err := p.New.Read(rel)
		if err != nil {
			if errors.Is(err, errors.ErrCodeUndecodable) {
				unit.Status = diff.StatusSkipped
				return unit, nil
			}
			return unit, err
		}
		unit.NewPath = f.Path
		newText = f.Text
	}

	unit.OldLines = diff.SplitLines(oldText)
	unit.NewLines = diff.SplitLines(newText)
	unit.Regions = diff.Classify(unit.OldLines, unit.NewLines, diff.Align(unit.OldLines, unit.NewLines))

	switch {
	case !pp.InOld:
		unit.Status = diff.StatusAdded
	case !pp.InNew:
		unit.Status = diff.StatusRemoved
	case unit.Changed():
		unit.Status = diff.StatusModified
	default:
		unit.Status = diff.StatusUnchanged
	}

	// Guess the language from the newer side, falling back to the old one
	// for removed files.
	name, text := unit.NewPath, newText
	if name == "" {
		name, text = unit.OldPath, oldText
	}
	unit.Language = highlight.DetectLexer(name, text)

	if err := diff.ValidateUnit(&unit); err != nil {
		panic(errors.Wrap(errors.ErrCodeInternal, err, "tree: built invalid unit"))
	}
	return unit, nil
}

// Pair lists and builds all units sequentially. The pipeline runner uses
// List and Build directly to parallelize; Pair is the plain path for tests
// and library callers.
func Pair(old, new *source.Tree) ([]diff.Unit, error) {
	pairing, err := List(old, new)
	if err != nil {
		return nil, err
	}
	units := make([]diff.Unit, len(pairing.Paths))
	for i, pp := range pairing.Paths {
		unit, err := pairing.Build(pp)
		if err != nil {
			return nil, err
		}
		units[i] = unit
	}
	return units, nil
}
