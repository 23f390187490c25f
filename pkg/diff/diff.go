// Package diff computes line-level diffs between two text sources.
//
// This package implements the core comparison pipeline in two stages:
//
//  1. Align: a Myers O(ND) edit script over lines (exact string equality,
//     minimal insert+delete count, deterministic tie-breaking)
//  2. Classify: collapsing the edit script into contiguous change regions
//     (equal, inserted, deleted, replaced) with character-level sub-spans
//     for replaced line pairs
//
// The output is a sequence of [Region] values that jointly cover every line
// of both inputs exactly once. Downstream consumers (the render model and
// the HTML assembler) only ever see regions, never raw edit scripts.
//
// # Usage
//
//	old := diff.SplitLines(oldText)
//	new := diff.SplitLines(newText)
//	regions := diff.Classify(old, new, diff.Align(old, new))
//
// All functions are pure and safe for concurrent use.
package diff

import "strings"

// Op identifies the kind of an edit operation, region, or span.
type Op int

// Edit operation kinds. OpReplace only appears on regions and spans, never
// in an edit script.
const (
	OpEqual Op = iota
	OpInsert
	OpDelete
	OpReplace
)

// String returns a short human-readable name for the op.
func (op Op) String() string {
	switch op {
	case OpEqual:
		return "equal"
	case OpInsert:
		return "insert"
	case OpDelete:
		return "delete"
	case OpReplace:
		return "replace"
	}
	return "unknown"
}

// EditOp is a single step of an edit script produced by Align.
// Exactly one index is -1 for inserts and deletes.
type EditOp struct {
	Op       Op  // OpEqual, OpInsert, or OpDelete
	OldIndex int // line index in the old sequence, -1 for OpInsert
	NewIndex int // line index in the new sequence, -1 for OpDelete
}

// Region is a maximal contiguous run of same-kind change, carrying half-open
// line ranges into both sides. Either range may be empty, except for OpEqual
// and OpReplace regions which always occupy both sides.
type Region struct {
	Kind     Op
	OldStart int // first old line covered (inclusive)
	OldEnd   int // one past the last old line covered
	NewStart int
	NewEnd   int

	// Pairs holds the 1:1 line pairing for OpReplace regions whose sides
	// have equal line counts. Nil otherwise; such regions render as whole
	// deleted lines followed by whole inserted lines.
	Pairs []LinePair
}

// OldLen returns the number of old-side lines covered by the region.
func (r Region) OldLen() int { return r.OldEnd - r.OldStart }

// NewLen returns the number of new-side lines covered by the region.
func (r Region) NewLen() int { return r.NewEnd - r.NewStart }

// LinePair is one aligned old/new line inside a replaced region, with
// character-level spans describing the intra-line change.
type LinePair struct {
	Old   string
	New   string
	Spans []Span
}

// Span is a character-level fragment of a line pair. Concatenating the Old
// fields of a pair's spans reproduces the old line exactly; likewise for New.
// Equal spans carry identical text on both sides.
type Span struct {
	Op  Op
	Old string
	New string
}

// Status describes the overall state of one compared file pair.
type Status string

// Unit statuses.
const (
	StatusModified  Status = "modified"
	StatusUnchanged Status = "unchanged"
	StatusAdded     Status = "added"
	StatusRemoved   Status = "removed"
	StatusSkipped   Status = "skipped" // binary or otherwise undecodable
)

// Unit is the complete diff result for one file pair.
type Unit struct {
	Path     string // relative path shown in the document
	OldPath  string // resolved old source path, "" if the file was added
	NewPath  string // resolved new source path, "" if the file was removed
	Status   Status
	Language string // lexer name used for syntax highlighting, "" if unknown

	OldLines []string
	NewLines []string
	Regions  []Region
}

// Changed reports whether the unit contains any non-equal region.
func (u *Unit) Changed() bool {
	for _, r := range u.Regions {
		if r.Kind != OpEqual {
			return true
		}
	}
	return false
}

// SplitLines splits text into lines without their trailing newline. An empty
// string yields no lines; a trailing newline does not produce a final empty
// line. No other normalization is applied.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
