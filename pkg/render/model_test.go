package render

import (
	"strings"
	"testing"

	"github.com/wsdiff/wsdiff/pkg/diff"
	"github.com/wsdiff/wsdiff/pkg/errors"
	"github.com/wsdiff/wsdiff/pkg/highlight"
)

// makeUnit runs the diff pipeline on two texts.
func makeUnit(t *testing.T, oldText, newText string) *diff.Unit {
	t.Helper()
	u := &diff.Unit{
		Path:     "f.txt",
		Status:   diff.StatusModified,
		OldLines: diff.SplitLines(oldText),
		NewLines: diff.SplitLines(newText),
	}
	u.Regions = diff.Classify(u.OldLines, u.NewLines, diff.Align(u.OldLines, u.NewLines))
	if !u.Changed() {
		u.Status = diff.StatusUnchanged
	}
	return u
}

// cellText joins a cell's segment texts.
func cellText(c Cell) string {
	var b strings.Builder
	for _, s := range c.Segments {
		b.WriteString(s.Text)
	}
	return b.String()
}

func TestBuildFileEqualRows(t *testing.T) {
	u := makeUnit(t, "a\nb\n", "a\nb\n")
	fd := BuildFile(u, nil)

	if len(fd.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(fd.Rows))
	}
	for i, row := range fd.Rows {
		if row.Old.Kind != CellContext || row.New.Kind != CellContext {
			t.Errorf("row %d kinds = (%q, %q)", i, row.Old.Kind, row.New.Kind)
		}
		if row.Old.Number != i+1 || row.New.Number != i+1 {
			t.Errorf("row %d numbers = (%d, %d)", i, row.Old.Number, row.New.Number)
		}
		if cellText(row.Old) != cellText(row.New) {
			t.Errorf("row %d cells differ", i)
		}
	}
}

func TestBuildFileReplacedRow(t *testing.T) {
	u := makeUnit(t, "a\nb\nc\n", "a\nx\nc\n")
	fd := BuildFile(u, nil)

	if len(fd.Rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(fd.Rows))
	}
	row := fd.Rows[1]
	if row.Old.Kind != CellChange || row.New.Kind != CellChange {
		t.Fatalf("middle row kinds = (%q, %q), want change", row.Old.Kind, row.New.Kind)
	}
	if cellText(row.Old) != "b" || cellText(row.New) != "x" {
		t.Errorf("middle row texts = (%q, %q)", cellText(row.Old), cellText(row.New))
	}

	// The whole differing word must be flagged changed.
	for _, s := range row.Old.Segments {
		if s.Text == "b" && !s.Changed {
			t.Error("old side change not flagged")
		}
	}
	for _, s := range row.New.Segments {
		if s.Text == "x" && !s.Changed {
			t.Error("new side change not flagged")
		}
	}
}

func TestBuildFileInsertedRow(t *testing.T) {
	u := makeUnit(t, "", "hello")
	u.Status = diff.StatusAdded
	fd := BuildFile(u, nil)

	if len(fd.Rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(fd.Rows))
	}
	row := fd.Rows[0]
	if row.Old.Kind != CellEmpty || row.Old.Number != 0 || len(row.Old.Segments) != 0 {
		t.Errorf("old cell = %+v, want empty", row.Old)
	}
	if row.New.Kind != CellWhole || cellText(row.New) != "hello" {
		t.Errorf("new cell = %+v", row.New)
	}
}

func TestBuildFileUnevenReplace(t *testing.T) {
	u := makeUnit(t, "one\ntwo\nthree\n", "merged\n")
	fd := BuildFile(u, nil)

	// Whole-line delete rows must precede whole-line insert rows.
	var sawInsert bool
	for _, row := range fd.Rows {
		switch {
		case row.New.Kind == CellEmpty:
			if sawInsert {
				t.Fatal("delete row after insert row")
			}
		case row.Old.Kind == CellEmpty:
			sawInsert = true
		}
	}
}

func TestBuildFileHighlightMerge(t *testing.T) {
	u := makeUnit(t, "func foo() {}\n", "func bar() {}\n")
	u.Language = "Go"
	fd := BuildFile(u, highlight.Highlight)

	row := fd.Rows[0]
	if cellText(row.Old) != "func foo() {}" {
		t.Fatalf("old text = %q", cellText(row.Old))
	}

	// Both signals must survive the merge: at least one changed segment and
	// at least one syntax-classified unchanged segment.
	var changed, syntaxOnly bool
	for _, s := range row.Old.Segments {
		if s.Class == "" {
			t.Errorf("segment %q lost its syntax class", s.Text)
		}
		if s.Changed {
			changed = true
		} else {
			syntaxOnly = true
		}
	}
	if !changed || !syntaxOnly {
		t.Errorf("merge lost a signal: changed=%v syntaxOnly=%v", changed, syntaxOnly)
	}
}

func TestBuildFileHighlightFallback(t *testing.T) {
	u := makeUnit(t, "a\n", "b\n")
	u.Language = "Go"
	failing := func(text, lexer string) ([][]highlight.Span, error) {
		return nil, errors.New(errors.ErrCodeHighlightFailed, "boom")
	}
	fd := BuildFile(u, failing)

	// Must fall back to plain spans, not drop content.
	if cellText(fd.Rows[0].Old) != "a" || cellText(fd.Rows[0].New) != "b" {
		t.Errorf("fallback lost content: %+v", fd.Rows[0])
	}
}

func TestBuildSkippedUnit(t *testing.T) {
	u := &diff.Unit{Path: "blob", Status: diff.StatusSkipped}
	doc := Build([]diff.Unit{*u}, "t", nil)
	if len(doc.Files) != 1 {
		t.Fatalf("got %d files", len(doc.Files))
	}
	if doc.Files[0].Rows != nil {
		t.Error("skipped unit produced rows")
	}
}

func TestMergeSegmentsSplitsAtBoundaries(t *testing.T) {
	syntax := []highlight.Span{{Text: "abcdef", Class: "wsd-n"}}
	segs := mergeSegments(syntax, []charRange{{2, 4}})

	var rebuilt string
	for _, s := range segs {
		rebuilt += s.Text
		inRange := s.Changed
		for i := range s.Text {
			pos := len(rebuilt) - len(s.Text) + i
			if (pos >= 2 && pos < 4) != inRange {
				t.Errorf("segment %q changed=%v disagrees at pos %d", s.Text, inRange, pos)
			}
		}
	}
	if rebuilt != "abcdef" {
		t.Errorf("segments reconstruct %q", rebuilt)
	}
}
