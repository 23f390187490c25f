// Package render builds the layout-agnostic row/cell model consumed by the
// HTML assembler.
//
// # Overview
//
// The model is a flat sequence of rows per file, each row holding an old and
// a new cell. A cell is an ordered list of text segments, and every segment
// carries two independent attributes: a syntax class (from the highlighter)
// and a changed flag (from the diff). The assembler turns both into CSS
// classes, so syntax color and change color apply simultaneously without one
// overriding the other.
//
// The same rows serve both presentations: the side-by-side layout places old
// and new cells in separate columns, the inline layout hides one side per
// row. Nothing here knows which layout is active.
//
// # Highlighting
//
// Syntax highlighting is injected as a [highlight.Func]. When it fails for a
// unit (unknown language, lexer error) that unit degrades to plain spans;
// the rest of the document is unaffected.
package render

import (
	"strings"

	"github.com/wsdiff/wsdiff/pkg/diff"
	"github.com/wsdiff/wsdiff/pkg/highlight"
)

// CellKind selects the change styling of one cell. The values double as CSS
// class suffixes in the assembler.
type CellKind string

// Cell kinds.
const (
	CellContext CellKind = ""       // unchanged line
	CellChange  CellKind = "change" // line replaced, intra-line spans present
	CellWhole   CellKind = "insert" // whole line inserted or deleted
	CellEmpty   CellKind = "empty"  // no line on this side
)

// Segment is one run of characters with uniform attributes.
type Segment struct {
	Text    string
	Class   string // syntax class including prefix, e.g. "wsd-k"
	Changed bool   // part of an intra-line change
}

// Cell is one side of a row. Number is the 1-based source line number, 0 for
// empty cells.
type Cell struct {
	Number   int
	Kind     CellKind
	Segments []Segment
}

// Row is one aligned line of the diff: the old-side cell and the new-side
// cell.
type Row struct {
	Old Cell
	New Cell
}

// FileDiff is the renderable model of one compared file.
type FileDiff struct {
	Path     string
	Status   diff.Status
	Language string
	Rows     []Row
}

// Document is the complete render model handed to the assembler.
type Document struct {
	Title       string
	SyntaxCSS   string // stylesheet text embedded by the assembler
	OverviewSVG string // optional change-overview graphic, empty to omit
	Files       []FileDiff
}

// Build converts diff units into a render model, highlighting each unit
// with hl. Skipped units contribute a file entry without rows so they still
// appear in the document.
func Build(units []diff.Unit, title string, hl highlight.Func) Document {
	doc := Document{Title: title, Files: make([]FileDiff, len(units))}
	for i := range units {
		doc.Files[i] = BuildFile(&units[i], hl)
	}
	return doc
}

// BuildFile builds the row model for a single unit.
func BuildFile(u *diff.Unit, hl highlight.Func) FileDiff {
	fd := FileDiff{Path: u.Path, Status: u.Status, Language: u.Language}
	if u.Status == diff.StatusSkipped {
		return fd
	}

	oldSpans := highlightLines(u.OldLines, u.Language, hl)
	newSpans := highlightLines(u.NewLines, u.Language, hl)

	for _, r := range u.Regions {
		switch r.Kind {
		case diff.OpEqual:
			for i := 0; i < r.OldLen(); i++ {
				fd.Rows = append(fd.Rows, Row{
					Old: contentCell(r.OldStart+i, CellContext, oldSpans[r.OldStart+i], nil),
					New: contentCell(r.NewStart+i, CellContext, newSpans[r.NewStart+i], nil),
				})
			}
		case diff.OpDelete:
			for i := r.OldStart; i < r.OldEnd; i++ {
				fd.Rows = append(fd.Rows, Row{
					Old: contentCell(i, CellWhole, oldSpans[i], nil),
					New: Cell{Kind: CellEmpty},
				})
			}
		case diff.OpInsert:
			for i := r.NewStart; i < r.NewEnd; i++ {
				fd.Rows = append(fd.Rows, Row{
					Old: Cell{Kind: CellEmpty},
					New: contentCell(i, CellWhole, newSpans[i], nil),
				})
			}
		case diff.OpReplace:
			if r.Pairs == nil {
				// No 1:1 pairing: whole-line deletions, then insertions.
				for i := r.OldStart; i < r.OldEnd; i++ {
					fd.Rows = append(fd.Rows, Row{
						Old: contentCell(i, CellWhole, oldSpans[i], nil),
						New: Cell{Kind: CellEmpty},
					})
				}
				for i := r.NewStart; i < r.NewEnd; i++ {
					fd.Rows = append(fd.Rows, Row{
						Old: Cell{Kind: CellEmpty},
						New: contentCell(i, CellWhole, newSpans[i], nil),
					})
				}
				continue
			}
			for i, pair := range r.Pairs {
				fd.Rows = append(fd.Rows, Row{
					Old: contentCell(r.OldStart+i, CellChange, oldSpans[r.OldStart+i], changedRanges(pair.Spans, true)),
					New: contentCell(r.NewStart+i, CellChange, newSpans[r.NewStart+i], changedRanges(pair.Spans, false)),
				})
			}
		}
	}
	return fd
}

// highlightLines runs the injected highlighter over a line sequence, falling
// back to plain spans when the language is unknown, the highlighter fails,
// or its output does not line up with the source.
func highlightLines(lines []string, language string, hl highlight.Func) [][]highlight.Span {
	text := strings.Join(lines, "\n")
	if len(lines) > 0 {
		text += "\n"
	}
	if language != "" && hl != nil {
		if spans, err := hl(text, language); err == nil && len(spans) == len(lines) {
			return spans
		}
	}
	return highlight.Plain(text)
}

// charRange is a half-open byte range of changed characters within a line.
type charRange struct {
	start, end int
}

// changedRanges extracts the changed byte ranges of one side of a line pair.
func changedRanges(spans []diff.Span, oldSide bool) []charRange {
	var ranges []charRange
	pos := 0
	for _, s := range spans {
		text := s.New
		if oldSide {
			text = s.Old
		}
		if text == "" {
			continue
		}
		if s.Op != diff.OpEqual {
			if n := len(ranges); n > 0 && ranges[n-1].end == pos {
				ranges[n-1].end = pos + len(text)
			} else {
				ranges = append(ranges, charRange{pos, pos + len(text)})
			}
		}
		pos += len(text)
	}
	return ranges
}

// contentCell builds a populated cell, splitting syntax spans at change
// boundaries so each segment has uniform attributes.
func contentCell(index int, kind CellKind, syntax []highlight.Span, changes []charRange) Cell {
	return Cell{
		Number:   index + 1,
		Kind:     kind,
		Segments: mergeSegments(syntax, changes),
	}
}

// mergeSegments overlays changed ranges onto syntax spans. Both partitions
// cover the same line text, so splitting at every boundary of either yields
// segments with a single syntax class and a single changed flag.
func mergeSegments(syntax []highlight.Span, changes []charRange) []Segment {
	var segs []Segment
	pos := 0
	ci := 0
	for _, sp := range syntax {
		text := sp.Text
		for text != "" {
			for ci < len(changes) && changes[ci].end <= pos {
				ci++
			}
			cut := len(text)
			changed := false
			if ci < len(changes) {
				if pos >= changes[ci].start {
					changed = true
					if n := changes[ci].end - pos; n < cut {
						cut = n
					}
				} else if n := changes[ci].start - pos; n < cut {
					cut = n
				}
			}
			segs = append(segs, Segment{Text: text[:cut], Class: sp.Class, Changed: changed})
			pos += cut
			text = text[cut:]
		}
	}
	return segs
}
