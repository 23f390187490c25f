// Package html turns a render.Document into the final self-contained HTML
// artifact. The document can be emitted whole, or as separate header and
// content fragments for callers that splice diffs into their own pages;
// substituting the content fragment for the body slot in the header fragment
// reproduces the whole document byte for byte.
package html

import (
	"fmt"
	stdhtml "html"
	"io"
	"strings"

	"github.com/wsdiff/wsdiff/pkg/diff"
	"github.com/wsdiff/wsdiff/pkg/render"
)

// BodySlot is the placeholder left in a header fragment where the content
// fragment belongs.
const BodySlot = "$body"

const (
	DefaultContextLines = 5
	DefaultFoldMin      = 5
)

// Options controls how the document body is laid out.
type Options struct {
	// ContextLines is the number of unchanged lines kept visible around
	// each change when folding.
	ContextLines int

	// FoldMin is the minimum number of hidden lines worth folding. Runs
	// shorter than this stay expanded.
	FoldMin int

	// HideFilenames drops the per-file title bars.
	HideFilenames bool
}

type Assembler struct {
	opts Options
}

func New(opts Options) *Assembler {
	if opts.ContextLines <= 0 {
		opts.ContextLines = DefaultContextLines
	}
	if opts.FoldMin <= 0 {
		opts.FoldMin = DefaultFoldMin
	}
	return &Assembler{opts: opts}
}

// Document writes the complete artifact.
func (a *Assembler) Document(w io.Writer, doc *render.Document) error {
	page := strings.Replace(a.header(doc), BodySlot, a.content(doc), 1)
	_, err := io.WriteString(w, page)
	return err
}

// Header writes the document shell with the body slot left in place.
func (a *Assembler) Header(w io.Writer, doc *render.Document) error {
	_, err := io.WriteString(w, a.header(doc))
	return err
}

// Content writes only the body fragment.
func (a *Assembler) Content(w io.Writer, doc *render.Document) error {
	_, err := io.WriteString(w, a.content(doc))
	return err
}

func (a *Assembler) header(doc *render.Document) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	b.WriteString("<meta charset=\"UTF-8\">\n")
	b.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	b.WriteString("<title>")
	b.WriteString(stdhtml.EscapeString(doc.Title))
	b.WriteString("</title>\n<style>\n")
	b.WriteString(layoutCSS)
	b.WriteString("\n</style>\n<style>\n")
	b.WriteString(doc.SyntaxCSS)
	b.WriteString("\n</style>\n</head>\n<body>\n")
	b.WriteString("<div class=\"wsd-diff-files\">\n")
	b.WriteString(BodySlot)
	b.WriteString("\n</div>\n</body>\n</html>\n")
	return b.String()
}

func (a *Assembler) content(doc *render.Document) string {
	var b strings.Builder
	if doc.OverviewSVG != "" {
		b.WriteString("<div class=\"wsd-overview\">\n")
		b.WriteString(doc.OverviewSVG)
		b.WriteString("\n</div>\n")
	}
	for i := range doc.Files {
		a.writeFile(&b, &doc.Files[i])
	}
	return b.String()
}

func (a *Assembler) writeFile(b *strings.Builder, f *render.FileDiff) {
	b.WriteString("<div class=\"wsd-file-container\">\n")
	if !a.opts.HideFilenames {
		// The LRO mark keeps the rtl ellipsis trick from mirroring the
		// path text itself.
		b.WriteString("<div class=\"wsd-file-title\"><div class=\"wsd-filename\">&#x202D;")
		b.WriteString(stdhtml.EscapeString(f.Path))
		b.WriteString("</div>")
		if note := statusNote(f.Status); note != "" {
			b.WriteString("<div class=\"wsd-file-status\">")
			b.WriteString(note)
			b.WriteString("</div>")
		}
		b.WriteString("</div>\n")
	}
	if f.Status == diff.StatusSkipped {
		b.WriteString("<div class=\"wsd-skipped-note\">binary contents not shown</div>\n")
		b.WriteString("</div>\n")
		return
	}
	b.WriteString("<div class=\"wsd-diff\">\n")
	a.writeRows(b, f.Rows)
	b.WriteString("</div>\n</div>\n")
}

func statusNote(s diff.Status) string {
	switch s {
	case diff.StatusAdded:
		return "added"
	case diff.StatusRemoved:
		return "removed"
	case diff.StatusSkipped:
		return "binary"
	default:
		return ""
	}
}

// writeRows emits the grid cells, folding long runs of unchanged rows behind
// a checkbox. Context rows adjacent to a change stay visible; runs touching
// the start or end of the file fold right up to the edge.
func (a *Assembler) writeRows(b *strings.Builder, rows []render.Row) {
	i := 0
	for i < len(rows) {
		if !isContext(rows[i]) {
			writeRow(b, &rows[i])
			i++
			continue
		}
		j := i
		for j < len(rows) && isContext(rows[j]) {
			j++
		}
		run := rows[i:j]
		lead, trail := a.opts.ContextLines, a.opts.ContextLines
		if i == 0 {
			lead = 0
		}
		if j == len(rows) {
			trail = 0
		}
		hidden := len(run) - lead - trail
		if hidden < a.opts.FoldMin {
			for k := range run {
				writeRow(b, &run[k])
			}
		} else {
			for k := 0; k < lead; k++ {
				writeRow(b, &run[k])
			}
			fmt.Fprintf(b, "<div class=\"wsd-collapse\"><div class=\"wsd-collapse-controls\"><label><input type=\"checkbox\" checked> %d unchanged lines</label></div>\n", hidden)
			for k := lead; k < len(run)-trail; k++ {
				writeRow(b, &run[k])
			}
			b.WriteString("</div>\n")
			for k := len(run) - trail; k < len(run); k++ {
				writeRow(b, &run[k])
			}
		}
		i = j
	}
}

func isContext(r render.Row) bool {
	return r.Old.Kind == render.CellContext && r.New.Kind == render.CellContext
}

func writeRow(b *strings.Builder, r *render.Row) {
	writeCell(b, &r.Old, "wsd-left")
	writeCell(b, &r.New, "wsd-right")
	b.WriteByte('\n')
}

func writeCell(b *strings.Builder, c *render.Cell, side string) {
	cls := side
	if c.Kind != render.CellContext {
		cls += " wsd-" + string(c.Kind)
	}
	if c.Kind == render.CellEmpty {
		b.WriteString("<span class=\"wsd-lineno ")
		b.WriteString(cls)
		b.WriteString("\"></span><span class=\"wsd-line ")
		b.WriteString(cls)
		b.WriteString("\"></span>")
		return
	}
	fmt.Fprintf(b, "<span class=\"wsd-lineno %s\">%d</span>", cls, c.Number)
	b.WriteString("<span class=\"wsd-line ")
	b.WriteString(cls)
	b.WriteString("\">")
	for _, s := range c.Segments {
		b.WriteString("<span class=\"")
		b.WriteString(s.Class)
		if s.Changed {
			b.WriteString(" wsd-word-change")
		}
		b.WriteString("\">")
		b.WriteString(stdhtml.EscapeString(s.Text))
		b.WriteString("</span>")
	}
	b.WriteString("</span>")
}
