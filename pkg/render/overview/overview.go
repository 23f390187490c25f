// Package overview renders a compact change map for directory diffs: a
// node-link diagram of the compared tree with each file colored by its
// status. The result is an inline SVG fragment embedded at the top of the
// document.
package overview

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"path"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/wsdiff/wsdiff/pkg/diff"
	"github.com/wsdiff/wsdiff/pkg/errors"
)

// Render builds the change map for units and renders it to an inline SVG
// fragment. Returns an empty string when there is nothing to draw.
func Render(ctx context.Context, units []diff.Unit) (string, error) {
	if len(units) == 0 {
		return "", nil
	}
	return RenderSVG(ctx, ToDOT(units))
}

func fillColor(s diff.Status) string {
	switch s {
	case diff.StatusAdded:
		return "#c7f0d2"
	case diff.StatusRemoved:
		return "#fac5cd"
	case diff.StatusModified:
		return "#fdf0c2"
	case diff.StatusSkipped:
		return "#d0d0d0"
	default:
		return "#ffffff"
	}
}

// ToDOT lays the compared tree out as Graphviz DOT. Directories become
// ellipses, files become boxes filled with their status color. Output is
// deterministic for a given unit list.
func ToDOT(units []diff.Unit) string {
	dirs := map[string]bool{}
	type fileNode struct {
		parent string
		status diff.Status
	}
	files := map[string]fileNode{}

	for _, u := range units {
		parent := ""
		for d := path.Dir(u.Path); d != "." && d != "/" && d != ""; d = path.Dir(d) {
			dirs[d] = true
		}
		if d := path.Dir(u.Path); d != "." && d != "/" && d != "" {
			parent = d
		}
		files[u.Path] = fileNode{parent: parent, status: u.Status}
	}

	var buf bytes.Buffer
	buf.WriteString("digraph changes {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12, fontname=\"monospace\", margin=\"0.15,0.08\"];\n")
	buf.WriteString("  edge [arrowhead=none];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.2;\n\n")

	for _, d := range slices.Sorted(maps.Keys(dirs)) {
		fmt.Fprintf(&buf, "  %q [label=%q, shape=ellipse, fillcolor=\"#f0f0f0\"];\n", d, path.Base(d))
	}
	for _, p := range slices.Sorted(maps.Keys(files)) {
		fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=%q];\n", p, path.Base(p), fillColor(files[p].status))
	}

	buf.WriteString("\n")
	for _, d := range slices.Sorted(maps.Keys(dirs)) {
		if parent := path.Dir(d); dirs[parent] {
			fmt.Fprintf(&buf, "  %q -> %q;\n", parent, d)
		}
	}
	for _, p := range slices.Sorted(maps.Keys(files)) {
		if parent := files[p].parent; parent != "" {
			fmt.Fprintf(&buf, "  %q -> %q;\n", parent, p)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to an inline SVG fragment using Graphviz.
func RenderSVG(ctx context.Context, dot string) (string, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "render SVG")
	}
	return string(inlineFragment(normalizeViewBox(buf.Bytes()))), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// inlineFragment drops the XML prolog and DOCTYPE so the SVG can be embedded
// directly in an HTML body.
func inlineFragment(svg []byte) []byte {
	if i := strings.Index(string(svg), "<svg"); i > 0 {
		return svg[i:]
	}
	return svg
}
