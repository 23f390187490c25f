// Package pkg provides the core libraries for wsdiff structural diff rendering.
//
// # Overview
//
// wsdiff compares two text sources, two files or two directory trees, and
// renders the result as one self-contained HTML document. The document needs
// no JavaScript: switching between side-by-side and inline layout, and the
// folding of long unchanged runs, are both pure CSS. The pkg directory is
// organized into a handful of focused areas:
//
//  1. [source], [tree] - Input loading and file pairing
//  2. [diff] - Line alignment and change classification
//  3. [highlight], [render] - Syntax highlighting and HTML assembly
//  4. [pipeline] - Orchestration (resolve → diff → render)
//  5. [cache], [store] - Result caching and serve-mode persistence
//
// # Architecture
//
// The typical data flow through wsdiff:
//
//	Files / Directory Trees
//	         ↓
//	    [source] package (load, decode, detect binaries)
//	         ↓
//	    [tree] package (pair files across both sides)
//	         ↓
//	    [diff] package (align lines, classify changes)
//	         ↓
//	    [render] package (highlight + assemble HTML)
//	         ↓
//	    Self-contained HTML document
//
// # Quick Start
//
// Render a diff between two directories:
//
//	import (
//	    "context"
//	    "os"
//	    "github.com/wsdiff/wsdiff/pkg/cache"
//	    "github.com/wsdiff/wsdiff/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, nil)
//	result, err := runner.Execute(context.Background(), pipeline.Options{
//	    OldPath: "v1/",
//	    NewPath: "v2/",
//	})
//	if err != nil {
//	    panic(err)
//	}
//	os.WriteFile("diff.html", result.HTML, 0644)
//
// # Main Packages
//
// ## Core Domain Logic
//
// [source] - Input trees. Loads a single file or a directory recursively,
// decodes text, and flags binary files so they are skipped rather than
// rendered.
//
// [tree] - Pairing. Builds the union of file paths across both sides and
// pairs each path's old and new content, tracking added and removed files.
//
// [diff] - The diff engine. Myers line alignment, classification into
// equal/inserted/deleted/replaced regions, and character-level sub-alignment
// within replaced regions.
//
// [highlight] - Syntax highlighting via Chroma, emitting CSS classes rather
// than inline styles so one stylesheet covers the whole document.
//
// ## Rendering
//
// [render] - The document model: rows, cells, and spans shared by all
// output shapes.
//
// [render/html] - HTML assembly. Produces the complete document, or the
// header and content fragments that recombine into it byte for byte.
//
// [render/overview] - Optional change-map graphic for directory diffs,
// rendered through Graphviz and inlined as SVG.
//
// ## Infrastructure
//
// [pipeline] - Complete diff pipeline (resolve → diff → render) shared by
// the CLI and serve mode. Ensures consistent behavior across entry points.
//
// [cache] - Rendered-document caching keyed by input content and rendering
// options. File-backed for the CLI, Redis-backed for serve mode.
//
// [store] - Serve-mode document persistence with memory and MongoDB
// backends.
//
// [errors] - Coded errors shared across the module.
//
// [observability] - Hook points for metrics and tracing integrations.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/diff/...     # Specific package
//	go test -run Example       # Examples only
//
// [source]: https://pkg.go.dev/github.com/wsdiff/wsdiff/pkg/source
// [tree]: https://pkg.go.dev/github.com/wsdiff/wsdiff/pkg/tree
// [diff]: https://pkg.go.dev/github.com/wsdiff/wsdiff/pkg/diff
// [highlight]: https://pkg.go.dev/github.com/wsdiff/wsdiff/pkg/highlight
// [render]: https://pkg.go.dev/github.com/wsdiff/wsdiff/pkg/render
// [render/html]: https://pkg.go.dev/github.com/wsdiff/wsdiff/pkg/render/html
// [render/overview]: https://pkg.go.dev/github.com/wsdiff/wsdiff/pkg/render/overview
// [pipeline]: https://pkg.go.dev/github.com/wsdiff/wsdiff/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/wsdiff/wsdiff/pkg/cache
// [store]: https://pkg.go.dev/github.com/wsdiff/wsdiff/pkg/store
// [errors]: https://pkg.go.dev/github.com/wsdiff/wsdiff/pkg/errors
// [observability]: https://pkg.go.dev/github.com/wsdiff/wsdiff/pkg/observability
package pkg
