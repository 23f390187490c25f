// Package pipeline provides the core diff pipeline for wsdiff.
//
// This package implements the complete resolve → diff → render pipeline that
// is shared by the CLI and the serve mode. By centralizing this logic, we
// ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Resolve: open the two inputs and pair their files
//  2. Diff: align, classify and sub-align each paired file
//  3. Render: highlight the units and assemble the HTML document
//
// The diff stage runs per-file in parallel; the result is reassembled in
// path order so output bytes never depend on scheduling.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    OldPath: "v1/",
//	    NewPath: "v2/",
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("diff.html", result.HTML, 0644)
package pipeline

import (
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"

	"github.com/wsdiff/wsdiff/pkg/diff"
	"github.com/wsdiff/wsdiff/pkg/errors"
	"github.com/wsdiff/wsdiff/pkg/highlight"
	"github.com/wsdiff/wsdiff/pkg/render"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Serve Mode
// =============================================================================

const (
	// DefaultContextLines is the number of unchanged lines kept visible
	// around each change when folding.
	DefaultContextLines = 5

	// DefaultFoldMin is the minimum number of hidden lines worth folding.
	DefaultFoldMin = 5

	// DefaultTTL is how long cached documents stay valid.
	DefaultTTL = 24 * time.Hour
)

// Mode constants for the output shape.
const (
	ModeDocument = "document"
	ModeHeader   = "header"
	ModeContent  = "content"
)

// ValidModes is the set of supported output modes.
var ValidModes = map[string]bool{
	ModeDocument: true,
	ModeHeader:   true,
	ModeContent:  true,
}

// ValidateMode checks that an output mode is valid.
func ValidateMode(mode string) error {
	if !ValidModes[mode] {
		return errors.New(errors.ErrCodeInvalidFlag,
			"invalid mode: %q (must be one of: document, header, content)", mode)
	}
	return nil
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the diff pipeline.
// This struct supports JSON serialization for serve-mode requests.
type Options struct {
	// Input options
	OldPath string `json:"old_path"`
	NewPath string `json:"new_path"`

	// Diff options
	Lexer   string `json:"lexer,omitempty"`   // force one lexer instead of per-file detection
	Workers int    `json:"workers,omitempty"` // parallel per-file workers
	Refresh bool   `json:"refresh,omitempty"` // bypass the document cache

	// Render options
	Title         string `json:"title,omitempty"`
	Mode          string `json:"mode,omitempty"`
	SyntaxCSS     string `json:"syntax_css,omitempty"` // custom syntax stylesheet, replaces the built-in styles

	ContextLines  int    `json:"context_lines,omitempty"`
	FoldMin       int    `json:"fold_min,omitempty"`
	HideFilenames bool   `json:"hide_filenames,omitempty"`
	Overview      bool   `json:"overview,omitempty"`

	// TTL is how long the rendered document stays cached.
	TTL time.Duration `json:"ttl,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// Progress, when set, is called after each file finishes the diff
	// stage. It may be called from multiple goroutines.
	Progress func(completed, total int) `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.OldPath == "" || o.NewPath == "" {
		return errors.New(errors.ErrCodeInvalidInput, "two input paths are required")
	}
	if o.Lexer != "" && !highlight.KnownLexer(o.Lexer) {
		return errors.New(errors.ErrCodeInvalidFlag, "unknown lexer %q", o.Lexer)
	}
	if o.Mode == "" {
		o.Mode = ModeDocument
	}
	if err := ValidateMode(o.Mode); err != nil {
		return err
	}
	if o.ContextLines <= 0 {
		o.ContextLines = DefaultContextLines
	}
	if o.FoldMin <= 0 {
		o.FoldMin = DefaultFoldMin
	}
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
	if o.TTL <= 0 {
		o.TTL = DefaultTTL
	}
	if o.Title == "" {
		o.Title = fmt.Sprintf("%s vs. %s", o.OldPath, o.NewPath)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// =============================================================================
// Result - Pipeline Outputs
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// Units are the per-file diff results in path order.
	// Empty when the document came from cache.
	Units []diff.Unit

	// Document is the render model the artifact was assembled from.
	// Nil when the document came from cache.
	Document *render.Document

	// HTML is the assembled artifact in the requested mode.
	HTML []byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks whether the document came from cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	FileCount    int
	ChangedCount int
	SkippedCount int
	ResolveTime  time.Duration
	DiffTime     time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks the document cache interaction of a run.
type CacheInfo struct {
	// Key is the document cache key, empty when hashing the inputs failed.
	Key string

	// DocumentHit is true when the artifact came straight from cache.
	DocumentHit bool
}
