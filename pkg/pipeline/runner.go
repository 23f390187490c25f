package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/wsdiff/wsdiff/pkg/cache"
	"github.com/wsdiff/wsdiff/pkg/diff"
	"github.com/wsdiff/wsdiff/pkg/highlight"
	"github.com/wsdiff/wsdiff/pkg/observability"
	"github.com/wsdiff/wsdiff/pkg/render"
	"github.com/wsdiff/wsdiff/pkg/render/html"
	"github.com/wsdiff/wsdiff/pkg/render/overview"
	"github.com/wsdiff/wsdiff/pkg/source"
	"github.com/wsdiff/wsdiff/pkg/tree"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and serve mode use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete resolve → diff → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}
	hooks := observability.Pipeline()

	// Stage 1: Resolve
	resolveStart := time.Now()
	hooks.OnResolveStart(ctx, opts.OldPath, opts.NewPath)
	pairing, err := r.resolve(opts)
	result.Stats.ResolveTime = time.Since(resolveStart)
	if err != nil {
		hooks.OnResolveComplete(ctx, 0, result.Stats.ResolveTime, err)
		return nil, err
	}
	result.Stats.FileCount = len(pairing.Paths)
	hooks.OnResolveComplete(ctx, result.Stats.FileCount, result.Stats.ResolveTime, nil)

	opts.Logger.Info("resolved inputs",
		"files", result.Stats.FileCount,
		"duration", result.Stats.ResolveTime)

	// Try the document cache before doing any diff work.
	key := r.documentKey(pairing, opts)
	result.CacheInfo.Key = key
	if key != "" && !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "doc")
			opts.Logger.Info("document cache hit", "bytes", len(data))
			result.HTML = data
			result.CacheInfo.DocumentHit = true
			return result, nil
		}
		observability.Cache().OnCacheMiss(ctx, "doc")
	}

	// Stage 2: Diff
	diffStart := time.Now()
	hooks.OnDiffStart(ctx, result.Stats.FileCount)
	units, err := r.diffAll(ctx, pairing, opts)
	result.Stats.DiffTime = time.Since(diffStart)
	if err != nil {
		hooks.OnDiffComplete(ctx, 0, result.Stats.DiffTime, err)
		return nil, err
	}
	result.Units = units
	for i := range units {
		switch {
		case units[i].Status == diff.StatusSkipped:
			result.Stats.SkippedCount++
		case units[i].Changed():
			result.Stats.ChangedCount++
		}
	}
	hooks.OnDiffComplete(ctx, result.Stats.ChangedCount, result.Stats.DiffTime, nil)

	opts.Logger.Info("computed diffs",
		"changed", result.Stats.ChangedCount,
		"skipped", result.Stats.SkippedCount,
		"duration", result.Stats.DiffTime)

	// Stage 3: Render
	renderStart := time.Now()
	hooks.OnRenderStart(ctx, opts.Mode)
	doc, artifact, err := r.render(ctx, units, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	if err != nil {
		hooks.OnRenderComplete(ctx, opts.Mode, 0, result.Stats.RenderTime, err)
		return nil, err
	}
	result.Document = doc
	result.HTML = artifact
	hooks.OnRenderComplete(ctx, opts.Mode, len(artifact), result.Stats.RenderTime, nil)

	opts.Logger.Info("rendered document",
		"mode", opts.Mode,
		"bytes", len(artifact),
		"duration", result.Stats.RenderTime)

	if key != "" {
		if err := r.Cache.Set(ctx, key, artifact, opts.TTL); err != nil {
			// Cache trouble never fails the run.
			opts.Logger.Warn("cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "doc", len(artifact))
		}
	}

	return result, nil
}

// resolve opens both inputs and pairs their files.
func (r *Runner) resolve(opts Options) (*tree.Pairing, error) {
	oldTree, err := source.Open(opts.OldPath)
	if err != nil {
		return nil, err
	}
	newTree, err := source.Open(opts.NewPath)
	if err != nil {
		return nil, err
	}
	return tree.List(oldTree, newTree)
}

// documentKey derives the cache key from the content hashes of both sides
// and every option that changes the output bytes. Returns "" when hashing
// fails; the run proceeds uncached.
func (r *Runner) documentKey(pairing *tree.Pairing, opts Options) string {
	oldHash, err := pairing.Old.Hash()
	if err != nil {
		opts.Logger.Debug("cannot hash old input, caching disabled", "err", err)
		return ""
	}
	newHash, err := pairing.New.Hash()
	if err != nil {
		opts.Logger.Debug("cannot hash new input, caching disabled", "err", err)
		return ""
	}
	return r.Keyer.DocumentKey(oldHash, newHash, cache.DocumentKeyOpts{
		Lexer:         opts.Lexer,
		Title:         opts.Title,
		Mode:          opts.Mode,
		SyntaxCSS:     cache.Hash([]byte(opts.SyntaxCSS)),
		ContextLines:  opts.ContextLines,
		FoldMin:       opts.FoldMin,
		HideFilenames: opts.HideFilenames,
		Overview:      opts.Overview,
	})
}

// diffAll builds the diff units, fanning out per file. Results land in a
// slice indexed by pairing order, so the output is deterministic no matter
// how the workers are scheduled.
func (r *Runner) diffAll(ctx context.Context, pairing *tree.Pairing, opts Options) ([]diff.Unit, error) {
	units := make([]diff.Unit, len(pairing.Paths))
	total := len(pairing.Paths)
	var completed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i, pp := range pairing.Paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			u, err := pairing.Build(pp)
			if err != nil {
				return fmt.Errorf("%s: %w", pp.Path, err)
			}
			if opts.Lexer != "" {
				u.Language = opts.Lexer
			}
			units[i] = u
			if opts.Progress != nil {
				opts.Progress(int(completed.Add(1)), total)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return units, nil
}

// render highlights the units, builds the render model and assembles the
// artifact for the requested mode.
func (r *Runner) render(ctx context.Context, units []diff.Unit, opts Options) (*render.Document, []byte, error) {
	syntaxCSS := opts.SyntaxCSS
	if syntaxCSS == "" {
		var err error
		syntaxCSS, err = highlight.StyleSheet()
		if err != nil {
			return nil, nil, err
		}
	}

	doc := render.Build(units, opts.Title, highlight.Highlight)
	doc.SyntaxCSS = syntaxCSS

	if opts.Overview {
		svg, err := overview.Render(ctx, units)
		if err != nil {
			// The overview is decoration; a graphviz failure never
			// fails the run.
			opts.Logger.Warn("overview rendering failed", "err", err)
		} else {
			doc.OverviewSVG = svg
		}
	}

	asm := html.New(html.Options{
		ContextLines:  opts.ContextLines,
		FoldMin:       opts.FoldMin,
		HideFilenames: opts.HideFilenames,
	})

	var buf bytes.Buffer
	var err error
	switch opts.Mode {
	case ModeHeader:
		err = asm.Header(&buf, &doc)
	case ModeContent:
		err = asm.Content(&buf, &doc)
	default:
		err = asm.Document(&buf, &doc)
	}
	if err != nil {
		return nil, nil, err
	}
	return &doc, buf.Bytes(), nil
}
