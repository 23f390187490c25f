package cli

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/wsdiff/wsdiff/pkg/errors"
	"github.com/wsdiff/wsdiff/pkg/pipeline"
)

// diffOpts holds the command-line flags for the root diff command.
type diffOpts struct {
	output      string // output file path, empty for stdout
	open        bool   // open the result in a browser
	syntaxCSS   string // path to a custom syntax stylesheet
	lexer       string // forced lexer name
	title       string // page title override
	headerOnly  bool   // emit only the document shell
	contentOnly bool   // emit only the body fragment
	overview    bool   // embed a change-map SVG for directory diffs
	context     int    // unchanged lines kept visible around changes
	foldMin     int    // minimum hidden lines worth folding
	noFilenames bool   // drop per-file title bars
	workers     int    // parallel per-file workers
	noCache     bool   // disable the document cache
	refresh     bool   // bypass cached documents, re-render
}

// diffCommand creates the root command: compare two inputs and write HTML.
func (c *CLI) diffCommand() *cobra.Command {
	cfg := c.Config
	opts := diffOpts{}

	cmd := &cobra.Command{
		Use:   "wsdiff [flags] <old> <new>",
		Short: "Render the differences between two files or directories as HTML",
		Long: `Given two source files or directories, wsdiff writes one self-contained
HTML page that highlights the differences between the two. The page needs no
scripts or external resources: layout switching between side-by-side and
inline is plain CSS, and so is the folding of long unchanged runs.

Both inputs must be of the same kind: two files, or two directory trees.
Directory trees are compared file by file over the union of their paths.

Results are cached locally, keyed by input content and rendering options.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDiff(cmd.Context(), args[0], args[1], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVarP(&opts.open, "open", "b", false, "open the output file in a browser")
	cmd.Flags().StringVarP(&opts.syntaxCSS, "syntax-css", "s", "", "path to a custom syntax highlighting stylesheet")
	cmd.Flags().StringVarP(&opts.lexer, "lexer", "l", cfg.Lexer, "force one lexer instead of guessing per file (see 'wsdiff lexers')")
	cmd.Flags().StringVarP(&opts.title, "title", "t", "", "page title of the output document")
	cmd.Flags().BoolVar(&opts.headerOnly, "header", false, "emit only the HTML header with stylesheets, and no diff")
	cmd.Flags().BoolVar(&opts.contentOnly, "content", false, "emit only the HTML content, without header")
	cmd.Flags().BoolVar(&opts.overview, "overview", false, "embed a change-map graphic for directory diffs")
	cmd.Flags().IntVar(&opts.context, "context", orInt(cfg.Context, pipeline.DefaultContextLines), "lines to always show around changes without folding")
	cmd.Flags().IntVar(&opts.foldMin, "fold-min", orInt(cfg.FoldMin, pipeline.DefaultFoldMin), "minimum number of unchanged lines beyond which to fold")
	cmd.Flags().BoolVar(&opts.noFilenames, "no-filenames", cfg.NoFilenames, "do not output file name headers")
	cmd.Flags().IntVar(&opts.workers, "workers", cfg.Workers, "parallel file workers (default: number of CPUs)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", cfg.NoCache, "disable the document cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when a cached document exists")

	return cmd
}

// runDiff executes the pipeline and writes the artifact.
func (c *CLI) runDiff(ctx context.Context, oldPath, newPath string, opts *diffOpts) error {
	if opts.headerOnly && opts.contentOnly {
		return errors.New(errors.ErrCodeInvalidFlag, "--header and --content are mutually exclusive")
	}
	if opts.open && (opts.output == "" || opts.output == "-") {
		return errors.New(errors.ErrCodeInvalidFlag, "--open requires --output")
	}
	mode := pipeline.ModeDocument
	if opts.headerOnly {
		mode = pipeline.ModeHeader
	}
	if opts.contentOnly {
		mode = pipeline.ModeContent
	}

	var syntaxCSS string
	if opts.syntaxCSS != "" {
		data, err := os.ReadFile(opts.syntaxCSS)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidFlag, err, "cannot read syntax stylesheet %q", opts.syntaxCSS)
		}
		syntaxCSS = string(data)
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Cache.Close()

	popts := pipeline.Options{
		OldPath:       oldPath,
		NewPath:       newPath,
		Lexer:         opts.lexer,
		Workers:       opts.workers,
		Refresh:       opts.refresh,
		Title:         opts.title,
		Mode:          mode,
		SyntaxCSS:     syntaxCSS,
		ContextLines:  opts.context,
		FoldMin:       opts.foldMin,
		HideFilenames: opts.noFilenames,
		Overview:      opts.overview,
		Logger:        c.Logger,
	}

	// Progress goes to stderr: a counting TUI when writing to a file, a
	// plain spinner when the document streams to stdout.
	var progress *diffProgress
	var spin *Spinner
	if isTerminal(os.Stderr) {
		if opts.output != "" {
			progress = newDiffProgress(fmt.Sprintf("Comparing %s and %s...", oldPath, newPath))
			progress.Start()
			popts.Progress = progress.Report
		} else {
			spin = newSpinnerWithContext(ctx, fmt.Sprintf("Comparing %s and %s...", oldPath, newPath))
			spin.Start()
		}
	}

	prog := newProgress(c.Logger)
	result, err := runner.Execute(ctx, popts)
	if progress != nil {
		progress.Stop()
	}
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Compared %d files", result.Stats.FileCount))

	path, err := writeArtifact(result.HTML, opts.output)
	if err != nil {
		return err
	}

	if opts.output != "" && isTerminal(os.Stderr) {
		printSuccess("Diff rendered")
		printStats(result.Stats.FileCount, result.Stats.ChangedCount,
			result.Stats.SkippedCount, result.CacheInfo.DocumentHit)
		printFile(path)
	}

	if opts.open {
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		if err := openBrowser(abs); err != nil {
			c.Logger.Warn("cannot open browser", "err", err)
		}
	}

	return nil
}

// writeArtifact writes data to output, or stdout when output is empty or "-".
// Returns the file path written, "" for stdout.
func writeArtifact(data []byte, output string) (string, error) {
	if output == "" || output == "-" {
		_, err := os.Stdout.Write(data)
		return "", err
	}
	if err := os.WriteFile(output, data, 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", output, err)
	}
	return output, nil
}

// openBrowser opens path with the platform's default browser.
func openBrowser(path string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", path).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", path).Start()
	default:
		return exec.Command("xdg-open", path).Start()
	}
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// orInt returns v unless it is zero, then fallback.
func orInt(v, fallback int) int {
	if v != 0 {
		return v
	}
	return fallback
}
