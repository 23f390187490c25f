// Package highlight wraps the chroma syntax highlighter behind the small
// surface the render model needs: text in, per-line classified spans out.
//
// The package never fails a whole run. An unknown language is reported as a
// HIGHLIGHT_FAILED error and the caller falls back to [Plain] spans for that
// unit only. Token streams that do not reconstruct their source line exactly
// are likewise replaced by plain spans, so the render model's reconstruction
// invariant never depends on lexer behavior.
package highlight

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/wsdiff/wsdiff/pkg/errors"
)

// ClassPrefix is prepended to every generated CSS class, both in markup and
// in the generated stylesheets.
const ClassPrefix = "wsd-"

// Span is one syntax-classified fragment of a line. Class is the full CSS
// class including [ClassPrefix]. Concatenating the Text fields of a line's
// spans reproduces the line exactly.
type Span struct {
	Text  string
	Class string
}

// Func is the highlighting collaborator injected into the render model:
// text plus a lexer name in, one span slice per line out.
type Func func(text, lexer string) ([][]Span, error)

// Highlight tokenizes text with the named lexer and splits the token stream
// into lines. The returned slice has exactly one entry per line of
// diff.SplitLines(text); empty lines get empty span slices.
func Highlight(text, lexerName string) ([][]Span, error) {
	lexer := lexers.Get(lexerName)
	if lexer == nil {
		return nil, errors.New(errors.ErrCodeHighlightFailed, "no lexer named %q", lexerName)
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, text)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeHighlightFailed, err, "tokenize with %q", lexerName)
	}

	lines := splitTokenLines(it)

	// Some lexers pad or trim trailing newlines; reconcile against the
	// authoritative line split and fall back per line when a token stream
	// does not reproduce its source.
	want := splitLines(text)
	if len(lines) > len(want) {
		lines = lines[:len(want)]
	}
	for len(lines) < len(want) {
		lines = append(lines, nil)
	}
	for i, spans := range lines {
		var joined strings.Builder
		for _, s := range spans {
			joined.WriteString(s.Text)
		}
		if joined.String() != want[i] {
			lines[i] = plainLine(want[i])
		}
	}
	return lines, nil
}

// Plain returns unhighlighted spans for text: one neutral span per line.
// Used when no lexer applies or highlighting failed for a unit.
func Plain(text string) [][]Span {
	src := splitLines(text)
	lines := make([][]Span, len(src))
	for i, l := range src {
		lines[i] = plainLine(l)
	}
	return lines
}

func plainLine(line string) []Span {
	if line == "" {
		return nil
	}
	return []Span{{Text: line, Class: ClassPrefix + "n"}}
}

// splitTokenLines partitions a token stream at newline boundaries.
func splitTokenLines(it chroma.Iterator) [][]Span {
	lines := [][]Span{nil}
	for tok := it(); tok != chroma.EOF; tok = it() {
		cls := classFor(tok.Type)
		value := tok.Value
		for {
			head, rest, found := strings.Cut(value, "\n")
			if head != "" {
				cur := len(lines) - 1
				lines[cur] = append(lines[cur], Span{Text: head, Class: cls})
			}
			if !found {
				break
			}
			lines = append(lines, nil)
			value = rest
		}
	}
	// The trailing entry only counts if the text did not end in a newline;
	// an empty tail is the artifact of that final newline.
	if len(lines) > 0 && lines[len(lines)-1] == nil {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// classFor maps a token type to its short CSS class, walking up the type
// hierarchy the way pygments-compatible formatters do.
func classFor(t chroma.TokenType) string {
	for t != 0 {
		if name, ok := chroma.StandardTypes[t]; ok && name != "" {
			return ClassPrefix + name
		}
		t = t.Parent()
	}
	return ClassPrefix + "n"
}

// splitLines mirrors diff.SplitLines; duplicated here to keep the package
// free of a dependency on the diff model.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
