package highlight

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Default chroma styles: xcode for light surfaces and print, witchhazel for
// dark. Both ship with chroma.
const (
	defaultLightStyle = "xcode"
	defaultDarkStyle  = "witchhazel"
)

// StyleSheet renders the default syntax stylesheet: the light style wrapped
// in a print/light media query and the dark style in a dark one, matching
// the document's own palette switching.
func StyleSheet() (string, error) {
	light, err := styleCSS(defaultLightStyle)
	if err != nil {
		return "", err
	}
	dark, err := styleCSS(defaultDarkStyle)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("@media print, (prefers-color-scheme: light) {\n")
	b.WriteString(light)
	b.WriteString("}\n\n@media (prefers-color-scheme: dark) {\n")
	b.WriteString(dark)
	b.WriteString("}\n")
	return b.String(), nil
}

func styleCSS(name string) (string, error) {
	style := styles.Get(name)
	if style == nil {
		return "", fmt.Errorf("style %q not registered", name)
	}
	f := html.New(html.WithClasses(true), html.ClassPrefix(ClassPrefix))
	var b strings.Builder
	if err := f.WriteCSS(&b, style); err != nil {
		return "", fmt.Errorf("render css for %q: %w", name, err)
	}
	return b.String(), nil
}

// DetectLexer guesses a lexer for a file: by filename first, then by
// content. Returns the lexer's canonical name, or "" when nothing matches
// and the caller should render plain spans.
func DetectLexer(filename, text string) string {
	if lexer := lexers.Match(filename); lexer != nil {
		return lexer.Config().Name
	}
	if lexer := lexers.Analyse(text); lexer != nil {
		return lexer.Config().Name
	}
	return ""
}

// KnownLexer reports whether name resolves to a registered lexer, by
// canonical name or alias. Used to validate the --lexer flag up front.
func KnownLexer(name string) bool {
	return lexers.Get(name) != nil
}

// Lexer describes one available lexer for CLI listing.
type Lexer struct {
	Name      string
	Aliases   []string
	Filenames []string
}

// Lexers returns all registered lexers sorted by name.
func Lexers() []Lexer {
	var out []Lexer
	for _, name := range lexers.GlobalLexerRegistry.Names(false) {
		lexer := lexers.Get(name)
		if lexer == nil {
			continue
		}
		cfg := lexer.Config()
		out = append(out, Lexer{Name: cfg.Name, Aliases: cfg.Aliases, Filenames: cfg.Filenames})
	}
	return out
}
