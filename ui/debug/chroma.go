package debug

import (
	"bytes"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/miosa/tunes/style"
)

var jsonLexer = sync.OnceValue(func() chroma.Lexer {
	l := lexers.Get("json")
	if l == nil {
		l = lexers.Fallback
	}
	return chroma.Coalesce(l)
})

// chromaStyle follows the light/dark mode of the active theme.
func chromaStyle() *chroma.Style {
	name := "github"
	if style.IsDark() {
		name = "monokai"
	}
	if s := styles.Get(name); s != nil {
		return s
	}
	return styles.Fallback
}

func ttyFormatter() chroma.Formatter {
	if f := formatters.Get("terminal16m"); f != nil {
		return f
	}
	if f := formatters.Get("terminal256"); f != nil {
		return f
	}
	return formatters.Fallback
}

// Highlight colors a JSON document for the terminal. On any error the
// input is returned unchanged.
func Highlight(src string) string {
	if src == "" {
		return src
	}
	it, err := jsonLexer().Tokenise(nil, src)
	if err != nil {
		return src
	}
	var buf bytes.Buffer
	if err := ttyFormatter().Format(&buf, chromaStyle(), it); err != nil {
		return src
	}
	return strings.TrimRight(buf.String(), "\n")
}
