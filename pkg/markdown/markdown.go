package markdown

import (
	"bytes"
	"io"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const defaultHighlightStyle = "dracula"

type Renderer struct {
	md goldmark.Markdown
}

func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				highlighting.NewHighlighting(
					highlighting.WithStyle(defaultHighlightStyle),
					highlighting.WithFormatOptions(
						chromahtml.TabWidth(4),
						chromahtml.WithLineNumbers(false),
					),
				),
			),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
	}
}

// HTML renders a markdown body. Raw HTML in the source is omitted.
func (r *Renderer) HTML(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(src, &buf); err != nil {
		return nil, errors.Wrap(err, "failed to render markdown")
	}

	return buf.Bytes(), nil
}

// Text renders the body and returns only the visible text, whitespace-collapsed.
func (r *Renderer) Text(src []byte) (string, error) {
	rendered, err := r.HTML(src)
	if err != nil {
		return "", err
	}

	return ExtractText(bytes.NewReader(rendered))
}

// ExtractText returns the text content of an HTML fragment, skipping script and style elements.
func ExtractText(r io.Reader) (string, error) {
	tokenizer := html.NewTokenizer(r)
	words := make([]string, 0)
	skipDepth := 0

	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			if err := tokenizer.Err(); err != nil && !errors.Is(err, io.EOF) {
				return "", errors.Wrap(err, "failed to tokenize html")
			}

			return strings.Join(words, " "), nil

		case html.StartTagToken:
			if isHiddenElement(tokenizer) {
				skipDepth++
			}

		case html.EndTagToken:
			if skipDepth > 0 && isHiddenElement(tokenizer) {
				skipDepth--
			}

		case html.TextToken:
			if skipDepth > 0 {
				continue
			}

			words = append(words, strings.Fields(string(tokenizer.Text()))...)
		}
	}
}

func isHiddenElement(tokenizer *html.Tokenizer) bool {
	name, _ := tokenizer.TagName()
	switch atom.Lookup(name) {
	case atom.Script, atom.Style:
		return true
	default:
		return false
	}
}

// StripMDXStatements removes top-level import and export statements from an MDX body so that
// only prose reaches the renderer.
func StripMDXStatements(src []byte) []byte {
	lines := bytes.Split(src, []byte("\n"))
	out := make([][]byte, 0, len(lines))
	inFence := false
	for _, line := range lines {
		trimmed := bytes.TrimSpace(line)
		if bytes.HasPrefix(trimmed, []byte("```")) {
			inFence = !inFence
		}

		if !inFence && (bytes.HasPrefix(line, []byte("import ")) || bytes.HasPrefix(line, []byte("export "))) {
			continue
		}
		out = append(out, line)
	}

	return bytes.Join(out, []byte("\n"))
}
