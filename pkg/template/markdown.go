package template

import (
	"bytes"

	"github.com/yuin/goldmark"
	emoji "github.com/yuin/goldmark-emoji"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/mikebarkmin/ulauncher-snippets/pkg/errors"
	"github.com/mikebarkmin/ulauncher-snippets/pkg/types"
)

// knownExtensions maps the names a snippet may declare in
// markdown_extensions to goldmark extenders.
var knownExtensions = map[string]goldmark.Extender{
	"table":           extension.Table,
	"strikethrough":   extension.Strikethrough,
	"tasklist":        extension.TaskList,
	"autolink":        extension.Linkify,
	"footnote":        extension.Footnote,
	"definition_list": extension.DefinitionList,
	"typographer":     extension.Typographer,
	"emoji":           emoji.Emoji,
	"gfm":             extension.GFM,
}

// Goldmark converts markdown bodies to HTML. It implements
// types.MarkdownConverter.
type Goldmark struct{}

// NewGoldmark creates the default markdown converter
func NewGoldmark() *Goldmark {
	return &Goldmark{}
}

var _ types.MarkdownConverter = (*Goldmark)(nil)

// Convert renders body to HTML with the named extensions enabled. An
// unknown extension name is a render error so header typos surface
// instead of silently changing output.
func (g *Goldmark) Convert(body string, extensions []string) (string, error) {
	extenders := make([]goldmark.Extender, 0, len(extensions))
	for _, name := range extensions {
		extender, ok := knownExtensions[name]
		if !ok {
			return "", errors.Newf(errors.ErrRender, "unknown markdown extension %q", name)
		}
		extenders = append(extenders, extender)
	}

	md := goldmark.New(
		goldmark.WithExtensions(extenders...),
		// Snippet bodies are the user's own content; raw HTML stays.
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)

	var buf bytes.Buffer
	if err := md.Convert([]byte(body), &buf); err != nil {
		return "", errors.Wrap(err, errors.ErrRender, "converting markdown")
	}
	return buf.String(), nil
}
