package template

import (
	"strings"

	"golang.org/x/net/html"
)

// HTMLToText strips the markup from converted markdown for clipboard
// paths that cannot carry HTML. It is a rudimentary walker, not a
// browser: text nodes are kept with entities decoded, <br> and closing
// </p> become newlines, everything else is dropped.
func HTMLToText(markup string) string {
	z := html.NewTokenizer(strings.NewReader(markup))

	var b strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			return b.String()
		case html.TextToken:
			b.Write(z.Text())
		case html.StartTagToken, html.SelfClosingTagToken:
			if name, _ := z.TagName(); string(name) == "br" {
				b.WriteByte('\n')
			}
		case html.EndTagToken:
			if name, _ := z.TagName(); string(name) == "p" {
				b.WriteByte('\n')
			}
		}
	}
}
