// Package filters holds the built-in string filters that are always
// available to templates, independent of any directory-scoped plugins.
package filters

import (
	"net/url"
	"strings"

	"github.com/mikebarkmin/ulauncher-snippets/pkg/errors"
	"github.com/mikebarkmin/ulauncher-snippets/pkg/types"
)

// Builtin returns a fresh table of the built-in filters. Callers get
// their own copy so a render context can layer plugin filters on top
// without mutating shared state.
func Builtin() types.FilterTable {
	return types.FilterTable{
		"camelcase":  wrap(Camelcase),
		"pascalcase": wrap(Pascalcase),
		"snakecase":  wrap(Snakecase),
		"kebabcase":  wrap(Kebabcase),
		"urldecode":  urldecode,
	}
}

func wrap(fn func(string) string) types.FilterFunc {
	return func(value string, args ...interface{}) (string, error) {
		return fn(value), nil
	}
}

// Camelcase lowercases the first word entirely and uppercases the first
// character of every following word, leaving the rest of each word
// untouched: "A Test title" -> "aTestTitle".
func Camelcase(text string) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return text
	}

	var b strings.Builder
	b.WriteString(strings.ToLower(words[0]))
	for _, word := range words[1:] {
		runes := []rune(word)
		b.WriteString(strings.ToUpper(string(runes[0])))
		b.WriteString(string(runes[1:]))
	}
	return b.String()
}

// Pascalcase is Camelcase with its first character uppercased:
// "A Test title" -> "ATestTitle".
func Pascalcase(text string) string {
	text = Camelcase(text)
	if text == "" {
		return text
	}
	runes := []rune(text)
	return strings.ToUpper(string(runes[0])) + string(runes[1:])
}

// Snakecase lowercases and joins on underscores:
// "A Test title" -> "a_test_title".
func Snakecase(text string) string {
	return strings.ReplaceAll(strings.ToLower(text), " ", "_")
}

// Kebabcase is Snakecase with hyphens: "A Test title" -> "a-test-title".
func Kebabcase(text string) string {
	return strings.ReplaceAll(Snakecase(text), "_", "-")
}

func urldecode(value string, args ...interface{}) (string, error) {
	decoded, err := url.PathUnescape(value)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFilter, "urldecode %q", value)
	}
	return decoded, nil
}
