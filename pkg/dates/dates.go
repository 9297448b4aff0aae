// Package dates evaluates the natural-language date expressions used by
// the date() template built-in, e.g. "last year" or "next friday", and
// formats the result with strftime-style directives.
package dates

import (
	"strings"
	"time"

	"github.com/ncruces/go-strftime"
	naturaldate "github.com/tj/go-naturaldate"

	"github.com/mikebarkmin/ulauncher-snippets/pkg/logging"
)

// DefaultFormat is the strftime pattern applied when a template calls
// date() without one
const DefaultFormat = "%Y-%m-%d"

// Eval parses expression relative to now and formats the result.
// An empty or unparseable expression yields the empty string.
func Eval(expression, format string, now time.Time) string {
	t, ok := Parse(expression, now)
	if !ok {
		return ""
	}
	return strftime.Format(format, t)
}

// Parse resolves a natural-language expression against the reference
// time. The second return is false when nothing could be parsed.
func Parse(expression string, now time.Time) (time.Time, bool) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return time.Time{}, false
	}

	t, err := naturaldate.Parse(expression, now)
	if err != nil {
		logger := logging.GetLogger("dates")
		logger.Debug().Str("expression", expression).Err(err).Msg("unparseable date expression")
		return time.Time{}, false
	}
	return t, true
}
