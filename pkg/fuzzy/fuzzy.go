// Package fuzzy ranks candidate names against a partial query.
//
// A candidate qualifies when every query character appears, in order,
// as a possibly non-contiguous subsequence. The pattern is wrapped in a
// positive lookahead so overlapping matches are all found; a
// candidate's best match is the one with the smallest span. Qualifying
// candidates are ranked by span length, then match start, then the
// candidate text itself. Everything else is dropped.
package fuzzy

import (
	"regexp"
	"sort"
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/mikebarkmin/ulauncher-snippets/pkg/logging"
)

type candidateMatch struct {
	span  int
	start int
	text  string
	index int
}

// Match filters and ranks candidates against query
func Match(query string, candidates []string) []string {
	ranked := Rank(query, len(candidates), func(i int) string { return candidates[i] })
	result := make([]string, len(ranked))
	for i, idx := range ranked {
		result[i] = candidates[idx]
	}
	return result
}

// Rank returns the indices of qualifying candidates in rank order. The
// accessor maps an index to the text being matched, so callers can rank
// richer values than plain strings.
func Rank(query string, count int, accessor func(int) string) []int {
	re, err := regexp2.Compile(pattern(query), regexp2.IgnoreCase)
	if err != nil {
		// Query characters are escaped, so this cannot happen for
		// user input. Treat it as "nothing matches".
		logger := logging.GetLogger("fuzzy")
		logger.Warn().Err(err).Str("query", query).Msg("bad fuzzy pattern")
		return nil
	}

	matches := make([]candidateMatch, 0, count)
	for i := 0; i < count; i++ {
		text := accessor(i)
		best, ok := bestMatch(re, text)
		if !ok {
			continue
		}
		best.text = text
		best.index = i
		matches = append(matches, best)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.span != b.span {
			return a.span < b.span
		}
		if a.start != b.start {
			return a.start < b.start
		}
		return a.text < b.text
	})

	ranked := make([]int, len(matches))
	for i, m := range matches {
		ranked[i] = m.index
	}
	return ranked
}

// pattern builds the lookahead subsequence pattern for query, e.g.
// "al" becomes `(?=(a.*?l))`.
func pattern(query string) string {
	parts := make([]string, 0, len(query))
	for _, r := range query {
		parts = append(parts, regexp.QuoteMeta(string(r)))
	}
	return "(?=(" + strings.Join(parts, ".*?") + "))"
}

// bestMatch scans all overlapping matches of re in text and keeps the
// one with the smallest captured span, breaking ties by start position.
func bestMatch(re *regexp2.Regexp, text string) (candidateMatch, bool) {
	var best candidateMatch
	found := false

	m, err := re.FindStringMatch(text)
	for err == nil && m != nil {
		group := m.Groups()[1]
		span := group.Length
		start := group.Index
		if !found || span < best.span || (span == best.span && start < best.start) {
			best = candidateMatch{span: span, start: start}
			found = true
		}
		m, err = re.FindNextMatch(m)
	}
	return best, found
}
