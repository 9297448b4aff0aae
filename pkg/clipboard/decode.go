package clipboard

import (
	"net/url"
	"strings"
)

// nautilusMarker opens clipboard payloads produced by copying files in
// GNOME Files. The payload is the marker line, an operation line, then
// one file:// URI per line.
const nautilusMarker = "x-special/nautilus-clipboard"

// uriSchemePrefixLen is the length of the "file://" prefix stripped
// from each URI line.
const uriSchemePrefixLen = 7

// Decode applies the nautilus special case: drop the first two lines,
// strip the URI scheme from each remaining non-empty line and
// percent-decode it, then join with newlines. Anything else passes
// through untouched.
func Decode(text string) string {
	if !strings.HasPrefix(text, nautilusMarker) {
		return text
	}

	lines := strings.Split(text, "\n")
	if len(lines) <= 2 {
		return ""
	}

	var paths []string
	for _, line := range lines[2:] {
		if line == "" {
			continue
		}
		if len(line) > uriSchemePrefixLen {
			line = line[uriSchemePrefixLen:]
		}
		if decoded, err := url.PathUnescape(line); err == nil {
			line = decoded
		}
		paths = append(paths, line)
	}
	return strings.Join(paths, "\n")
}
