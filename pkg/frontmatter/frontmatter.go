// Package frontmatter splits a snippet file into its structured header
// and template body.
//
// The format is a YAML block fenced by `---` lines at the very top of
// the file, followed by the body. Parsing is two-phase: delimiter
// detection first, then YAML decoding of the header block. A file
// without a fence is all body.
package frontmatter

import (
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mikebarkmin/ulauncher-snippets/pkg/errors"
)

const delimiter = "---"

// Split separates the raw header block from the body without decoding
// either. The returned header is empty when the file carries no front
// matter.
func Split(data []byte) (header, body string) {
	content := strings.ReplaceAll(string(data), "\r\n", "\n")

	if !strings.HasPrefix(content, delimiter+"\n") && content != delimiter {
		return "", content
	}

	rest := strings.TrimPrefix(content, delimiter+"\n")
	lines := strings.Split(rest, "\n")
	for i, line := range lines {
		if strings.TrimRight(line, " \t") == delimiter {
			return strings.Join(lines[:i], "\n"), strings.Join(lines[i+1:], "\n")
		}
	}

	// Opening fence without a closing one: treat the whole file as body,
	// matching how a stray `---` paragraph should behave.
	return "", content
}

// Parse splits data and decodes the header block into out. The body is
// returned verbatim.
func Parse(data []byte, out interface{}) (body string, err error) {
	header, body := Split(data)
	if header == "" {
		return body, nil
	}
	if err := yaml.Unmarshal([]byte(header), out); err != nil {
		return "", errors.Wrap(err, errors.ErrSnippetParse, "decoding front matter")
	}
	return body, nil
}
