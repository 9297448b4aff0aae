package snippets

import (
	"path/filepath"

	"github.com/mikebarkmin/ulauncher-snippets/pkg/errors"
	"github.com/mikebarkmin/ulauncher-snippets/pkg/frontmatter"
	"github.com/mikebarkmin/ulauncher-snippets/pkg/types"
)

// descriptionLength is how much of the body becomes the default
// description
const descriptionLength = 40

// header is the decoded front matter of a snippet file
type header struct {
	Name               string        `yaml:"name"`
	Description        string        `yaml:"description"`
	Icon               string        `yaml:"icon"`
	Vars               *types.VarMap `yaml:"vars"`
	Markdown           bool          `yaml:"markdown"`
	MarkdownExtensions []string      `yaml:"markdown_extensions"`
	FilePathTemplate   string        `yaml:"file_path_template"`
	FileOverwrite      bool          `yaml:"file_overwrite"`
}

// parse reads one snippet file into a definition, applying the
// defaults for everything the header leaves out.
func (s *Store) parse(path, relName string) (*types.SnippetDefinition, error) {
	data, err := s.fs.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrSnippetParse, "reading %s", path)
	}

	var head header
	body, err := frontmatter.Parse(data, &head)
	if err != nil {
		return nil, err
	}

	def := &types.SnippetDefinition{
		Path:               path,
		Name:               head.Name,
		Description:        head.Description,
		Vars:               head.Vars,
		Markdown:           head.Markdown,
		MarkdownExtensions: head.MarkdownExtensions,
		FilePathTemplate:   head.FilePathTemplate,
		FileOverwrite:      head.FileOverwrite,
		Body:               body,
	}

	if def.Name == "" {
		def.Name = relName
	}
	if def.Description == "" {
		def.Description = truncate(body, descriptionLength)
	}
	if head.Icon != "" {
		def.Icon = head.Icon
		if !filepath.IsAbs(def.Icon) {
			def.Icon = filepath.Join(s.root, def.Icon)
		}
	} else {
		def.Icon = types.DefaultIcon
	}
	if def.Vars == nil {
		def.Vars = types.NewVarMap()
	}
	if def.MarkdownExtensions == nil {
		def.MarkdownExtensions = append([]string(nil), types.DefaultMarkdownExtensions...)
	}

	return def, nil
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
