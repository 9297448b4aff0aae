package snippets

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikebarkmin/ulauncher-snippets/pkg/filesystem"
	"github.com/mikebarkmin/ulauncher-snippets/pkg/types"
)

func newTestStore(t *testing.T, files map[string]string) *Store {
	t.Helper()
	fsys := filesystem.NewMemory()
	require.NoError(t, fsys.MkdirAll("/snippets", 0755))
	for path, content := range files {
		require.NoError(t, fsys.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, fsys.WriteFile(path, []byte(content), 0644))
	}
	return NewStore(fsys, "/snippets")
}

func TestSearch_RanksByQuery(t *testing.T) {
	store := newTestStore(t, map[string]string{
		"/snippets/react/component.j2": "react body",
		"/snippets/date.j2":            "date body",
		"/snippets/notes/daily.j2":     "daily body",
	})

	defs, err := store.Search("react")
	require.NoError(t, err)
	require.Len(t, defs, 1)
	assert.Equal(t, "react/component", defs[0].Name)
}

func TestSearch_EmptyQueryReturnsAllAlphabetical(t *testing.T) {
	store := newTestStore(t, map[string]string{
		"/snippets/zebra.j2": "z",
		"/snippets/apple.j2": "a",
	})

	defs, err := store.Search("")
	require.NoError(t, err)
	require.Len(t, defs, 2)
	assert.Equal(t, "apple", defs[0].Name)
	assert.Equal(t, "zebra", defs[1].Name)
}

func TestSearch_IgnoresOtherExtensions(t *testing.T) {
	store := newTestStore(t, map[string]string{
		"/snippets/real.j2":    "body",
		"/snippets/readme.md":  "not a snippet",
		"/snippets/filters.js": "var filters = {};",
	})

	defs, err := store.Search("")
	require.NoError(t, err)
	require.Len(t, defs, 1)
	assert.Equal(t, "real", defs[0].Name)
}

func TestSearch_MalformedFileIsSkipped(t *testing.T) {
	store := newTestStore(t, map[string]string{
		"/snippets/good.j2":   "fine",
		"/snippets/broken.j2": "---\nvars: [not, a, mapping]\n---\nbody",
	})

	defs, err := store.Search("")
	require.NoError(t, err)
	require.Len(t, defs, 1)
	assert.Equal(t, "good", defs[0].Name)
}

func TestSearch_MissingRoot(t *testing.T) {
	store := NewStore(filesystem.NewMemory(), "/does-not-exist")
	_, err := store.Search("")
	assert.Error(t, err)
}

func TestSearch_FreshDefinitionsPerQuery(t *testing.T) {
	store := newTestStore(t, map[string]string{
		"/snippets/vars.j2": "---\nvars:\n  name:\n    label: Name\n---\n{{ vars(\"name\") }}",
	})

	first, err := store.Search("vars")
	require.NoError(t, err)
	require.Len(t, first, 1)
	spec := first[0].Vars.Get("name")
	spec.Value = "assigned"
	spec.IsSet = true

	second, err := store.Search("vars")
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.False(t, second[0].Vars.Get("name").IsSet, "values must not survive across searches")
}

func TestParse_HeaderFields(t *testing.T) {
	store := newTestStore(t, map[string]string{
		"/snippets/full.j2": `---
name: Full Example
description: Declared description
icon: icons/custom.png
vars:
  first:
    label: First variable
  second:
    label: Second
    default: two
markdown: true
markdown_extensions: [table]
file_path_template: "~/out/{{ vars(\"first\") }}.md"
file_overwrite: true
---
The body`,
	})

	defs, err := store.Search("full")
	require.NoError(t, err)
	require.Len(t, defs, 1)

	def := defs[0]
	assert.Equal(t, "Full Example", def.Name)
	assert.Equal(t, "Declared description", def.Description)
	assert.Equal(t, "/snippets/icons/custom.png", def.Icon)
	assert.Equal(t, []string{"first", "second"}, def.Vars.IDs())
	assert.Equal(t, "two", def.Vars.Get("second").Default)
	assert.True(t, def.Markdown)
	assert.Equal(t, []string{"table"}, def.MarkdownExtensions)
	assert.Equal(t, `~/out/{{ vars("first") }}.md`, def.FilePathTemplate)
	assert.True(t, def.FileOverwrite)
	assert.Equal(t, "The body", def.Body)
}

func TestParse_Defaults(t *testing.T) {
	longBody := "This body is long enough that the default description gets cut off right here and beyond"
	store := newTestStore(t, map[string]string{
		"/snippets/bare/minimal.j2": longBody,
	})

	defs, err := store.Search("minimal")
	require.NoError(t, err)
	require.Len(t, defs, 1)

	def := defs[0]
	assert.Equal(t, "bare/minimal", def.Name)
	assert.Equal(t, longBody[:40], def.Description)
	assert.Equal(t, types.DefaultIcon, def.Icon)
	assert.Equal(t, 0, def.Vars.Len())
	assert.False(t, def.Markdown)
	assert.Equal(t, types.DefaultMarkdownExtensions, def.MarkdownExtensions)
	assert.False(t, def.FileOverwrite)
	assert.Empty(t, def.FilePathTemplate)
}
