// Package snippets discovers snippet definitions under a root
// directory and exposes fuzzy-ranked search over them.
//
// Definitions are parsed fresh on every search; there is no cache to
// leak state between queries. A single malformed file is logged and
// skipped, never aborting the search.
package snippets

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/mikebarkmin/ulauncher-snippets/pkg/filesystem"
	"github.com/mikebarkmin/ulauncher-snippets/pkg/fuzzy"
	"github.com/mikebarkmin/ulauncher-snippets/pkg/logging"
	"github.com/mikebarkmin/ulauncher-snippets/pkg/types"
)

// Store searches one snippet root
type Store struct {
	fs   types.FS
	root string
}

// NewStore creates a Store over root, reading through the given
// filesystem
func NewStore(fsys types.FS, root string) *Store {
	return &Store{fs: fsys, root: root}
}

// Root returns the snippet root directory
func (s *Store) Root() string {
	return s.root
}

// Search returns the definitions whose names fuzzy-match query, in
// rank order. Parsing failures exclude the affected file and continue.
func (s *Store) Search(query string) ([]*types.SnippetDefinition, error) {
	logger := logging.GetLogger("snippets")

	paths, err := s.discover()
	if err != nil {
		return nil, err
	}

	names := make([]string, len(paths))
	for i, path := range paths {
		names[i] = relativeName(s.root, path)
	}

	ranked := fuzzy.Rank(query, len(names), func(i int) string { return names[i] })

	results := make([]*types.SnippetDefinition, 0, len(ranked))
	for _, idx := range ranked {
		def, err := s.parse(paths[idx], names[idx])
		if err != nil {
			logger.Warn().Err(err).Str("path", paths[idx]).Msg("skipping malformed snippet")
			continue
		}
		results = append(results, def)
	}

	logger.Debug().
		Str("query", query).
		Int("found", len(paths)).
		Int("matched", len(results)).
		Msg("searched snippets")
	return results, nil
}

// discover walks the root for snippet files
func (s *Store) discover() ([]string, error) {
	var paths []string
	err := filesystem.Walk(s.fs, s.root, func(path string, info fs.FileInfo) error {
		if strings.EqualFold(filepath.Ext(path), types.SnippetExtension) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

// relativeName is the root-relative path with the snippet extension
// stripped, the name candidates are ranked and displayed by.
func relativeName(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)
	return strings.TrimSuffix(rel, filepath.Ext(rel))
}
