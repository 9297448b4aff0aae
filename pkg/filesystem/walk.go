package filesystem

import (
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/mikebarkmin/ulauncher-snippets/pkg/types"
)

// WalkFunc is invoked for every file found under the walk root.
// Directories are traversed, not reported.
type WalkFunc func(path string, info fs.FileInfo) error

// Walk traverses root depth-first through a types.FS, visiting files in
// a deterministic (name-sorted) order.
func Walk(fsys types.FS, root string, fn WalkFunc) error {
	entries, err := fsys.ReadDir(root)
	if err != nil {
		return err
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, entry := range entries {
		path := filepath.Join(root, entry.Name())
		if entry.IsDir() {
			if err := Walk(fsys, path, fn); err != nil {
				return err
			}
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return err
		}
		if err := fn(path, info); err != nil {
			return err
		}
	}
	return nil
}
