// Package utils holds the small path helpers shared by preference
// loading and file-path output.
package utils

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// ExpandPath resolves the ~ shorthand against the user's home and
// expands environment variables. Snippet file-path templates and the
// snippets_path preference both use these forms.
func ExpandPath(path string) string {
	if path == "~" {
		return xdg.Home
	}
	if strings.HasPrefix(path, "~/") {
		path = filepath.Join(xdg.Home, path[2:])
	}
	return os.ExpandEnv(path)
}
