package utils

import (
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
)

func TestExpandPath_Tilde(t *testing.T) {
	assert.Equal(t, xdg.Home, ExpandPath("~"))
	assert.Equal(t, filepath.Join(xdg.Home, "notes", "today.md"), ExpandPath("~/notes/today.md"))
}

func TestExpandPath_EnvVars(t *testing.T) {
	t.Setenv("SNIPPET_DIR", "/srv/snippets")
	assert.Equal(t, "/srv/snippets/out.txt", ExpandPath("$SNIPPET_DIR/out.txt"))
}

func TestExpandPath_EnvVarAfterTilde(t *testing.T) {
	t.Setenv("TOPIC", "go")
	assert.Equal(t, filepath.Join(xdg.Home, "notes", "go.md"), ExpandPath("~/notes/$TOPIC.md"))
}

func TestExpandPath_PlainPathUntouched(t *testing.T) {
	assert.Equal(t, "/tmp/plain.txt", ExpandPath("/tmp/plain.txt"))
	assert.Equal(t, "relative/file.txt", ExpandPath("relative/file.txt"))
}

func TestExpandPath_TildeInMiddleUntouched(t *testing.T) {
	assert.Equal(t, "/tmp/~file", ExpandPath("/tmp/~file"))
}
