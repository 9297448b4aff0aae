// Package testutil carries the helpers shared between package tests: an
// in-memory snippet root builder, deterministic clock and random
// sources, and error-code assertions.
package testutil

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikebarkmin/ulauncher-snippets/pkg/errors"
	"github.com/mikebarkmin/ulauncher-snippets/pkg/filesystem"
	"github.com/mikebarkmin/ulauncher-snippets/pkg/types"
)

// SnippetRoot is the directory test snippet trees are built under
const SnippetRoot = "/snippets"

// FixedTime is the reference instant deterministic tests render at
var FixedTime = time.Date(2020, time.December, 10, 12, 0, 1, 0, time.UTC)

// FixedClock always reports FixedTime
type FixedClock struct{}

// Now returns FixedTime
func (FixedClock) Now() time.Time { return FixedTime }

// SeededRand returns a random source with a fixed seed so renders are
// reproducible across runs
func SeededRand() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

// NewSnippetRoot builds an in-memory filesystem holding the given files
// under SnippetRoot. Keys are root-relative names, values file content.
func NewSnippetRoot(t *testing.T, files map[string]string) (types.FS, string) {
	t.Helper()

	fsys := filesystem.NewMemory()
	require.NoError(t, fsys.MkdirAll(SnippetRoot, 0755))
	for name, content := range files {
		require.NoError(t, fsys.WriteFile(SnippetRoot+"/"+name, []byte(content), 0644))
	}
	return fsys, SnippetRoot
}

// RequireErrorCode fails the test unless err carries the given code
func RequireErrorCode(t *testing.T, err error, code errors.ErrorCode) {
	t.Helper()

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, code),
		"expected error code %s, got %s (%v)", code, errors.GetErrorCode(err), err)
}
