package clipboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mikebarkmin/ulauncher-snippets/pkg/errors"
)

func TestCall_Timeout(t *testing.T) {
	s := NewSystemWithTimeout(20 * time.Millisecond)

	_, err := s.call(func() (string, error) {
		time.Sleep(500 * time.Millisecond)
		return "too late", nil
	})

	assert.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrClipboard))
	assert.Contains(t, err.Error(), "timed out")
}

func TestCall_PassesResultThrough(t *testing.T) {
	s := NewSystem()

	text, err := s.call(func() (string, error) { return "content", nil })
	assert.NoError(t, err)
	assert.Equal(t, "content", text)
}
