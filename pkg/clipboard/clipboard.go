// Package clipboard implements the system clipboard collaborator.
//
// Reads decode the nautilus file-copy special case into plain paths.
// The underlying mechanism has no mime-aware API, so writes degrade to
// plain text regardless of the declared mime type. Both directions are
// bounded by a timeout; hitting it is a recoverable error, not a hang.
package clipboard

import (
	"time"

	"github.com/atotto/clipboard"

	"github.com/mikebarkmin/ulauncher-snippets/pkg/errors"
	"github.com/mikebarkmin/ulauncher-snippets/pkg/logging"
	"github.com/mikebarkmin/ulauncher-snippets/pkg/types"
)

// DefaultTimeout bounds clipboard calls at the OS boundary
const DefaultTimeout = 3 * time.Second

// System is the real clipboard implementation of types.Clipboard
type System struct {
	timeout time.Duration
}

// NewSystem creates a clipboard with the default timeout
func NewSystem() *System {
	return &System{timeout: DefaultTimeout}
}

// NewSystemWithTimeout creates a clipboard with a custom timeout
func NewSystemWithTimeout(timeout time.Duration) *System {
	return &System{timeout: timeout}
}

var _ types.Clipboard = (*System)(nil)

// Read returns the decoded clipboard text
func (s *System) Read() (string, error) {
	text, err := s.call(clipboard.ReadAll)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrClipboard, "reading clipboard")
	}
	return Decode(text), nil
}

// Write places text on the clipboard. mimeType is accepted for the
// types.Clipboard contract but cannot be honored here.
func (s *System) Write(text, mimeType string) error {
	if mimeType != types.MimePlain {
		logger := logging.GetLogger("clipboard")
		logger.Debug().Str("mimeType", mimeType).Msg("no mime-aware clipboard API, writing plain text")
	}
	_, err := s.call(func() (string, error) {
		return "", clipboard.WriteAll(text)
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrClipboard, "writing clipboard")
	}
	return nil
}

type callResult struct {
	text string
	err  error
}

// call runs fn with the timeout applied. A hung xsel/xclip child must
// not stall the caller's turn.
func (s *System) call(fn func() (string, error)) (string, error) {
	done := make(chan callResult, 1)
	go func() {
		text, err := fn()
		done <- callResult{text: text, err: err}
	}()

	select {
	case res := <-done:
		return res.text, res.err
	case <-time.After(s.timeout):
		return "", errors.Newf(errors.ErrClipboard, "clipboard call timed out after %s", s.timeout)
	}
}
