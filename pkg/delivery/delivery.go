// Package delivery hands a completed render result to the host: a
// "file written" notification for file output, a clipboard write for
// inline content.
package delivery

import (
	"github.com/mikebarkmin/ulauncher-snippets/pkg/errors"
	"github.com/mikebarkmin/ulauncher-snippets/pkg/logging"
	"github.com/mikebarkmin/ulauncher-snippets/pkg/types"
)

// Delivery routes render results to the clipboard or the notifier
type Delivery struct {
	clipboard types.Clipboard
	notifier  types.Notifier
}

// New creates a Delivery. Both collaborators may be nil; delivering to
// a missing one is a recoverable error.
func New(clipboard types.Clipboard, notifier types.Notifier) *Delivery {
	return &Delivery{clipboard: clipboard, notifier: notifier}
}

// Deliver sends the result out. A file result gets a notification and
// no clipboard interaction; inline content goes to the clipboard with
// its mime type. Failures are delivery errors for the common reporting
// path and never block the session reset that follows.
func (d *Delivery) Deliver(res types.RenderResult) error {
	logger := logging.GetLogger("delivery")

	if res.IsFile() {
		logger.Info().Str("path", res.FilePath).Msg("snippet written to file")
		if d.notifier == nil {
			return nil
		}
		if err := d.notifier.Notify("Snippet written", res.FilePath); err != nil {
			return errors.Wrap(err, errors.ErrDelivery, "sending notification")
		}
		return nil
	}

	if d.clipboard == nil {
		return errors.New(errors.ErrDelivery, "no clipboard available for inline content")
	}
	if err := d.clipboard.Write(res.Content, res.MimeType); err != nil {
		return errors.Wrap(err, errors.ErrDelivery, "writing clipboard")
	}

	logger.Debug().Str("mimeType", res.MimeType).Int("bytes", len(res.Content)).Msg("snippet copied to clipboard")
	return nil
}
