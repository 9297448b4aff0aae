package delivery

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikebarkmin/ulauncher-snippets/pkg/errors"
	"github.com/mikebarkmin/ulauncher-snippets/pkg/types"
)

type fakeClipboard struct {
	written string
	mime    string
	err     error
	calls   int
}

func (f *fakeClipboard) Read() (string, error) { return "", nil }
func (f *fakeClipboard) Write(text, mimeType string) error {
	f.calls++
	f.written = text
	f.mime = mimeType
	return f.err
}

type fakeNotifier struct {
	title   string
	message string
	err     error
	calls   int
}

func (f *fakeNotifier) Notify(title, message string) error {
	f.calls++
	f.title = title
	f.message = message
	return f.err
}

func TestDeliver_InlineGoesToClipboard(t *testing.T) {
	clip := &fakeClipboard{}
	notify := &fakeNotifier{}
	d := New(clip, notify)

	err := d.Deliver(types.RenderResult{MimeType: types.MimeHTML, Content: "<p>hi</p>"})
	require.NoError(t, err)
	assert.Equal(t, "<p>hi</p>", clip.written)
	assert.Equal(t, types.MimeHTML, clip.mime)
	assert.Zero(t, notify.calls)
}

func TestDeliver_FileGoesToNotifier(t *testing.T) {
	clip := &fakeClipboard{}
	notify := &fakeNotifier{}
	d := New(clip, notify)

	err := d.Deliver(types.RenderResult{FilePath: "/notes/today.md"})
	require.NoError(t, err)
	assert.Equal(t, 1, notify.calls)
	assert.Equal(t, "/notes/today.md", notify.message)
	assert.Zero(t, clip.calls, "file results must not touch the clipboard")
}

func TestDeliver_FileWithoutNotifierIsFine(t *testing.T) {
	d := New(&fakeClipboard{}, nil)
	assert.NoError(t, d.Deliver(types.RenderResult{FilePath: "/notes/today.md"}))
}

func TestDeliver_ClipboardFailure(t *testing.T) {
	clip := &fakeClipboard{err: fmt.Errorf("xsel not found")}
	d := New(clip, nil)

	err := d.Deliver(types.RenderResult{MimeType: types.MimePlain, Content: "x"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrDelivery))
}

func TestDeliver_MissingClipboard(t *testing.T) {
	d := New(nil, nil)
	err := d.Deliver(types.RenderResult{MimeType: types.MimePlain, Content: "x"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrDelivery))
}

func TestDeliver_NotifierFailure(t *testing.T) {
	notify := &fakeNotifier{err: fmt.Errorf("dbus down")}
	d := New(nil, notify)

	err := d.Deliver(types.RenderResult{FilePath: "/notes/x.md"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrDelivery))
}
