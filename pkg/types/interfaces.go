package types

import (
	"io/fs"
	"time"
)

// FS is the filesystem interface required for snippet operations
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)
}

// Clipboard is the system clipboard as seen by the core. Read returns
// the already-decoded text (the nautilus special case is handled by the
// implementation). Write may ignore mimeType when the underlying
// mechanism has no mime-aware API.
type Clipboard interface {
	Read() (string, error)
	Write(text, mimeType string) error
}

// Clock provides the current time for the date built-in. Injecting it
// keeps renders reproducible under test.
type Clock interface {
	Now() time.Time
}

// SystemClock is the real-time Clock implementation
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Notifier delivers a desktop notification. The host owns rendering;
// the core only states title and message.
type Notifier interface {
	Notify(title, message string) error
}

// MarkdownConverter converts a rendered body to HTML using the named
// extension set. It is optional: a nil converter makes any snippet with
// the markdown flag fail its render.
type MarkdownConverter interface {
	Convert(body string, extensions []string) (string, error)
}
