package types

// Mime types of rendered output
const (
	MimePlain = "text/plain"
	MimeHTML  = "text/html"
)

// RenderResult is the outcome of a completed render: either inline
// content with a mime type, or the path of a written file.
type RenderResult struct {
	MimeType string
	Content  string
	FilePath string
}

// IsFile reports whether the result is a written file rather than
// inline content
func (r RenderResult) IsFile() bool {
	return r.FilePath != ""
}

// FilterFunc is a pure string transform. Extra arguments come from
// pipe-stage call syntax, e.g. `| replace_with_symbol("*")`.
type FilterFunc func(value string, args ...interface{}) (string, error)

// FilterTable maps filter names to transforms
type FilterTable map[string]FilterFunc

// GlobalFunc is a callable global. Globals may also be plain values.
type GlobalFunc func(args ...interface{}) (interface{}, error)

// GlobalTable maps global names to values or GlobalFunc callables
type GlobalTable map[string]interface{}
