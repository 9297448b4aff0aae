// Package template renders snippet bodies.
//
// The engine supports literal text with {{ expression }} interpolation:
// variable lookups via vars("id"), the date/random_int/random_item/
// random_uuid/clipboard built-ins, values and callables from the global
// table, and pipe-style filters applied left to right. It is not a
// general template language; only these operations exist.
//
// Each render assembles its own immutable Context from the definition,
// the built-in filter set and whatever the plugin registry handed over.
// Nothing process-wide is ever mutated.
package template

import (
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/mikebarkmin/ulauncher-snippets/pkg/errors"
	"github.com/mikebarkmin/ulauncher-snippets/pkg/filters"
	"github.com/mikebarkmin/ulauncher-snippets/pkg/logging"
	"github.com/mikebarkmin/ulauncher-snippets/pkg/types"
	"github.com/mikebarkmin/ulauncher-snippets/pkg/utils"
)

// Engine renders snippet definitions
type Engine struct {
	fs        types.FS
	clock     types.Clock
	rand      *rand.Rand
	clipboard types.Clipboard
	markdown  types.MarkdownConverter
}

// Option configures an Engine
type Option func(*Engine)

// WithClock injects the clock used by the date built-in
func WithClock(clock types.Clock) Option {
	return func(e *Engine) { e.clock = clock }
}

// WithRand injects the random source used by the random_* built-ins
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rand = r }
}

// WithClipboard injects the clipboard-read collaborator
func WithClipboard(c types.Clipboard) Option {
	return func(e *Engine) { e.clipboard = c }
}

// WithMarkdown replaces the markdown converter. Passing nil makes any
// markdown snippet fail its render with a markdown-unavailable error.
func WithMarkdown(m types.MarkdownConverter) Option {
	return func(e *Engine) { e.markdown = m }
}

// New creates an Engine over the given filesystem
func New(fs types.FS, opts ...Option) *Engine {
	e := &Engine{
		fs:       fs,
		clock:    types.SystemClock{},
		rand:     rand.New(rand.NewSource(time.Now().UnixNano())),
		markdown: NewGoldmark(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Render renders def with the given filter and global tables on top of
// the built-in filters. The result is either inline content with a
// mime type or, when the definition declares a file path template, the
// path of the written file.
func (e *Engine) Render(def *types.SnippetDefinition, filterTable types.FilterTable, globalTable types.GlobalTable) (types.RenderResult, error) {
	logger := logging.GetLogger("template")
	defer logging.LogOperationStart(logger, "render "+def.Name)()

	ctx := e.newContext(def, filterTable, globalTable)

	content, err := e.renderString(def.Body, ctx)
	if err != nil {
		return types.RenderResult{}, err
	}

	mimeType := types.MimePlain
	if def.Markdown {
		if e.markdown == nil {
			return types.RenderResult{}, errors.New(errors.ErrMarkdownUnavailable, "markdown requested but no converter is available")
		}
		extensions := def.MarkdownExtensions
		if len(extensions) == 0 {
			extensions = types.DefaultMarkdownExtensions
		}
		content, err = e.markdown.Convert(content, extensions)
		if err != nil {
			return types.RenderResult{}, err
		}
		mimeType = types.MimeHTML
	}

	if def.FilePathTemplate != "" {
		path, err := e.writeFile(def, content, ctx)
		if err != nil {
			return types.RenderResult{}, err
		}
		return types.RenderResult{MimeType: mimeType, FilePath: path}, nil
	}

	return types.RenderResult{MimeType: mimeType, Content: content}, nil
}

// newContext assembles the immutable per-render context. Plugin
// filters layer over the built-ins; plugin globals are taken as-is.
func (e *Engine) newContext(def *types.SnippetDefinition, filterTable types.FilterTable, globalTable types.GlobalTable) *Context {
	merged := filters.Builtin()
	for name, fn := range filterTable {
		merged[name] = fn
	}

	globals := types.GlobalTable{}
	for name, val := range globalTable {
		globals[name] = val
	}

	return &Context{
		Vars:      varLookup(def),
		Filters:   merged,
		Globals:   globals,
		Clock:     e.clock,
		Rand:      e.rand,
		Clipboard: e.clipboard,
	}
}

// varLookup resolves vars("id") against the definition: assigned value
// if set, else declared default, else empty. An id the snippet never
// declared is an error, not an empty string.
func varLookup(def *types.SnippetDefinition) func(string) (string, error) {
	return func(id string) (string, error) {
		spec := def.Vars.Get(id)
		if spec == nil {
			return "", errors.Newf(errors.ErrVarUndefined, "undefined variable %q", id)
		}
		return spec.Resolve(), nil
	}
}

// renderString parses and evaluates one template string
func (e *Engine) renderString(src string, ctx *Context) (string, error) {
	nodes, err := parseTemplate(src)
	if err != nil {
		return "", err
	}
	return renderNodes(nodes, ctx)
}

// writeFile renders the file path template, enforces the overwrite
// policy and writes the already-rendered content.
func (e *Engine) writeFile(def *types.SnippetDefinition, content string, ctx *Context) (string, error) {
	rendered, err := e.renderString(def.FilePathTemplate, ctx)
	if err != nil {
		return "", err
	}
	path := utils.ExpandPath(rendered)

	if _, err := e.fs.Stat(path); err == nil {
		if !def.FileOverwrite {
			return "", errors.Newf(errors.ErrFileExists, "file already exists: %s", path).WithDetail("path", path)
		}
	} else if !os.IsNotExist(err) {
		return "", errors.Wrapf(err, errors.ErrFileWrite, "checking %s", path)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := e.fs.MkdirAll(dir, 0755); err != nil {
			return "", errors.Wrapf(err, errors.ErrFileWrite, "creating %s", dir)
		}
	}

	if err := e.fs.WriteFile(path, []byte(content), 0644); err != nil {
		return "", errors.Wrapf(err, errors.ErrFileWrite, "writing %s", path)
	}

	logger := logging.GetLogger("template")
	logger.Info().Str("path", path).Str("snippet", def.Name).Msg("wrote rendered snippet to file")
	return path, nil
}
