// Package extension is the host-facing facade. It owns the single live
// session and wires the snippet store, plugin registry, template engine
// and delivery together so a host only ever talks to one type.
//
// Error handling at this boundary is uniform: whatever fails during a
// completion, the caller gets exactly one error and the session is back
// in Selecting with every variable value cleared.
package extension

import (
	"math/rand"

	"github.com/mikebarkmin/ulauncher-snippets/pkg/clipboard"
	"github.com/mikebarkmin/ulauncher-snippets/pkg/config"
	"github.com/mikebarkmin/ulauncher-snippets/pkg/delivery"
	"github.com/mikebarkmin/ulauncher-snippets/pkg/filesystem"
	"github.com/mikebarkmin/ulauncher-snippets/pkg/logging"
	"github.com/mikebarkmin/ulauncher-snippets/pkg/plugins"
	"github.com/mikebarkmin/ulauncher-snippets/pkg/session"
	"github.com/mikebarkmin/ulauncher-snippets/pkg/snippets"
	"github.com/mikebarkmin/ulauncher-snippets/pkg/template"
	"github.com/mikebarkmin/ulauncher-snippets/pkg/types"
)

// Prompt tells the host what to show next: the session state and, while
// collecting, the variable awaiting input.
type Prompt struct {
	State    session.State
	Variable *types.VariableSpec
}

// Extension ties the snippet pipeline together for a host
type Extension struct {
	prefs     *config.Preferences
	store     *snippets.Store
	registry  *plugins.Registry
	engine    *template.Engine
	delivery  *delivery.Delivery
	session   *session.Session
	clipboard types.Clipboard
}

// Option overrides a collaborator, mainly for tests
type Option func(*options)

type options struct {
	fs        types.FS
	clipboard types.Clipboard
	notifier  types.Notifier
	clock     types.Clock
	rand      *rand.Rand
	markdown  types.MarkdownConverter
	hasMD     bool
}

// WithFS replaces the filesystem all components read and write through
func WithFS(fsys types.FS) Option {
	return func(o *options) { o.fs = fsys }
}

// WithClipboard replaces the clipboard used for both the clipboard
// built-in and inline delivery
func WithClipboard(c types.Clipboard) Option {
	return func(o *options) { o.clipboard = c }
}

// WithNotifier sets the notifier used for file-write delivery
func WithNotifier(n types.Notifier) Option {
	return func(o *options) { o.notifier = n }
}

// WithClock injects the clock behind the date built-in
func WithClock(c types.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithRand injects the random source behind the random_* built-ins
func WithRand(r *rand.Rand) Option {
	return func(o *options) { o.rand = r }
}

// WithMarkdown replaces the markdown converter; nil disables markdown
// snippets with a markdown-unavailable render error
func WithMarkdown(m types.MarkdownConverter) Option {
	return func(o *options) { o.markdown = m; o.hasMD = true }
}

// New assembles an Extension from loaded preferences
func New(prefs *config.Preferences, opts ...Option) *Extension {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.fs == nil {
		o.fs = filesystem.NewOS()
	}
	if o.clipboard == nil {
		o.clipboard = clipboard.NewSystem()
	}

	engineOpts := []template.Option{template.WithClipboard(o.clipboard)}
	if o.clock != nil {
		engineOpts = append(engineOpts, template.WithClock(o.clock))
	}
	if o.rand != nil {
		engineOpts = append(engineOpts, template.WithRand(o.rand))
	}
	if o.hasMD {
		engineOpts = append(engineOpts, template.WithMarkdown(o.markdown))
	}

	return &Extension{
		prefs:     prefs,
		store:     snippets.NewStore(o.fs, prefs.SnippetsPath),
		registry:  plugins.New(o.fs),
		engine:    template.New(o.fs, engineOpts...),
		delivery:  delivery.New(o.clipboard, o.notifier),
		session:   session.New(),
		clipboard: o.clipboard,
	}
}

// Session exposes the live session, read-only for hosts that render
// their own state displays
func (e *Extension) Session() *session.Session {
	return e.session
}

// Search fuzzy-searches the snippet root. It is valid in any state and
// leaves the session untouched.
func (e *Extension) Search(query string) ([]*types.SnippetDefinition, error) {
	return e.store.Search(query)
}

// Select picks def and returns the first prompt
func (e *Extension) Select(def *types.SnippetDefinition) (Prompt, error) {
	if err := e.session.Select(def); err != nil {
		return e.prompt(), err
	}
	return e.prompt(), nil
}

// Submit assigns input to the variable being collected and returns the
// next prompt
func (e *Extension) Submit(input string) (Prompt, error) {
	if err := e.session.Submit(input); err != nil {
		return e.prompt(), err
	}
	return e.prompt(), nil
}

// Cancel aborts the current selection and returns to Selecting
func (e *Extension) Cancel() Prompt {
	e.session.Cancel()
	return e.prompt()
}

// Complete renders the ready snippet and delivers the result. Plugin
// tables are loaded fresh from the snippet root for every completion.
// Whether render or delivery fails, the error is reported once and the
// session is reset either way.
func (e *Extension) Complete() (types.RenderResult, error) {
	logger := logging.GetLogger("extension")

	res, err := e.session.Complete(func(def *types.SnippetDefinition) (types.RenderResult, error) {
		filterTable, globalTable, err := e.registry.Load(e.store.Root())
		if err != nil {
			return types.RenderResult{}, err
		}
		return e.engine.Render(def, filterTable, globalTable)
	})
	if err != nil {
		logger.Error().Err(err).Msg("completion failed")
		return types.RenderResult{}, err
	}

	if e.prefs.SnippetsCopyMode == config.CopyModePlain && !res.IsFile() {
		if res.MimeType == types.MimeHTML {
			res.Content = template.HTMLToText(res.Content)
		}
		res.MimeType = types.MimePlain
	}

	if err := e.delivery.Deliver(res); err != nil {
		logger.Error().Err(err).Msg("delivery failed")
		return res, err
	}
	return res, nil
}

// prompt snapshots the session for the host
func (e *Extension) prompt() Prompt {
	return Prompt{State: e.session.State(), Variable: e.session.Current()}
}
