// Package config loads the host preferences the snippet core consumes.
//
// Sources are layered: embedded defaults, then an optional TOML file
// under the XDG config home, then SNIPPETS_* environment variables.
// Every consumed key is validated against the known schema; a typo in
// a preference key is a configuration error here, not an undefined-key
// fault somewhere deep in a render.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/mikebarkmin/ulauncher-snippets/pkg/errors"
	"github.com/mikebarkmin/ulauncher-snippets/pkg/logging"
	"github.com/mikebarkmin/ulauncher-snippets/pkg/utils"
)

// Copy modes for inline output
const (
	// CopyModeAuto uses the mime-aware clipboard path when one exists
	CopyModeAuto = "auto"
	// CopyModePlain always writes plain text
	CopyModePlain = "plain"
)

// knownKeys is the full preference schema. Anything else in a config
// source is rejected.
var knownKeys = map[string]bool{
	"snippets_path":      true,
	"snippets_keyword":   true,
	"snippets_copy_mode": true,
}

// Preferences are the validated host settings
type Preferences struct {
	SnippetsPath     string `koanf:"snippets_path"`
	SnippetsKeyword  string `koanf:"snippets_keyword"`
	SnippetsCopyMode string `koanf:"snippets_copy_mode"`
}

// DefaultConfigPath is where Load looks for the user config file
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "ulauncher-snippets", "config.toml")
}

// Load reads preferences from defaults, the given config file (or the
// default location when path is empty) and the environment.
func Load(path string) (*Preferences, error) {
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "loading embedded defaults")
	}

	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
	}
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "loading %s", path)
		}
	} else if explicit {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "config file %s", path)
	}

	envKey := func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "SNIPPETS_"))
	}
	if err := k.Load(env.Provider("SNIPPETS_", ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "loading environment")
	}

	if err := validateKeys(k); err != nil {
		return nil, err
	}

	var prefs Preferences
	if err := k.Unmarshal("", &prefs); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "decoding preferences")
	}
	if err := prefs.validate(); err != nil {
		return nil, err
	}

	prefs.SnippetsPath = utils.ExpandPath(prefs.SnippetsPath)

	logger := logging.GetLogger("config")
	logger.Debug().
		Str("snippetsPath", prefs.SnippetsPath).
		Str("keyword", prefs.SnippetsKeyword).
		Str("copyMode", prefs.SnippetsCopyMode).
		Msg("preferences loaded")
	return &prefs, nil
}

// validateKeys rejects keys outside the schema so misspelled
// preferences fail loudly instead of being silently ignored.
func validateKeys(k *koanf.Koanf) error {
	for _, key := range k.Keys() {
		if !knownKeys[key] {
			return errors.Newf(errors.ErrConfigValid, "unknown preference key %q", key)
		}
	}
	return nil
}

func (p *Preferences) validate() error {
	if strings.TrimSpace(p.SnippetsPath) == "" {
		return errors.New(errors.ErrConfigValid, "snippets_path must not be empty")
	}
	if strings.TrimSpace(p.SnippetsKeyword) == "" {
		return errors.New(errors.ErrConfigValid, "snippets_keyword must not be empty")
	}
	switch p.SnippetsCopyMode {
	case CopyModeAuto, CopyModePlain:
	default:
		return errors.Newf(errors.ErrConfigValid, "snippets_copy_mode must be %q or %q, got %q",
			CopyModeAuto, CopyModePlain, p.SnippetsCopyMode)
	}
	return nil
}
