// Package plugins loads directory-scoped filter and global extensions.
//
// A snippet root may carry a filters.js and a globals.js. Each is
// evaluated in its own embedded ECMAScript interpreter (goja), a
// deliberately restricted capability: scripts get no host access beyond
// the values they compute. filters.js must define a `filters` object of
// name -> function; globals.js a `globals` object of name -> value or
// function. Both resources are optional, but a broken one is a
// caller-visible configuration error, not something to swallow like a
// malformed snippet file.
package plugins

import (
	"os"
	"path/filepath"

	"github.com/dop251/goja"

	"github.com/mikebarkmin/ulauncher-snippets/pkg/errors"
	"github.com/mikebarkmin/ulauncher-snippets/pkg/logging"
	"github.com/mikebarkmin/ulauncher-snippets/pkg/types"
)

const (
	filtersFile = "filters.js"
	globalsFile = "globals.js"
)

// Registry loads plugin resources from snippet roots
type Registry struct {
	fs types.FS
}

// New creates a Registry reading through the given filesystem
func New(fs types.FS) *Registry {
	return &Registry{fs: fs}
}

// Load reads the optional filters.js and globals.js under root.
// Missing resources yield empty tables; broken ones yield a
// PLUGIN_LOAD error.
func (r *Registry) Load(root string) (types.FilterTable, types.GlobalTable, error) {
	logger := logging.GetLogger("plugins")

	filterTable := types.FilterTable{}
	globalTable := types.GlobalTable{}

	if src, ok := r.read(filepath.Join(root, filtersFile)); ok {
		table, err := loadFilters(src)
		if err != nil {
			return nil, nil, err
		}
		filterTable = table
		logger.Debug().Int("count", len(table)).Str("root", root).Msg("loaded plugin filters")
	}

	if src, ok := r.read(filepath.Join(root, globalsFile)); ok {
		table, err := loadGlobals(src)
		if err != nil {
			return nil, nil, err
		}
		globalTable = table
		logger.Debug().Int("count", len(table)).Str("root", root).Msg("loaded plugin globals")
	}

	return filterTable, globalTable, nil
}

func (r *Registry) read(path string) (string, bool) {
	data, err := r.fs.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger := logging.GetLogger("plugins")
			logger.Warn().Err(err).Str("path", path).Msg("plugin resource unreadable")
		}
		return "", false
	}
	return string(data), true
}

func loadFilters(src string) (types.FilterTable, error) {
	vm := goja.New()
	obj, err := evalExport(vm, src, filtersFile, "filters")
	if err != nil {
		return nil, err
	}

	table := types.FilterTable{}
	for _, key := range obj.Keys() {
		fn, ok := goja.AssertFunction(obj.Get(key))
		if !ok {
			return nil, errors.Newf(errors.ErrPluginLoad, "%s: filter %q is not a function", filtersFile, key)
		}
		table[key] = newJSFilter(vm, key, fn)
	}
	return table, nil
}

func loadGlobals(src string) (types.GlobalTable, error) {
	vm := goja.New()
	obj, err := evalExport(vm, src, globalsFile, "globals")
	if err != nil {
		return nil, err
	}

	table := types.GlobalTable{}
	for _, key := range obj.Keys() {
		val := obj.Get(key)
		if fn, ok := goja.AssertFunction(val); ok {
			table[key] = newJSGlobal(vm, key, fn)
			continue
		}
		table[key] = val.Export()
	}
	return table, nil
}

// evalExport runs src and returns the named top-level object
func evalExport(vm *goja.Runtime, src, file, name string) (*goja.Object, error) {
	if _, err := vm.RunScript(file, src); err != nil {
		return nil, errors.Wrapf(err, errors.ErrPluginLoad, "evaluating %s", file)
	}

	val := vm.Get(name)
	if val == nil || goja.IsUndefined(val) || goja.IsNull(val) {
		return nil, errors.Newf(errors.ErrPluginLoad, "%s must define a %q object", file, name)
	}
	return val.ToObject(vm), nil
}

func newJSFilter(vm *goja.Runtime, name string, fn goja.Callable) types.FilterFunc {
	return func(value string, args ...interface{}) (string, error) {
		jsArgs := make([]goja.Value, 0, len(args)+1)
		jsArgs = append(jsArgs, vm.ToValue(value))
		for _, arg := range args {
			jsArgs = append(jsArgs, vm.ToValue(arg))
		}

		res, err := fn(goja.Undefined(), jsArgs...)
		if err != nil {
			return "", errors.Wrapf(err, errors.ErrFilter, "filter %q", name)
		}
		return res.String(), nil
	}
}

func newJSGlobal(vm *goja.Runtime, name string, fn goja.Callable) types.GlobalFunc {
	return func(args ...interface{}) (interface{}, error) {
		jsArgs := make([]goja.Value, 0, len(args))
		for _, arg := range args {
			jsArgs = append(jsArgs, vm.ToValue(arg))
		}

		res, err := fn(goja.Undefined(), jsArgs...)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrRender, "global %q", name)
		}
		return res.Export(), nil
	}
}
