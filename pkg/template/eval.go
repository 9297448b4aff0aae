package template

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/uuid"

	"github.com/mikebarkmin/ulauncher-snippets/pkg/dates"
	"github.com/mikebarkmin/ulauncher-snippets/pkg/errors"
	"github.com/mikebarkmin/ulauncher-snippets/pkg/types"
)

// Context carries everything a single render may touch. It is
// assembled fresh per render and never mutated afterwards, so no state
// can bleed between renders.
type Context struct {
	Vars      func(id string) (string, error)
	Filters   types.FilterTable
	Globals   types.GlobalTable
	Clock     types.Clock
	Rand      *rand.Rand
	Clipboard types.Clipboard
}

// renderNodes evaluates a parsed template against ctx
func renderNodes(nodes []*node, ctx *Context) (string, error) {
	var b strings.Builder
	for _, n := range nodes {
		switch n.kind {
		case nodeText:
			b.WriteString(n.text)
		case nodeExpr:
			val, err := evalExpression(n.expr, ctx)
			if err != nil {
				return "", err
			}
			b.WriteString(stringify(val))
		}
	}
	return b.String(), nil
}

func evalExpression(expr *expression, ctx *Context) (interface{}, error) {
	val, err := evalPrimary(expr.primary, ctx)
	if err != nil {
		return nil, err
	}

	for _, stage := range expr.pipes {
		filter, ok := ctx.Filters[stage.name]
		if !ok {
			return nil, errors.Newf(errors.ErrFilter, "unknown filter %q", stage.name)
		}
		args, err := evalArgValues(stage.args, ctx)
		if err != nil {
			return nil, err
		}
		out, err := filter(stringify(val), args...)
		if err != nil {
			return nil, err
		}
		val = out
	}
	return val, nil
}

func evalPrimary(p *primary, ctx *Context) (interface{}, error) {
	switch p.kind {
	case primString:
		return p.str, nil
	case primInt:
		return p.num, nil
	case primList:
		items := make([]interface{}, 0, len(p.list))
		for _, item := range p.list {
			val, err := evalPrimary(item, ctx)
			if err != nil {
				return nil, err
			}
			items = append(items, val)
		}
		return items, nil
	case primIdent:
		return evalName(p.str, nil, false, ctx)
	case primCall:
		return evalName(p.str, p.args, true, ctx)
	}
	return nil, errors.Newf(errors.ErrRender, "cannot evaluate %s", p.describe())
}

// evalName resolves an identifier or call: built-ins first, then the
// global table. A bare identifier bound to a callable is invoked with
// no arguments.
func evalName(name string, args []*argument, isCall bool, ctx *Context) (interface{}, error) {
	if builtin, ok := builtins[name]; ok {
		return builtin(args, ctx)
	}

	val, ok := ctx.Globals[name]
	if !ok {
		return nil, errors.Newf(errors.ErrVarUndefined, "undefined name %q", name)
	}

	if fn, isFn := val.(types.GlobalFunc); isFn {
		argValues, err := evalArgValues(args, ctx)
		if err != nil {
			return nil, err
		}
		return fn(argValues...)
	}

	if isCall {
		return nil, errors.Newf(errors.ErrRender, "global %q is not callable", name)
	}
	return val, nil
}

func evalArgValues(args []*argument, ctx *Context) ([]interface{}, error) {
	values := make([]interface{}, 0, len(args))
	for _, arg := range args {
		if arg.name != "" {
			return nil, errors.Newf(errors.ErrRender, "unexpected keyword argument %q", arg.name)
		}
		val, err := evalPrimary(arg.value, ctx)
		if err != nil {
			return nil, err
		}
		values = append(values, val)
	}
	return values, nil
}

// ---- built-in functions ----

type builtinFunc func(args []*argument, ctx *Context) (interface{}, error)

// builtins is filled in init: the functions recurse back into the
// evaluator through their arguments, so a composite literal here would
// be an initialization cycle.
var builtins map[string]builtinFunc

func init() {
	builtins = map[string]builtinFunc{
		"vars":        builtinVars,
		"date":        builtinDate,
		"random_int":  builtinRandomInt,
		"random_item": builtinRandomItem,
		"random_uuid": builtinRandomUUID,
		"clipboard":   builtinClipboard,
	}
}

// call argument helpers: positional args in order, with keyword
// arguments matched against the declared parameter names.
func bindArgs(name string, args []*argument, ctx *Context, params ...string) (map[string]interface{}, error) {
	bound := make(map[string]interface{}, len(params))
	positional := 0

	for _, arg := range args {
		param := arg.name
		if param == "" {
			if positional >= len(params) {
				return nil, errors.Newf(errors.ErrRender, "%s: too many arguments", name)
			}
			param = params[positional]
			positional++
		} else if !contains(params, param) {
			return nil, errors.Newf(errors.ErrRender, "%s: unknown argument %q", name, param)
		}
		val, err := evalPrimary(arg.value, ctx)
		if err != nil {
			return nil, err
		}
		bound[param] = val
	}
	return bound, nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func builtinVars(args []*argument, ctx *Context) (interface{}, error) {
	bound, err := bindArgs("vars", args, ctx, "name")
	if err != nil {
		return nil, err
	}
	id, ok := bound["name"]
	if !ok {
		return nil, errors.New(errors.ErrRender, "vars: missing variable id")
	}
	if ctx.Vars == nil {
		return nil, errors.Newf(errors.ErrVarUndefined, "undefined variable %q", stringify(id))
	}
	return ctx.Vars(stringify(id))
}

func builtinDate(args []*argument, ctx *Context) (interface{}, error) {
	bound, err := bindArgs("date", args, ctx, "expression", "format")
	if err != nil {
		return nil, err
	}

	expression := stringify(bound["expression"])
	format := dates.DefaultFormat
	if f, ok := bound["format"]; ok {
		format = stringify(f)
	}
	return dates.Eval(expression, format, ctx.Clock.Now()), nil
}

func builtinRandomInt(args []*argument, ctx *Context) (interface{}, error) {
	bound, err := bindArgs("random_int", args, ctx, "min", "max")
	if err != nil {
		return nil, err
	}
	min, ok1 := toInt(bound["min"])
	max, ok2 := toInt(bound["max"])
	if !ok1 || !ok2 {
		return nil, errors.New(errors.ErrRender, "random_int: min and max must be integers")
	}
	if min > max {
		return nil, errors.Newf(errors.ErrRender, "random_int: min %d greater than max %d", min, max)
	}
	return min + ctx.Rand.Int63n(max-min+1), nil
}

func builtinRandomItem(args []*argument, ctx *Context) (interface{}, error) {
	bound, err := bindArgs("random_item", args, ctx, "list")
	if err != nil {
		return nil, err
	}
	list, ok := bound["list"].([]interface{})
	if !ok {
		return nil, errors.New(errors.ErrRender, "random_item: argument must be a list")
	}
	if len(list) == 0 {
		return nil, errors.New(errors.ErrRender, "random_item: list is empty")
	}
	return list[ctx.Rand.Intn(len(list))], nil
}

func builtinRandomUUID(args []*argument, ctx *Context) (interface{}, error) {
	if len(args) != 0 {
		return nil, errors.New(errors.ErrRender, "random_uuid takes no arguments")
	}
	// Drawing from ctx.Rand keeps renders reproducible under a fixed
	// seed.
	id, err := uuid.NewRandomFromReader(ctx.Rand)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrRender, "random_uuid")
	}
	return strings.ReplaceAll(id.String(), "-", ""), nil
}

func builtinClipboard(args []*argument, ctx *Context) (interface{}, error) {
	if len(args) != 0 {
		return nil, errors.New(errors.ErrRender, "clipboard takes no arguments")
	}
	if ctx.Clipboard == nil {
		return nil, errors.New(errors.ErrRender, "clipboard is not available")
	}
	text, err := ctx.Clipboard.Read()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrRender, "clipboard")
	}
	return text, nil
}

func toInt(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		return int64(n), float64(int64(n)) == n
	}
	return 0, false
}

func stringify(v interface{}) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case []interface{}:
		parts := make([]string, len(s))
		for i, item := range s {
			parts[i] = stringify(item)
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprintf("%v", v)
	}
}
