package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTemplate_TextOnly(t *testing.T) {
	nodes, err := parseTemplate("no expressions here")
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, nodeText, nodes[0].kind)
	assert.Equal(t, "no expressions here", nodes[0].text)
}

func TestParseTemplate_MixedNodes(t *testing.T) {
	nodes, err := parseTemplate(`Hello {{ vars("who") }}, bye`)
	require.NoError(t, err)
	require.Len(t, nodes, 3)
	assert.Equal(t, nodeText, nodes[0].kind)
	assert.Equal(t, nodeExpr, nodes[1].kind)
	assert.Equal(t, nodeText, nodes[2].kind)
	assert.Equal(t, ", bye", nodes[2].text)
}

func TestParseTemplate_Unclosed(t *testing.T) {
	_, err := parseTemplate("broken {{ vars(")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unclosed")
}

func TestParseTemplate_BracesInsideString(t *testing.T) {
	nodes, err := parseTemplate(`{{ "literal }} inside" }}`)
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	require.Equal(t, nodeExpr, nodes[0].kind)
	assert.Equal(t, "literal }} inside", nodes[0].expr.primary.str)
}

func TestParseExpression_Pipes(t *testing.T) {
	expr, err := parseExpression(`vars("title") | camelcase | replace_with_symbol("*")`)
	require.NoError(t, err)
	assert.Equal(t, primCall, expr.primary.kind)
	assert.Equal(t, "vars", expr.primary.str)
	require.Len(t, expr.pipes, 2)
	assert.Equal(t, "camelcase", expr.pipes[0].name)
	assert.Equal(t, "replace_with_symbol", expr.pipes[1].name)
	require.Len(t, expr.pipes[1].args, 1)
	assert.Equal(t, "*", expr.pipes[1].args[0].value.str)
}

func TestParseExpression_KeywordArgs(t *testing.T) {
	expr, err := parseExpression(`date("next friday", format="%Y")`)
	require.NoError(t, err)
	require.Len(t, expr.primary.args, 2)
	assert.Empty(t, expr.primary.args[0].name)
	assert.Equal(t, "format", expr.primary.args[1].name)
	assert.Equal(t, "%Y", expr.primary.args[1].value.str)
}

func TestParseExpression_ListLiteral(t *testing.T) {
	expr, err := parseExpression(`random_item(["heads", "tails"])`)
	require.NoError(t, err)
	require.Len(t, expr.primary.args, 1)
	list := expr.primary.args[0].value
	assert.Equal(t, primList, list.kind)
	require.Len(t, list.list, 2)
	assert.Equal(t, "heads", list.list[0].str)
}

func TestParseExpression_NestedCallArgument(t *testing.T) {
	expr, err := parseExpression(`date(vars("when"))`)
	require.NoError(t, err)
	require.Len(t, expr.primary.args, 1)
	nested := expr.primary.args[0].value
	assert.Equal(t, primCall, nested.kind)
	assert.Equal(t, "vars", nested.str)
}

func TestParseExpression_Numbers(t *testing.T) {
	expr, err := parseExpression(`random_int(-5, 10)`)
	require.NoError(t, err)
	require.Len(t, expr.primary.args, 2)
	assert.Equal(t, int64(-5), expr.primary.args[0].value.num)
	assert.Equal(t, int64(10), expr.primary.args[1].value.num)
}

func TestParseExpression_StringEscapes(t *testing.T) {
	expr, err := parseExpression(`"line\none"`)
	require.NoError(t, err)
	assert.Equal(t, "line\none", expr.primary.str)
}

func TestParseExpression_Errors(t *testing.T) {
	for _, src := range []string{
		``,
		`|`,
		`vars("x") |`,
		`vars("x") extra`,
		`[1, 2`,
		`"unterminated`,
		`fn(a=)`,
		`@bad`,
	} {
		_, err := parseExpression(src)
		assert.Error(t, err, "expected parse failure for %q", src)
	}
}
