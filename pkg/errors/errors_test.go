package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(ErrSnippetParse, "bad front matter")
	assert.Equal(t, ErrSnippetParse, err.Code)
	assert.Equal(t, "bad front matter", err.Message)
	assert.Equal(t, "[SNIPPET_PARSE] bad front matter", err.Error())
}

func TestNewf(t *testing.T) {
	err := Newf(ErrVarUndefined, "undefined variable %q", "name")
	assert.Equal(t, `[VAR_UNDEFINED] undefined variable "name"`, err.Error())
}

func TestWrap(t *testing.T) {
	inner := fmt.Errorf("yaml: line 3: mapping values are not allowed")
	err := Wrap(inner, ErrSnippetParse, "parsing header")
	require.NotNil(t, err)
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "parsing header")
	assert.Contains(t, err.Error(), "line 3")

	assert.Nil(t, Wrap(nil, ErrSnippetParse, "no error"))
}

func TestIs_MatchesOnCode(t *testing.T) {
	a := New(ErrFileExists, "target exists")
	b := New(ErrFileExists, "different message")
	c := New(ErrDelivery, "clipboard failed")

	assert.True(t, errors.Is(a, b))
	assert.False(t, errors.Is(a, c))
}

func TestIsErrorCode(t *testing.T) {
	err := Newf(ErrPluginLoad, "filters.js: unexpected token")
	wrapped := fmt.Errorf("render failed: %w", err)

	assert.True(t, IsErrorCode(wrapped, ErrPluginLoad))
	assert.False(t, IsErrorCode(wrapped, ErrRender))
	assert.False(t, IsErrorCode(errors.New("plain"), ErrPluginLoad))
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, ErrRender, GetErrorCode(New(ErrRender, "x")))
	assert.Equal(t, ErrUnknown, GetErrorCode(errors.New("plain")))
}

func TestWithDetail(t *testing.T) {
	err := New(ErrSnippetParse, "broken").WithDetail("path", "react/component.j2")
	details := GetErrorDetails(err)
	require.NotNil(t, details)
	assert.Equal(t, "react/component.j2", details["path"])
}
