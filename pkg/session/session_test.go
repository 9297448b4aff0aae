package session

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikebarkmin/ulauncher-snippets/pkg/errors"
	"github.com/mikebarkmin/ulauncher-snippets/pkg/types"
)

func defWithVars(specs ...*types.VariableSpec) *types.SnippetDefinition {
	vars := types.NewVarMap()
	for _, spec := range specs {
		vars.Add(spec)
	}
	return &types.SnippetDefinition{Name: "test", Vars: vars, Body: "body"}
}

func TestSelect_NoVariablesGoesStraightToReady(t *testing.T) {
	s := New()
	require.NoError(t, s.Select(defWithVars()))
	assert.Equal(t, StateReady, s.State())
	assert.Nil(t, s.Current())
}

func TestSelect_EntersCollectingOnFirstVariable(t *testing.T) {
	s := New()
	def := defWithVars(
		&types.VariableSpec{ID: "first", Label: "First"},
		&types.VariableSpec{ID: "second", Label: "Second"},
	)
	require.NoError(t, s.Select(def))

	assert.Equal(t, StateCollectingVariable, s.State())
	require.NotNil(t, s.Current())
	assert.Equal(t, "first", s.Current().ID)
}

func TestSelect_OnlyValidFromSelecting(t *testing.T) {
	s := New()
	require.NoError(t, s.Select(defWithVars(&types.VariableSpec{ID: "v"})))

	err := s.Select(defWithVars())
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrState))
}

func TestSubmit_WalksVariablesInDeclaredOrder(t *testing.T) {
	const n = 4
	specs := make([]*types.VariableSpec, n)
	for i := range specs {
		specs[i] = &types.VariableSpec{ID: fmt.Sprintf("var%d", i), Label: fmt.Sprintf("Variable %d", i)}
	}
	s := New()
	require.NoError(t, s.Select(defWithVars(specs...)))

	var visited []string
	for i := 0; i < n; i++ {
		require.Equal(t, StateCollectingVariable, s.State())
		visited = append(visited, s.Current().ID)
		require.NoError(t, s.Submit(fmt.Sprintf("value %d", i)))
	}

	assert.Equal(t, []string{"var0", "var1", "var2", "var3"}, visited)
	assert.Equal(t, StateReady, s.State())
}

func TestSubmit_TrimsInput(t *testing.T) {
	s := New()
	spec := &types.VariableSpec{ID: "v"}
	require.NoError(t, s.Select(defWithVars(spec)))
	require.NoError(t, s.Submit("  padded  "))

	assert.Equal(t, "padded", spec.Value)
}

func TestSubmit_SentinelAssignsDefault(t *testing.T) {
	s := New()
	spec := &types.VariableSpec{ID: "v", Default: "the default"}
	require.NoError(t, s.Select(defWithVars(spec)))
	require.NoError(t, s.Submit(" - "))

	assert.True(t, spec.IsSet)
	assert.Equal(t, "the default", spec.Value)
}

func TestSubmit_OnlyValidWhileCollecting(t *testing.T) {
	s := New()
	err := s.Submit("early")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrState))

	require.NoError(t, s.Select(defWithVars()))
	err = s.Submit("late")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrState))
}

func TestCancel_ClearsEverything(t *testing.T) {
	s := New()
	first := &types.VariableSpec{ID: "a"}
	second := &types.VariableSpec{ID: "b"}
	def := defWithVars(first, second)

	require.NoError(t, s.Select(def))
	require.NoError(t, s.Submit("assigned"))
	s.Cancel()

	assert.Equal(t, StateSelecting, s.State())
	assert.Nil(t, s.Definition())
	assert.Nil(t, s.Current())
	assert.False(t, first.IsSet)
	assert.Empty(t, first.Value)
}

func TestCancel_FromSelectingIsHarmless(t *testing.T) {
	s := New()
	s.Cancel()
	assert.Equal(t, StateSelecting, s.State())
}

func TestComplete_ResetsOnSuccess(t *testing.T) {
	s := New()
	spec := &types.VariableSpec{ID: "v"}
	require.NoError(t, s.Select(defWithVars(spec)))
	require.NoError(t, s.Submit("value"))

	res, err := s.Complete(func(def *types.SnippetDefinition) (types.RenderResult, error) {
		return types.RenderResult{MimeType: types.MimePlain, Content: "rendered"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "rendered", res.Content)

	assert.Equal(t, StateSelecting, s.State())
	assert.Nil(t, s.Definition())
	assert.False(t, spec.IsSet, "values must be cleared after completion")
}

func TestComplete_ResetsOnFailure(t *testing.T) {
	s := New()
	spec := &types.VariableSpec{ID: "v"}
	require.NoError(t, s.Select(defWithVars(spec)))
	require.NoError(t, s.Submit("value"))

	_, err := s.Complete(func(def *types.SnippetDefinition) (types.RenderResult, error) {
		return types.RenderResult{}, errors.New(errors.ErrRender, "boom")
	})
	require.Error(t, err)

	assert.Equal(t, StateSelecting, s.State())
	assert.False(t, spec.IsSet, "a failed render must not leave stale values")
}

func TestComplete_OnlyValidFromReady(t *testing.T) {
	s := New()
	_, err := s.Complete(func(def *types.SnippetDefinition) (types.RenderResult, error) {
		return types.RenderResult{}, nil
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrState))
}

func TestSession_NoLeakBetweenSelections(t *testing.T) {
	s := New()
	spec := &types.VariableSpec{ID: "v", Default: "dft"}
	def := defWithVars(spec)

	require.NoError(t, s.Select(def))
	require.NoError(t, s.Submit("first run"))
	_, err := s.Complete(func(*types.SnippetDefinition) (types.RenderResult, error) {
		return types.RenderResult{}, nil
	})
	require.NoError(t, err)

	// Selecting the same definition again must prompt from scratch.
	require.NoError(t, s.Select(def))
	assert.Equal(t, StateCollectingVariable, s.State())
	assert.Equal(t, "v", s.Current().ID)
	assert.Empty(t, s.Current().Value)
}
