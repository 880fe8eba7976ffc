package scoped

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_DefaultScope(t *testing.T) {
	s := DefaultScope()
	assert.True(t, s.IsDefault())

	_, ok := s.Name()
	assert.False(t, ok)

	_, ok = s.ID()
	assert.False(t, ok)

	assert.Equal(t, "<default>", s.String())
}

func Test_NamedScope(t *testing.T) {
	s, err := Named("tenant")
	require.NoError(t, err)
	assert.False(t, s.IsDefault())

	name, ok := s.Name()
	require.True(t, ok)
	assert.Equal(t, "tenant", name)

	id, ok := s.ID()
	require.True(t, ok)
	assert.Equal(t, ScopeID("tenant"), id)
	assert.Equal(t, "tenant", s.String())
}

func Test_NamedScope_EmptyName(t *testing.T) {
	_, err := Named("")
	assert.ErrorIs(t, err, ErrEmptyScope)
}

func Test_FromName(t *testing.T) {
	assert.True(t, FromName("").IsDefault())

	s := FromName("tenant")
	name, ok := s.Name()
	require.True(t, ok)
	assert.Equal(t, "tenant", name)
}

func Test_ScopeID_Deterministic(t *testing.T) {
	a := ScopeID("tenant")
	b := ScopeID("tenant")
	assert.Equal(t, a, b)

	// Different names should (almost always) hash differently.
	assert.NotEqual(t, ScopeID("tenant"), ScopeID("other"))
}

func Test_ScopeEquality(t *testing.T) {
	a, err := Named("tenant")
	require.NoError(t, err)
	b, err := Named("tenant")
	require.NoError(t, err)
	c, err := Named("other")
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEqual(t, a, DefaultScope())
	assert.Equal(t, DefaultScope(), Scope{})
}
