package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory(t *testing.T) {
	m := NewMemory()

	_, ok, err := m.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.SetMany(map[string]any{
		"b.key": []any{1, 2},
		"a.key": "value",
	}))

	v, ok, err := m.Get("a.key")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "value", v)

	keys, err := m.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.key", "b.key"}, keys)

	require.NoError(t, m.Reset())
	keys, err = m.Keys()
	require.NoError(t, err)
	assert.Empty(t, keys)

	require.NoError(t, m.Close())
}
