package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDefaults(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "defaults.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeDefaults(t, `
omero.web.server_list:
  - [localhost, 4064, omero]
omero.web.ui.top_links:
  Data: webindex
`)

	d, err := LoadDefaults(path)
	require.NoError(t, err)

	v, ok := d.Default("omero.web.server_list")
	require.True(t, ok)
	assert.Equal(t, []any{[]any{"localhost", 4064, "omero"}}, v)

	v, ok = d.Default("omero.web.ui.top_links")
	require.True(t, ok)
	assert.Equal(t, map[string]any{"Data": "webindex"}, v)

	_, ok = d.Default("unknown.key")
	assert.False(t, ok)
}

func TestLoadDefaults_Errors(t *testing.T) {
	_, err := LoadDefaults(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)

	path := writeDefaults(t, "- not\n- a\n- mapping\n")
	_, err = LoadDefaults(path)
	require.Error(t, err)
}
