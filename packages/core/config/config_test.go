package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_Precedence(t *testing.T) {
	flags := &Settings{Store: "sqlite:flag.db"}
	env := &Settings{Store: "sqlite:env.db", Defaults: "env-defaults.yml"}
	file := &Settings{EnvPrefix: "MYAPP_", Defaults: "file-defaults.yml"}

	resolved, err := Resolve(flags, env, file, DefaultSettings())
	require.NoError(t, err)

	assert.Equal(t, "sqlite:flag.db", resolved.Store)
	assert.Equal(t, "env-defaults.yml", resolved.Defaults)
	assert.Equal(t, "MYAPP_", resolved.EnvPrefix)
}

func TestResolve_FallsThroughToDefaults(t *testing.T) {
	resolved, err := Resolve(&Settings{}, nil, DefaultSettings())
	require.NoError(t, err)
	assert.Equal(t, "CONFIG_", resolved.EnvPrefix)
	assert.Empty(t, resolved.Store)
	assert.False(t, resolved.GetNoColor())
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".extconfrc")
	content := `{"store": "sqlite:/var/lib/config.db", "envPrefix": "APP_", "noColor": true}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sqlite:/var/lib/config.db", s.Store)
	assert.Equal(t, "APP_", s.EnvPrefix)
	assert.True(t, s.GetNoColor())
}

func TestLoad_MissingIsNotAnError(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	s, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, &Settings{}, s)
}

func TestLoad_BadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".extconfrc")
	require.NoError(t, os.WriteFile(path, []byte("{bad"), 0644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("EXTCONF_STORE", "sqlite:/tmp/x.db")
	t.Setenv("EXTCONF_ENV_PREFIX", "OTHER_")

	s, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "sqlite:/tmp/x.db", s.Store)
	assert.Equal(t, "OTHER_", s.EnvPrefix)
}
