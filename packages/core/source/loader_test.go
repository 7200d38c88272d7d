package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/extconf/extconf/packages/core/document"
	"github.com/extconf/extconf/packages/template"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFile_YAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "input.yml", "server_set:\n  omero.db.poolsize: 25\n")

	doc, err := New().LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, doc.Source)
	require.Len(t, doc.Sections, 1)
	assert.Equal(t, document.OpSet, doc.Sections[0].Op)
}

func TestLoadFile_JSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), "input.json", `{"server_set": {"omero.db.poolsize": 25}}`)

	doc, err := New().LoadFile(path)
	require.NoError(t, err)
	require.Len(t, doc.Sections, 1)
}

func TestLoadFile_Template(t *testing.T) {
	content := "server_set:\n  omero.db.poolsize: {{ poolsize|default:\"25\" }}\n"
	path := writeFile(t, t.TempDir(), "input.yml.j2", content)

	doc, err := New(WithRenderer(template.NewJinja())).LoadFile(path)
	require.NoError(t, err)
	require.Len(t, doc.Sections, 1)
	assert.Equal(t, 25, doc.Sections[0].Body["omero.db.poolsize"])
}

func TestLoadFile_TemplateWithoutRenderer(t *testing.T) {
	path := writeFile(t, t.TempDir(), "input.yml.j2", "server_set: {}\n")

	_, err := New().LoadFile(path)
	var formatErr *document.FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Contains(t, err.Error(), "template engine")
}

func TestLoadFile_BadTemplate(t *testing.T) {
	path := writeFile(t, t.TempDir(), "input.yml.j2", "{% if %}")

	_, err := New(WithRenderer(template.NewJinja())).LoadFile(path)
	var formatErr *document.FormatError
	require.ErrorAs(t, err, &formatErr)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := New().LoadFile("does/not/exist.yml")
	var formatErr *document.FormatError
	require.ErrorAs(t, err, &formatErr)
}

func TestLoadEnv(t *testing.T) {
	environ := []string{"CONFIG_omero_data_dir=/data", "HOME=/root"}

	doc := New().LoadEnv(environ, "CONFIG_")
	require.Len(t, doc.Sections, 1)
	assert.Equal(t, map[string]any{"omero.data.dir": "/data"}, doc.Sections[0].Body)
}

func TestExpandGlobs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "20-b.yml", "x_set: {}\n")
	writeFile(t, dir, "10-a.yml", "x_set: {}\n")
	writeFile(t, dir, "ignore.txt", "")

	files, err := ExpandGlobs([]string{filepath.Join(dir, "*.yml")}, true)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, filepath.Join(dir, "10-a.yml"), files[0])
	assert.Equal(t, filepath.Join(dir, "20-b.yml"), files[1])
}

func TestExpandGlobs_Disabled(t *testing.T) {
	args := []string{"a.yml", "b.yml"}
	files, err := ExpandGlobs(args, false)
	require.NoError(t, err)
	assert.Equal(t, args, files)
}

func TestExpandGlobs_BadPattern(t *testing.T) {
	_, err := ExpandGlobs([]string{"[unclosed"}, true)
	require.Error(t, err)
}
