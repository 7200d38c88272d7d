package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_YAML(t *testing.T) {
	input := `
server_set:
  omero.db.poolsize: 25
  omero.client.icetransports: ssl,tcp,ws

web_append:
  omero.web.server_list:
    - [localhost, 4064, omero]
`
	doc, err := Parse([]byte(input), "input.yml")
	require.NoError(t, err)
	assert.Equal(t, "input.yml", doc.Source)
	require.Len(t, doc.Sections, 2)

	sec := doc.Sections[0]
	assert.Equal(t, "server_set", sec.Name)
	assert.Equal(t, "server", sec.Base)
	assert.Equal(t, OpSet, sec.Op)
	assert.Equal(t, 25, sec.Body["omero.db.poolsize"])
	assert.Equal(t, "ssl,tcp,ws", sec.Body["omero.client.icetransports"])

	sec = doc.Sections[1]
	assert.Equal(t, OpAppend, sec.Op)
	assert.Contains(t, sec.Body, "omero.web.server_list")
}

func TestParse_JSON(t *testing.T) {
	input := `{"server_set": {"omero.db.poolsize": 25}}`

	doc, err := Parse([]byte(input), "input.json")
	require.NoError(t, err)
	require.Len(t, doc.Sections, 1)
	assert.Equal(t, OpSet, doc.Sections[0].Op)
	assert.Equal(t, float64(25), doc.Sections[0].Body["omero.db.poolsize"])
}

func TestParse_SectionsSorted(t *testing.T) {
	input := `
b_set:
  k: 2
a_set:
  k: 1
c_append:
  k: [3]
`
	doc, err := Parse([]byte(input), "input.yml")
	require.NoError(t, err)
	require.Len(t, doc.Sections, 3)
	assert.Equal(t, "a_set", doc.Sections[0].Name)
	assert.Equal(t, "b_set", doc.Sections[1].Name)
	assert.Equal(t, "c_append", doc.Sections[2].Name)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantSchema bool
		wantFormat bool
	}{
		{
			name:       "unrecognized section suffix",
			input:      "ignored_key:\n  omero.data.dir: /ignored\n",
			wantSchema: true,
		},
		{
			name:       "top level not a mapping",
			input:      "- a\n- b\n",
			wantSchema: true,
		},
		{
			name:       "top level scalar",
			input:      "just a string\n",
			wantSchema: true,
		},
		{
			name:       "section body not a mapping",
			input:      "server_set: not-a-mapping\n",
			wantSchema: true,
		},
		{
			name:       "section body is a sequence",
			input:      "server_set:\n  - a\n",
			wantSchema: true,
		},
		{
			name:       "empty document",
			input:      "",
			wantSchema: true,
		},
		{
			name:       "invalid yaml",
			input:      "a: [unclosed\n",
			wantFormat: true,
		},
		{
			name:       "truncated json",
			input:      `{"server_set": {`,
			wantFormat: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input), "bad.yml")
			require.Error(t, err)
			if tt.wantSchema {
				var schemaErr *SchemaError
				require.ErrorAs(t, err, &schemaErr)
				assert.Equal(t, "bad.yml", schemaErr.Source)
			}
			if tt.wantFormat {
				var formatErr *FormatError
				require.ErrorAs(t, err, &formatErr)
				assert.Equal(t, "bad.yml", formatErr.Source)
			}
		})
	}
}

func TestParse_SchemaErrorNamesKey(t *testing.T) {
	_, err := Parse([]byte("ignored_key:\n  k: v\n"), "bad.yml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.yml")
	assert.Contains(t, err.Error(), "ignored_key")
}

func TestParseFile_Missing(t *testing.T) {
	_, err := ParseFile("does/not/exist.yml")
	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
}
