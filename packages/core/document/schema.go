package document

import (
	"github.com/xeipuuv/gojsonschema"
)

// documentSchema describes the shape every config document must have: a
// mapping whose keys end in _set or _append, each holding a mapping of
// config key to value.
const documentSchema = `{
	"type": "object",
	"patternProperties": {
		"^.*_(set|append)$": {"type": "object"}
	},
	"additionalProperties": false
}`

var schemaLoader = gojsonschema.NewStringLoader(documentSchema)

// checkShape validates the decoded top level against the document schema.
// Classification and body checks in Parse produce more precise errors for
// the common cases; the schema is the structural gate that catches the rest
// (for example non-string nested values that cannot round-trip as JSON).
func checkShape(top map[string]any, source string) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewGoLoader(top))
	if err != nil {
		return &FormatError{Source: source, Err: err}
	}
	if result.Valid() {
		return nil
	}
	first := result.Errors()[0]
	key := first.Field()
	if key == "(root)" {
		// Root-level failures (e.g. an unsuffixed section name) embed the
		// offending property in the description instead.
		key = ""
	}
	return &SchemaError{
		Source: source,
		Key:    key,
		Reason: first.Description(),
	}
}
