package document

import "fmt"

// FormatError reports content that could not be parsed as YAML or JSON, or
// a template that could not be rendered.
type FormatError struct {
	Source string
	Err    error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.Source, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// SchemaError reports a structurally invalid document: a non-mapping top
// level, a section name without a recognized suffix, or a section body that
// is not a mapping. Key names the offending top-level section when known.
type SchemaError struct {
	Source string
	Key    string
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("invalid document %s: %s", e.Source, e.Reason)
	}
	return fmt.Sprintf("invalid document %s: key %q: %s", e.Source, e.Key, e.Reason)
}
