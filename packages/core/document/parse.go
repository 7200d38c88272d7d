package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// Parse decodes data as JSON or YAML and builds a Document. Source is used
// in error messages only. Sections are ordered lexicographically by name,
// which is the order the merger applies them in.
func Parse(data []byte, source string) (*Document, error) {
	var raw any
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && gjson.ValidBytes(trimmed) {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, &FormatError{Source: source, Err: err}
		}
	} else {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, &FormatError{Source: source, Err: err}
		}
	}

	top, ok := raw.(map[string]any)
	if !ok {
		return nil, &SchemaError{
			Source: source,
			Reason: fmt.Sprintf("top level must be a mapping, got %T", raw),
		}
	}

	if err := checkShape(top, source); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(top))
	for name := range top {
		names = append(names, name)
	}
	sort.Strings(names)

	doc := &Document{Source: source}
	for _, name := range names {
		base, op, err := ClassifySection(name)
		if err != nil {
			return nil, &SchemaError{Source: source, Key: name, Reason: err.Error()}
		}
		body, ok := top[name].(map[string]any)
		if !ok {
			return nil, &SchemaError{
				Source: source,
				Key:    name,
				Reason: fmt.Sprintf("section body must be a mapping, got %T", top[name]),
			}
		}
		doc.Sections = append(doc.Sections, &Section{
			Name: name,
			Base: base,
			Op:   op,
			Body: body,
		})
	}
	return doc, nil
}

// ParseFile reads and parses a single document file.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FormatError{Source: path, Err: err}
	}
	return Parse(data, path)
}
