package document

import (
	"fmt"
	"strings"
)

// Operation determines how a section's entries are applied to the store.
type Operation int

const (
	// OpSet overwrites the current value for each key.
	OpSet Operation = iota

	// OpAppend combines the current value with the new one:
	// sequences concatenate, mappings union with override.
	OpAppend
)

func (o Operation) String() string {
	switch o {
	case OpSet:
		return "set"
	case OpAppend:
		return "append"
	default:
		return "unknown"
	}
}

// Section is one top-level entry of a document: a named group of
// config-key/value pairs plus the operation derived from the name suffix.
type Section struct {
	// Name is the full section name as written, including the suffix.
	Name string

	// Base is the section name with the operation suffix stripped.
	Base string

	Op   Operation
	Body map[string]any
}

// Document is one parsed config source: a file, or the synthetic document
// built from environment variables. Sections are held in application order
// (lexicographic by name for file documents) and are immutable after parse.
type Document struct {
	// Source identifies the origin for error messages: a file path, or
	// "environment" for the env-derived document.
	Source string

	Sections []*Section
}

const (
	suffixSet    = "_set"
	suffixAppend = "_append"
)

// ClassifySection splits a section name into its base name and operation.
// Names ending in "_append" are append sections, names ending in "_set" are
// set sections; anything else is rejected.
func ClassifySection(name string) (base string, op Operation, err error) {
	if base, ok := strings.CutSuffix(name, suffixAppend); ok {
		return base, OpAppend, nil
	}
	if base, ok := strings.CutSuffix(name, suffixSet); ok {
		return base, OpSet, nil
	}
	return "", 0, fmt.Errorf("section %q has no _set or _append suffix", name)
}
