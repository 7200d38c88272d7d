package cmd

import (
	"errors"

	"github.com/extconf/extconf/packages/core/document"
	"github.com/extconf/extconf/packages/core/merge"
	"github.com/extconf/extconf/packages/store"
)

// Exit codes for the extconf CLI
const (
	// ExitSuccess indicates the merge was applied
	ExitSuccess = 0

	// ExitError indicates a generic failure
	ExitError = 1

	// ExitFormatError indicates unparseable YAML/JSON or a bad template
	ExitFormatError = 2

	// ExitSchemaError indicates a structurally invalid document
	ExitSchemaError = 3

	// ExitAppendError indicates an append that could not be applied
	ExitAppendError = 4

	// ExitStoreError indicates the store rejected a read or write
	ExitStoreError = 5

	// ExitUsageError indicates invalid CLI usage
	ExitUsageError = 64
)

func exitCodeFor(err error) int {
	var (
		formatErr *document.FormatError
		schemaErr *document.SchemaError
		appendErr *merge.AppendError
		storeErr  *store.Error
	)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &formatErr):
		return ExitFormatError
	case errors.As(err, &schemaErr):
		return ExitSchemaError
	case errors.As(err, &appendErr):
		return ExitAppendError
	case errors.As(err, &storeErr):
		return ExitStoreError
	default:
		return ExitError
	}
}
