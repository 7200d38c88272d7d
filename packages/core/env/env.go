package env

import (
	"strings"

	"github.com/extconf/extconf/packages/core/document"
)

// DefaultPrefix is the environment variable prefix scanned for config
// values.
const DefaultPrefix = "CONFIG_"

// EnvSource is the Document.Source value of the environment-derived
// document.
const EnvSource = "environment"

// FromEnviron builds the synthetic environment document from an explicit
// environ snapshot ("KEY=value" entries, as returned by os.Environ).
// Variables starting with prefix have the prefix stripped and the remainder
// decoded into a dotted config key. Environment values always have set
// semantics, so the result is a single-section set document.
func FromEnviron(environ []string, prefix string) *document.Document {
	body := make(map[string]any)
	for _, entry := range environ {
		name, value, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if len(name) <= len(prefix) || !strings.HasPrefix(name, prefix) {
			continue
		}
		body[DecodeKey(name[len(prefix):])] = value
	}

	return &document.Document{
		Source: EnvSource,
		Sections: []*document.Section{{
			Name: "environment_set",
			Base: "environment",
			Op:   document.OpSet,
			Body: body,
		}},
	}
}
