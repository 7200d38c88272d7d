package store

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileDefaults supplies append-target fallback values from a plain YAML or
// JSON mapping of dotted key to value. It stands in for framework defaults:
// an append to a key the store has never seen can still succeed when the
// defaults file knows its baseline value.
type FileDefaults struct {
	values map[string]any
}

// LoadDefaults reads a defaults file. Only sequence and mapping values are
// useful as append targets, but scalars are accepted and simply never
// matched by an append.
func LoadDefaults(path string) (*FileDefaults, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading defaults %s: %w", path, err)
	}
	var values map[string]any
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parsing defaults %s: %w", path, err)
	}
	return &FileDefaults{values: values}, nil
}

func (d *FileDefaults) Default(key string) (any, bool) {
	v, ok := d.values[key]
	return v, ok
}
