package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"dario.cat/mergo"
)

// Settings are the tool's own knobs, as opposed to the configuration being
// merged. Sources, highest precedence first: command-line flags, EXTCONF_*
// environment variables, an rc file, built-in defaults.
type Settings struct {
	// Store is the DSN of the target store ("memory:", "sqlite:/path", or
	// a bare path).
	Store string `json:"store,omitempty" env:"STORE"`

	// EnvPrefix selects which environment variables --fromenv scans.
	EnvPrefix string `json:"envPrefix,omitempty" env:"ENV_PREFIX"`

	// Defaults is an optional YAML/JSON file of fallback values for
	// append targets absent from the store.
	Defaults string `json:"defaults,omitempty" env:"DEFAULTS"`

	NoColor *bool `json:"noColor,omitempty" env:"NO_COLOR"`
}

// SettingsFilenames contains the rc file names searched in order.
var SettingsFilenames = []string{
	".extconfrc",
	".extconfrc.json",
	"extconf.config.json",
}

// DefaultSettings returns the built-in defaults.
func DefaultSettings() *Settings {
	return &Settings{
		EnvPrefix: "CONFIG_",
	}
}

// Load reads settings from the given rc file, or searches the current
// directory for one of SettingsFilenames when path is empty. A missing rc
// file is not an error; the zero Settings is returned.
func Load(path string) (*Settings, error) {
	if path != "" {
		return loadFile(path)
	}
	for _, name := range SettingsFilenames {
		candidate := filepath.Join(".", name)
		if _, err := os.Stat(candidate); err == nil {
			return loadFile(candidate)
		}
	}
	return &Settings{}, nil
}

func loadFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading settings %s: %w", path, err)
	}
	s := &Settings{}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parsing settings %s: %w", path, err)
	}
	return s, nil
}

// GetNoColor returns the no-color setting, defaulting to false.
func (s *Settings) GetNoColor() bool {
	return s.NoColor != nil && *s.NoColor
}

// Resolve merges settings layers, earlier layers taking precedence. Zero
// fields fall through to the next layer.
func Resolve(layers ...*Settings) (*Settings, error) {
	resolved := &Settings{}
	for _, layer := range layers {
		if layer == nil {
			continue
		}
		if err := mergo.Merge(resolved, layer); err != nil {
			return nil, fmt.Errorf("merging settings: %w", err)
		}
	}
	return resolved, nil
}
