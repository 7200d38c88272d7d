package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// FromEnv reads EXTCONF_* overrides (EXTCONF_STORE, EXTCONF_ENV_PREFIX,
// EXTCONF_DEFAULTS, EXTCONF_NO_COLOR) into a settings layer.
func FromEnv() (*Settings, error) {
	s := &Settings{}
	if err := env.ParseWithOptions(s, env.Options{Prefix: "EXTCONF_"}); err != nil {
		return nil, fmt.Errorf("reading EXTCONF_ environment settings: %w", err)
	}
	return s, nil
}
