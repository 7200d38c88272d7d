// Package config handles the tool's own settings.
//
// It provides functionality for:
//   - Loading settings from .extconfrc style files
//   - EXTCONF_* environment variable overrides
//   - Layered resolution with flag > env > file > default precedence
package config
