package config

import (
	"fmt"

	"go.uber.org/zap/zapcore"
)

// ApplicationConfiguration contains settings of the command line tool
// itself rather than of the codec.
type ApplicationConfiguration struct {
	// LogLevel is one of the zap levels, "info" by default.
	LogLevel string `yaml:"LogLevel"`
	// LogPath is a file to write logs into, logs go to stderr if empty.
	LogPath string `yaml:"LogPath"`
	// LogEncoding is either "console" or "json".
	LogEncoding string `yaml:"LogEncoding"`
}

// Validate checks ApplicationConfiguration for internal consistency and returns
// an error if any invalid settings are found.
func (a *ApplicationConfiguration) Validate() error {
	if len(a.LogLevel) > 0 {
		if _, err := zapcore.ParseLevel(a.LogLevel); err != nil {
			return fmt.Errorf("invalid LogLevel: %w", err)
		}
	}
	switch a.LogEncoding {
	case "", "console", "json":
	default:
		return fmt.Errorf("invalid LogEncoding: %q", a.LogEncoding)
	}
	return nil
}
