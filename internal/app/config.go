package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// Targets are the requested unit kind identifiers. Mutually exclusive
	// with All, and exactly one of the two must be set.
	Targets []string
	All     bool

	// ConfigPath optionally points at an HCL options file.
	ConfigPath string

	// RootDir is the source tree root. Empty means "git toplevel of the
	// working directory", resolved at run time.
	RootDir string
	// OutputDir overrides the output root. Relative paths resolve against
	// RootDir.
	OutputDir string

	// Debian-only pass-through options.
	DscDistro string
	DscSuffix string
	DscSigned bool

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.All && len(cfg.Targets) > 0 {
		return nil, errors.New("targets and the all flag are mutually exclusive")
	}
	if !cfg.All && len(cfg.Targets) == 0 {
		return nil, errors.New("at least one target is required, or request all")
	}

	return &cfg, nil
}
