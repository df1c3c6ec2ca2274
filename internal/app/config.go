package app

import (
	"errors"
	"fmt"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ManifestPath string // hcl file or directory of hcl files

	Name   string // graph name stamped into exported bundles
	Export string // "json" or "dot"
	Out    string // output file path, empty means stdout
	Check  bool   // run a stub build to validate the graphs

	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.ManifestPath == "" {
		return nil, errors.New("ManifestPath is a required configuration field and cannot be empty")
	}

	switch cfg.Export {
	case "json", "dot":
	default:
		return nil, fmt.Errorf("invalid export format %q: must be 'json' or 'dot'", cfg.Export)
	}

	if cfg.Name == "" {
		cfg.Name = "wirebox"
	}

	return &cfg, nil
}
