// Package config holds pipeline configuration: the five directory paths
// (inputDir, tempDir, directIndexDir, reverseTempDir, reverseDir), worker
// count, transport inbox size, and logging/metrics settings. It follows the same two-tier shape as the workers
// library's own config: a plain struct with defaults, optionally loaded
// from YAML, with functional options layered on top for overrides.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the pipeline's full configuration.
type Config struct {
	InputDir       string `yaml:"inputDir"`
	TempDir        string `yaml:"tempDir"`
	DirectIndexDir string `yaml:"directIndexDir"`
	ReverseTempDir string `yaml:"reverseTempDir"`
	ReverseDir     string `yaml:"reverseDir"`

	// Workers is the number of worker ranks (rank 0 is the coordinator).
	Workers uint `yaml:"workers"`

	// InboxBuffer sizes each rank's transport inbox channel.
	InboxBuffer uint `yaml:"inboxBuffer"`

	LogLevel  string `yaml:"logLevel"`
	LogJSON   bool   `yaml:"logJSON"`
	MetricsAddr string `yaml:"metricsAddr"`
}

// Default returns the compile-time-constant paths and modest pool sizing
// the original used, expressed here as defaults rather than constants so
// they can be overridden.
func Default() Config {
	return Config{
		InputDir:       "input-files",
		TempDir:        "temp",
		DirectIndexDir: "direct-index",
		ReverseTempDir: "reverse-index-temporary",
		ReverseDir:     "reverse-index",
		Workers:        4,
		InboxBuffer:    16,
		LogLevel:       "info",
		LogJSON:        false,
	}
}

// Load reads a YAML file at path and merges it over Default(). A missing
// file is not an error — callers that only want defaults pass a path that
// does not exist, or use Default() directly.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Validate performs lightweight invariant checks before the pipeline
// starts; directory creation failures are caught separately at runtime,
// where startup directory creation is fatal regardless.
func Validate(cfg *Config) error {
	if cfg.Workers == 0 {
		return fmt.Errorf("config: workers must be > 0")
	}
	if cfg.InputDir == "" {
		return fmt.Errorf("config: inputDir must not be empty")
	}
	return nil
}
