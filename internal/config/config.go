// Package config provides the configuration schema, loader, and voice source
// registry for voicelist.
package config

import "github.com/MrWong99/voicelist/internal/lister"

// LogLevel controls log verbosity.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Source names understood by the built-in registry.
const (
	SourceSystem  = "system"
	SourceCatalog = "catalog"
)

// Config is the root configuration structure.
// It is typically loaded from a YAML file using [Load] or [LoadFromReader].
type Config struct {
	// LogLevel controls diagnostic verbosity on stderr.
	LogLevel LogLevel `yaml:"log_level"`

	Source SourceConfig `yaml:"source"`
	Output OutputConfig `yaml:"output"`

	// Metrics dumps the collected metrics in Prometheus text format to stderr
	// when the run ends.
	Metrics bool `yaml:"metrics"`
}

// SourceConfig selects the voice database to list.
type SourceConfig struct {
	// Name selects the registered source (e.g., "system", "catalog").
	Name string `yaml:"name"`

	// Path is the catalogue file for the "catalog" source.
	Path string `yaml:"path"`
}

// OutputConfig controls which voices are printed and how.
type OutputConfig struct {
	// Threshold is the minimum desirability for the detailed block.
	Threshold int `yaml:"threshold"`

	// Language restricts output to voices of one base language (BCP-47,
	// e.g., "en"). Empty lists every voice.
	Language string `yaml:"language"`
}

// Default returns the configuration used when no file is given: the system
// voice database, threshold 13400, no filter.
func Default() *Config {
	return &Config{
		LogLevel: LogInfo,
		Source:   SourceConfig{Name: SourceSystem},
		Output:   OutputConfig{Threshold: lister.DefaultThreshold},
	}
}
