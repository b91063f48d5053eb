package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// ValidSourceNames lists the built-in source names. Used by [Validate] to warn
// about unrecognised names, which may still be registered by the caller.
var ValidSourceNames = []string{SourceSystem, SourceCatalog}

// Load reads the YAML configuration file at path and returns a validated [Config].
// Fields absent from the file keep their [Default] values.
func Load(path string) (*Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("config: validate %q: %w", path, err)
	}
	return cfg, nil
}

// Read is like [Load] but does not validate, so that callers can overlay
// further settings (such as command-line flags) and call [Validate] once.
func Read(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r on top of [Default] and
// validates the result. An empty document yields the defaults.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg, err := Decode(r)
	if err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode is like [LoadFromReader] without validation.
func Decode(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	return cfg, nil
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.LogLevel != "" && !cfg.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("log_level %q is invalid; valid values: debug, info, warn, error", cfg.LogLevel))
	}

	switch name := cfg.Source.Name; {
	case name == "":
		errs = append(errs, errors.New("source.name is required"))
	case name == SourceCatalog && cfg.Source.Path == "":
		errs = append(errs, errors.New("source.path is required for the catalog source"))
	case !slices.Contains(ValidSourceNames, name):
		slog.Warn("unknown source name; it must be registered before use", "name", name, "known", ValidSourceNames)
	}

	if cfg.Output.Language != "" {
		if _, err := language.Parse(cfg.Output.Language); err != nil {
			errs = append(errs, fmt.Errorf("output.language %q is not a valid BCP-47 tag: %w", cfg.Output.Language, err))
		}
	}

	return errors.Join(errs...)
}

// LanguageTag returns the parsed output language, or language.Und when no
// filter is configured. cfg is assumed to be validated.
func (cfg *Config) LanguageTag() language.Tag {
	if cfg.Output.Language == "" {
		return language.Und
	}
	tag, err := language.Parse(cfg.Output.Language)
	if err != nil {
		return language.Und
	}
	return tag
}
