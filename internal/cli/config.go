package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is looked up in the working directory when --config
// is not given. A missing default file is not an error.
const DefaultConfigFile = "tsqlnav.yaml"

// Config holds navigator settings loaded from a YAML config file.
type Config struct {
	// Catalog is the path to the stored procedure catalog CSV export,
	// used by the proc and search commands when --catalog is not passed.
	Catalog string `yaml:"catalog"`

	// Format is the default output format ("json" | "text").
	// An explicit --format flag overrides it.
	Format string `yaml:"format"`
}

// LoadConfig reads and decodes a YAML config file. Unknown keys are
// rejected so a typo does not silently disable a setting.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// loadRunConfig resolves the config for one invocation: an explicit
// --config path must load, the default file loads only when present.
func loadRunConfig(path string) (*Config, error) {
	if path != "" {
		return LoadConfig(path)
	}
	if _, err := os.Stat(DefaultConfigFile); os.IsNotExist(err) {
		return &Config{}, nil
	}
	return LoadConfig(DefaultConfigFile)
}

// resolveCatalogPath picks the catalog export path for a command:
// explicit flag first, config file second.
func resolveCatalogPath(flagValue string, cfg *Config) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if cfg != nil && cfg.Catalog != "" {
		return cfg.Catalog, nil
	}
	return "", fmt.Errorf("no catalog export configured: pass --catalog or set catalog: in %s", DefaultConfigFile)
}
