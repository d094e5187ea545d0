// Package config loads the service configuration from a yaml or json file
// with optional environment overrides.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/gridwatt/demandcast/core/metrics"
	"github.com/gridwatt/demandcast/infra/mqtt"
)

// HTTPConfig defines the API server settings for serve mode.
type HTTPConfig struct {
	Addr string `json:"addr"`
}

// SetDefaults applies sane defaults.
func (c *HTTPConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
}

type Config struct {
	// ModelsDir is the read-only artifact directory.
	ModelsDir string         `json:"models_dir"`
	HTTP      HTTPConfig     `json:"http"`
	Metrics   metrics.Config `json:"metrics"`
	MQTT      mqtt.Config    `json:"mqtt"`
}

// SetDefaults applies defaults to every section.
func (c *Config) SetDefaults() {
	if c.ModelsDir == "" {
		c.ModelsDir = "models"
	}
	c.HTTP.SetDefaults()
	c.Metrics.SetDefaults()
	c.MQTT.SetDefaults()
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.ModelsDir == "" {
		return fmt.Errorf("models_dir is required")
	}
	return c.MQTT.Validate()
}

// Load reads the configuration at path. Environment variables prefixed with
// DEMANDCAST_ override file values, with "__" separating nested keys.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	if err := k.Load(env.Provider("DEMANDCAST_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "demandcast_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
