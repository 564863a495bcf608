package config

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

// DefaultConfigYAML contains the embedded minimal configuration file
//
//go:embed default_config.yaml
var DefaultConfigYAML string

// ParseConfigTemplate decodes a generated config file over the defaults and validates the result
func ParseConfigTemplate(content string) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal([]byte(content), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config template: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config template: %w", err)
	}

	return cfg, nil
}
