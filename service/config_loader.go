package service

import (
	"github.com/ludo-technologies/protoscan/domain"
	"github.com/ludo-technologies/protoscan/internal/config"
)

// ThresholdOverrides holds CLI values that replace configured thresholds.
// Nil fields were not set on the command line.
type ThresholdOverrides struct {
	MaxOperations *int
	MaxParameters *int
	MaxComplexity *int
	Strict        bool
	NoColor       bool
}

// ConfigurationLoaderImpl loads configuration and turns it into check requests
type ConfigurationLoaderImpl struct{}

// NewConfigurationLoader creates a new configuration loader service
func NewConfigurationLoader() *ConfigurationLoaderImpl {
	return &ConfigurationLoaderImpl{}
}

// LoadConfig loads configuration from path; an empty path is discovered from target upward
func (c *ConfigurationLoaderImpl) LoadConfig(path, target string) (*config.Config, error) {
	cfg, err := config.LoadConfigWithTarget(path, target)
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration", err)
	}
	return cfg, nil
}

// ApplyOverrides merges explicitly set CLI flags into cfg and validates the result
func (c *ConfigurationLoaderImpl) ApplyOverrides(cfg *config.Config, o ThresholdOverrides) error {
	if o.MaxOperations != nil {
		cfg.Protocols.MaxOperations = *o.MaxOperations
	}
	if o.MaxParameters != nil {
		cfg.Protocols.MaxParameters = *o.MaxParameters
	}
	if o.MaxComplexity != nil {
		cfg.Implementation.MaxComplexity = *o.MaxComplexity
	}
	if o.Strict {
		cfg.Implementation.Blocking = true
	}
	if o.NoColor {
		cfg.Output.Color = false
	}

	if err := cfg.Validate(); err != nil {
		return domain.NewConfigError("invalid option", err)
	}
	return nil
}

// BuildCheckRequest builds a check request; paths given on the command line
// take precedence over the file lists of the configuration
func (c *ConfigurationLoaderImpl) BuildCheckRequest(cfg *config.Config, definitionPaths, implementationPaths []string) domain.CheckRequest {
	if len(definitionPaths) == 0 {
		definitionPaths = cfg.Protocols.Files
	}
	if len(implementationPaths) == 0 {
		implementationPaths = cfg.Implementation.Files
	}

	return domain.CheckRequest{
		DefinitionPaths:     append([]string(nil), definitionPaths...),
		ImplementationPaths: append([]string(nil), implementationPaths...),
		Recursive:           cfg.Analysis.Recursive,
		RespectGitignore:    cfg.Analysis.RespectGitignore,
		IncludePatterns:     cfg.Analysis.IncludePatterns,
		ExcludePatterns:     cfg.Analysis.ExcludePatterns,
	}
}
