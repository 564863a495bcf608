package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ludo-technologies/protoscan/internal/constants"
	"github.com/ludo-technologies/protoscan/internal/scanner"
	"github.com/spf13/viper"
)

// Default protocol budgets
const (
	// DefaultMaxOperations is the largest number of operations an interface may declare
	DefaultMaxOperations = 5

	// DefaultMaxParameters is the largest number of parameters an operation may take
	DefaultMaxParameters = 3

	// DefaultMaxComplexity is the exclusive upper bound of an implementation file's
	// complexity score: files scoring this value or more are flagged
	DefaultMaxComplexity = 20

	// DefaultNameMaxLength is the longest operation name still considered simple
	DefaultNameMaxLength = 6

	// DefaultNameSeparators lists characters that make a name complex
	DefaultNameSeparators = "_"
)

// Default performance settings
const (
	DefaultMaxGoroutines  = 4
	DefaultTimeoutSeconds = 60
)

// Config represents the main configuration structure
type Config struct {
	// Protocols holds interface extraction and budget configuration
	Protocols ProtocolsConfig `json:"protocols" mapstructure:"protocols" yaml:"protocols"`

	// Naming holds the advisory naming-simplicity configuration
	Naming NamingConfig `json:"naming" mapstructure:"naming" yaml:"naming"`

	// Implementation holds implementation-file complexity configuration
	Implementation ImplementationConfig `json:"implementation" mapstructure:"implementation" yaml:"implementation"`

	// Output holds report rendering configuration
	Output OutputConfig `json:"output" mapstructure:"output" yaml:"output"`

	// Analysis holds file discovery configuration
	Analysis AnalysisConfig `json:"analysis" mapstructure:"analysis" yaml:"analysis"`

	// Performance holds concurrency configuration
	Performance PerformanceConfig `json:"performance" mapstructure:"performance" yaml:"performance"`
}

// ProtocolsConfig holds configuration for interface definition checks
type ProtocolsConfig struct {
	// Files lists definition files or directories checked when no paths are given
	Files []string `json:"files" mapstructure:"files" yaml:"files"`

	// DeclarationKeyword introduces an interface declaration
	DeclarationKeyword string `json:"declaration_keyword" mapstructure:"declaration_keyword" yaml:"declaration_keyword"`

	// MethodKeyword introduces an operation declaration
	MethodKeyword string `json:"method_keyword" mapstructure:"method_keyword" yaml:"method_keyword"`

	// MaxOperations is the inclusive operation budget per interface
	MaxOperations int `json:"max_operations" mapstructure:"max_operations" yaml:"max_operations"`

	// MaxParameters is the inclusive parameter budget per operation
	MaxParameters int `json:"max_parameters" mapstructure:"max_parameters" yaml:"max_parameters"`
}

// NamingConfig holds configuration for the naming-simplicity heuristic
type NamingConfig struct {
	// MaxLength is the longest name (in characters) classified as simple
	MaxLength int `json:"max_length" mapstructure:"max_length" yaml:"max_length"`

	// Separators are characters that classify a name as complex
	Separators string `json:"separators" mapstructure:"separators" yaml:"separators"`
}

// ImplementationConfig holds configuration for implementation complexity checks
type ImplementationConfig struct {
	// Enabled controls whether implementation files are analyzed
	Enabled bool `json:"enabled" mapstructure:"enabled" yaml:"enabled"`

	// Files lists implementation files or directories
	Files []string `json:"files" mapstructure:"files" yaml:"files"`

	// MaxComplexity is the exclusive complexity score bound
	MaxComplexity int `json:"max_complexity" mapstructure:"max_complexity" yaml:"max_complexity"`

	// Blocking makes a complexity warning fail the run
	Blocking bool `json:"blocking" mapstructure:"blocking" yaml:"blocking"`

	// Keyword classes summed into the complexity score
	ConditionalKeywords []string `json:"conditional_keywords" mapstructure:"conditional_keywords" yaml:"conditional_keywords"`
	LoopKeywords        []string `json:"loop_keywords" mapstructure:"loop_keywords" yaml:"loop_keywords"`
	GuardKeywords       []string `json:"guard_keywords" mapstructure:"guard_keywords" yaml:"guard_keywords"`
}

// OutputConfig holds configuration for report rendering
type OutputConfig struct {
	// Color enables styled markers when writing to a terminal
	Color bool `json:"color" mapstructure:"color" yaml:"color"`

	// SuccessRemark closes a report in which every blocking rule passed
	SuccessRemark string `json:"success_remark" mapstructure:"success_remark" yaml:"success_remark"`

	// FailureRemark closes a report with at least one blocking failure
	FailureRemark string `json:"failure_remark" mapstructure:"failure_remark" yaml:"failure_remark"`
}

// AnalysisConfig holds file discovery configuration
type AnalysisConfig struct {
	// IncludePatterns specifies file name patterns collected from directories
	IncludePatterns []string `json:"include_patterns" mapstructure:"include_patterns" yaml:"include_patterns"`

	// ExcludePatterns specifies file or directory patterns to skip
	ExcludePatterns []string `json:"exclude_patterns" mapstructure:"exclude_patterns" yaml:"exclude_patterns"`

	// Recursive controls whether directories are walked recursively
	Recursive bool `json:"recursive" mapstructure:"recursive" yaml:"recursive"`

	// RespectGitignore skips files ignored by a directory's .gitignore
	RespectGitignore bool `json:"respect_gitignore" mapstructure:"respect_gitignore" yaml:"respect_gitignore"`
}

// PerformanceConfig holds concurrency configuration
type PerformanceConfig struct {
	// MaxGoroutines bounds concurrent per-file extraction (0 = default)
	MaxGoroutines int `json:"max_goroutines" mapstructure:"max_goroutines" yaml:"max_goroutines"`

	// TimeoutSeconds bounds a whole run (0 = default)
	TimeoutSeconds int `json:"timeout_seconds" mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Protocols: ProtocolsConfig{
			Files:              []string{},
			DeclarationKeyword: scanner.DefaultDeclarationKeyword,
			MethodKeyword:      scanner.DefaultMethodKeyword,
			MaxOperations:      DefaultMaxOperations,
			MaxParameters:      DefaultMaxParameters,
		},
		Naming: NamingConfig{
			MaxLength:  DefaultNameMaxLength,
			Separators: DefaultNameSeparators,
		},
		Implementation: ImplementationConfig{
			Enabled:             true,
			Files:               []string{},
			MaxComplexity:       DefaultMaxComplexity,
			Blocking:            false,
			ConditionalKeywords: []string{"if"},
			LoopKeywords:        []string{"for"},
			GuardKeywords:       []string{"guard"},
		},
		Output: OutputConfig{
			Color:         true,
			SuccessRemark: constants.DefaultSuccessRemark,
			FailureRemark: constants.DefaultFailureRemark,
		},
		Analysis: AnalysisConfig{
			IncludePatterns: []string{"*.swift"},
			ExcludePatterns: []string{
				".git",
				".build",
				".swiftpm",
				"Pods",
				"Carthage",
				"DerivedData",
			},
			Recursive:        true,
			RespectGitignore: true,
		},
		Performance: PerformanceConfig{
			MaxGoroutines:  DefaultMaxGoroutines,
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
	}
}

// LoadConfig loads configuration from file or returns default config
func LoadConfig(configPath string) (*Config, error) {
	return LoadConfigWithTarget(configPath, "")
}

// LoadConfigWithTarget loads configuration with target path context.
// When configPath is empty a config file is discovered from targetPath upward.
func LoadConfigWithTarget(configPath string, targetPath string) (*Config, error) {
	if configPath == "" {
		configPath = findDefaultConfig(targetPath)
	}
	return loadConfigFromFile(configPath)
}

// loadConfigFromFile reads and parses a configuration file.
// An empty path yields the defaults with environment overrides applied.
func loadConfigFromFile(configPath string) (*Config, error) {
	// Create a new viper instance to avoid race conditions
	v := viper.New()
	config := DefaultConfig()

	bindDefaults(v, config)
	v.SetEnvPrefix(constants.EnvVarPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// bindDefaults registers scalar keys so environment overrides apply without a config file
func bindDefaults(v *viper.Viper, c *Config) {
	v.SetDefault("protocols.declaration_keyword", c.Protocols.DeclarationKeyword)
	v.SetDefault("protocols.method_keyword", c.Protocols.MethodKeyword)
	v.SetDefault("protocols.max_operations", c.Protocols.MaxOperations)
	v.SetDefault("protocols.max_parameters", c.Protocols.MaxParameters)
	v.SetDefault("naming.max_length", c.Naming.MaxLength)
	v.SetDefault("naming.separators", c.Naming.Separators)
	v.SetDefault("implementation.enabled", c.Implementation.Enabled)
	v.SetDefault("implementation.max_complexity", c.Implementation.MaxComplexity)
	v.SetDefault("implementation.blocking", c.Implementation.Blocking)
	v.SetDefault("output.color", c.Output.Color)
	v.SetDefault("analysis.recursive", c.Analysis.Recursive)
	v.SetDefault("analysis.respect_gitignore", c.Analysis.RespectGitignore)
	v.SetDefault("performance.max_goroutines", c.Performance.MaxGoroutines)
	v.SetDefault("performance.timeout_seconds", c.Performance.TimeoutSeconds)
}

// configCandidates lists config file names in order of preference
var configCandidates = []string{
	"protoscan.yaml",
	"protoscan.yml",
	".protoscan.yaml",
	".protoscan.yml",
	"protoscan.json",
	".protoscan.json",
	"protoscan.toml",
	".protoscan.toml",
}

// searchConfigInDirectory searches for configuration files in a specific directory
func searchConfigInDirectory(dir string, candidates []string) string {
	for _, candidate := range candidates {
		path := filepath.Join(dir, candidate)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// findDefaultConfig looks for default configuration files in common locations
// targetPath is the path being analyzed (a definitions file or directory)
func findDefaultConfig(targetPath string) string {
	if targetPath != "" {
		if absPath, err := filepath.Abs(targetPath); err == nil {
			// If it's a file, start from its directory
			if info, err := os.Stat(absPath); err == nil && !info.IsDir() {
				absPath = filepath.Dir(absPath)
			}

			volume := filepath.VolumeName(absPath)
			for dir := absPath; ; dir = filepath.Dir(dir) {
				if config := searchConfigInDirectory(dir, configCandidates); config != "" {
					return config
				}

				parent := filepath.Dir(dir)
				if parent == dir ||
					dir == volume ||
					(volume != "" && dir == volume+string(filepath.Separator)) {
					break
				}
			}
		}
	}

	// Fallback to current directory
	if config := searchConfigInDirectory(".", configCandidates); config != "" {
		return config
	}

	// Check XDG config directory (Linux/Mac standard)
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		if config := searchConfigInDirectory(filepath.Join(xdgConfig, constants.ToolName), configCandidates); config != "" {
			return config
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		configDir := filepath.Join(home, ".config", constants.ToolName)
		if config := searchConfigInDirectory(configDir, configCandidates); config != "" {
			return config
		}
	}

	// Check PROTOSCAN_CONFIG environment variable as fallback
	if envConfig := os.Getenv(constants.ConfigEnvVar); envConfig != "" {
		if _, err := os.Stat(envConfig); err == nil {
			return envConfig
		}
	}

	return ""
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if !scanner.IsIdentifier(c.Protocols.DeclarationKeyword) {
		return fmt.Errorf("protocols.declaration_keyword must be a single word, got '%s'", c.Protocols.DeclarationKeyword)
	}

	if !scanner.IsIdentifier(c.Protocols.MethodKeyword) {
		return fmt.Errorf("protocols.method_keyword must be a single word, got '%s'", c.Protocols.MethodKeyword)
	}

	if c.Protocols.MaxOperations < 0 {
		return fmt.Errorf("protocols.max_operations must be >= 0, got %d", c.Protocols.MaxOperations)
	}

	if c.Protocols.MaxParameters < 0 {
		return fmt.Errorf("protocols.max_parameters must be >= 0, got %d", c.Protocols.MaxParameters)
	}

	if c.Naming.MaxLength < 1 {
		return fmt.Errorf("naming.max_length must be >= 1, got %d", c.Naming.MaxLength)
	}

	if c.Implementation.MaxComplexity < 1 {
		return fmt.Errorf("implementation.max_complexity must be >= 1, got %d", c.Implementation.MaxComplexity)
	}

	keywordClasses := map[string][]string{
		"implementation.conditional_keywords": c.Implementation.ConditionalKeywords,
		"implementation.loop_keywords":        c.Implementation.LoopKeywords,
		"implementation.guard_keywords":       c.Implementation.GuardKeywords,
	}
	for key, keywords := range keywordClasses {
		for _, kw := range keywords {
			if !scanner.IsIdentifier(kw) {
				return fmt.Errorf("%s must contain single words, got '%s'", key, kw)
			}
		}
	}

	if len(c.Analysis.IncludePatterns) == 0 {
		return fmt.Errorf("analysis.include_patterns cannot be empty")
	}

	if c.Performance.MaxGoroutines < 0 {
		return fmt.Errorf("performance.max_goroutines must be >= 0, got %d", c.Performance.MaxGoroutines)
	}

	if c.Performance.TimeoutSeconds < 0 {
		return fmt.Errorf("performance.timeout_seconds must be >= 0, got %d", c.Performance.TimeoutSeconds)
	}

	return nil
}
