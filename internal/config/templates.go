package config

import (
	"strconv"
	"strings"
)

// HostLanguage represents the language the checked definitions are written in
type HostLanguage string

const (
	HostLanguageSwift  HostLanguage = "swift"
	HostLanguageKotlin HostLanguage = "kotlin"
)

// Strictness represents the analysis strictness level
type Strictness string

const (
	StrictnessRelaxed  Strictness = "relaxed"
	StrictnessStandard Strictness = "standard"
	StrictnessStrict   Strictness = "strict"
)

// LanguagePreset holds keywords and file patterns for a host language
type LanguagePreset struct {
	DeclarationKeyword  string
	MethodKeyword       string
	ConditionalKeywords []string
	LoopKeywords        []string
	GuardKeywords       []string
	IncludePatterns     []string
	ExcludePatterns     []string
}

// StrictnessPreset holds threshold values for different strictness levels
type StrictnessPreset struct {
	MaxOperations      int
	MaxParameters      int
	MaxComplexity      int
	ComplexityBlocking bool
}

// GetLanguagePresets returns presets for the supported host languages
func GetLanguagePresets() map[HostLanguage]LanguagePreset {
	return map[HostLanguage]LanguagePreset{
		HostLanguageSwift: {
			DeclarationKeyword:  "protocol",
			MethodKeyword:       "func",
			ConditionalKeywords: []string{"if"},
			LoopKeywords:        []string{"for"},
			GuardKeywords:       []string{"guard"},
			IncludePatterns:     []string{"*.swift"},
			ExcludePatterns: []string{
				".git",
				".build",
				".swiftpm",
				"Pods",
				"Carthage",
				"DerivedData",
			},
		},
		HostLanguageKotlin: {
			DeclarationKeyword:  "interface",
			MethodKeyword:       "fun",
			ConditionalKeywords: []string{"if", "when"},
			LoopKeywords:        []string{"for", "while"},
			GuardKeywords:       []string{"require", "check"},
			IncludePatterns:     []string{"*.kt", "*.kts"},
			ExcludePatterns: []string{
				".git",
				".gradle",
				"build",
				"out",
			},
		},
	}
}

// GetStrictnessPresets returns presets for different strictness levels
func GetStrictnessPresets() map[Strictness]StrictnessPreset {
	return map[Strictness]StrictnessPreset{
		StrictnessRelaxed: {
			MaxOperations: 8,
			MaxParameters: 4,
			MaxComplexity: 30,
		},
		StrictnessStandard: {
			MaxOperations: DefaultMaxOperations,
			MaxParameters: DefaultMaxParameters,
			MaxComplexity: DefaultMaxComplexity,
		},
		StrictnessStrict: {
			MaxOperations:      4,
			MaxParameters:      2,
			MaxComplexity:      12,
			ComplexityBlocking: true,
		},
	}
}

// GetFullConfigTemplate returns the documented config template as YAML
func GetFullConfigTemplate(language HostLanguage, strictness Strictness) string {
	lang, ok := GetLanguagePresets()[language]
	if !ok {
		lang = GetLanguagePresets()[HostLanguageSwift]
	}
	strict, ok := GetStrictnessPresets()[strictness]
	if !ok {
		strict = GetStrictnessPresets()[StrictnessStandard]
	}

	return `# protoscan configuration
# Documentation: https://github.com/ludo-technologies/protoscan

# ============================================================================
# PROTOCOL BUDGETS
# ============================================================================
# Interface declarations are found by keyword and checked against budgets.
# Violations fail the run.
protocols:
  # Definition files or directories checked when no paths are given
  files: []

  # Keyword introducing an interface declaration
  declaration_keyword: ` + lang.DeclarationKeyword + `

  # Keyword introducing an operation
  method_keyword: ` + lang.MethodKeyword + `

  # Each interface may declare at most this many operations
  max_operations: ` + strconv.Itoa(strict.MaxOperations) + `

  # Each operation may take at most this many parameters
  max_parameters: ` + strconv.Itoa(strict.MaxParameters) + `

# ============================================================================
# NAMING
# ============================================================================
# Advisory only: counts short, separator-free operation names as simple
naming:
  max_length: ` + strconv.Itoa(DefaultNameMaxLength) + `
  separators: "` + DefaultNameSeparators + `"

# ============================================================================
# IMPLEMENTATION COMPLEXITY
# ============================================================================
# Keyword occurrences are summed into a complexity score per file.
# Files scoring max_complexity or more are flagged.
implementation:
  enabled: true
  files: []
  max_complexity: ` + strconv.Itoa(strict.MaxComplexity) + `

  # Fail the run on a complexity warning
  blocking: ` + strconv.FormatBool(strict.ComplexityBlocking) + `

  conditional_keywords: ` + formatYAMLFlowArray(lang.ConditionalKeywords) + `
  loop_keywords: ` + formatYAMLFlowArray(lang.LoopKeywords) + `
  guard_keywords: ` + formatYAMLFlowArray(lang.GuardKeywords) + `

# ============================================================================
# OUTPUT SETTINGS
# ============================================================================
output:
  # Use colors in terminal output (disable for CI logs)
  color: true

# ============================================================================
# ANALYSIS SCOPE
# ============================================================================
# Controls which files are collected from directories
analysis:
  include_patterns:
` + formatYAMLBlockArray(lang.IncludePatterns) + `
  exclude_patterns:
` + formatYAMLBlockArray(lang.ExcludePatterns) + `
  recursive: true
  respect_gitignore: true

performance:
  # Number of files extracted in parallel
  max_goroutines: ` + strconv.Itoa(DefaultMaxGoroutines) + `
  timeout_seconds: ` + strconv.Itoa(DefaultTimeoutSeconds) + `
`
}

// GetMinimalConfigTemplate returns a minimal config template
func GetMinimalConfigTemplate() string {
	return DefaultConfigYAML
}

// formatYAMLFlowArray formats a string slice as a YAML flow sequence
func formatYAMLFlowArray(items []string) string {
	return "[" + strings.Join(items, ", ") + "]"
}

// formatYAMLBlockArray formats a string slice as an indented YAML block sequence
func formatYAMLBlockArray(items []string) string {
	var b strings.Builder
	for i, item := range items {
		b.WriteString(`    - "` + item + `"`)
		if i < len(items)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
