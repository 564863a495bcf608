package analyzer

import (
	"github.com/ludo-technologies/protoscan/internal/config"
	"github.com/ludo-technologies/protoscan/internal/scanner"
)

// Options is the explicit configuration of one analysis run
type Options struct {
	DeclarationKeyword string
	MethodKeyword      string

	MaxOperations int
	MaxParameters int

	NameMaxLength  int
	NameSeparators string

	MaxComplexity       int
	ComplexityBlocking  bool
	ConditionalKeywords []string
	LoopKeywords        []string
	GuardKeywords       []string
}

// DefaultOptions returns the options of the default configuration
func DefaultOptions() Options {
	return OptionsFromConfig(config.DefaultConfig())
}

// OptionsFromConfig extracts analysis options from a loaded configuration
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		DeclarationKeyword:  cfg.Protocols.DeclarationKeyword,
		MethodKeyword:       cfg.Protocols.MethodKeyword,
		MaxOperations:       cfg.Protocols.MaxOperations,
		MaxParameters:       cfg.Protocols.MaxParameters,
		NameMaxLength:       cfg.Naming.MaxLength,
		NameSeparators:      cfg.Naming.Separators,
		MaxComplexity:       cfg.Implementation.MaxComplexity,
		ComplexityBlocking:  cfg.Implementation.Blocking,
		ConditionalKeywords: append([]string(nil), cfg.Implementation.ConditionalKeywords...),
		LoopKeywords:        append([]string(nil), cfg.Implementation.LoopKeywords...),
		GuardKeywords:       append([]string(nil), cfg.Implementation.GuardKeywords...),
	}
}

func (o Options) newScanner() *scanner.Scanner {
	return scanner.NewScanner(o.DeclarationKeyword, o.MethodKeyword)
}
