package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/ludo-technologies/protoscan/app"
	"github.com/ludo-technologies/protoscan/domain"
	"github.com/ludo-technologies/protoscan/internal/constants"
	"github.com/ludo-technologies/protoscan/service"
	"github.com/spf13/cobra"
)

// CheckExitError is a custom error type for check command exit codes
type CheckExitError struct {
	Code    int
	Message string
}

func (e *CheckExitError) Error() string {
	return e.Message
}

var (
	checkImplPaths     []string
	checkConfigPath    string
	checkMaxOperations int
	checkMaxParameters int
	checkMaxComplexity int
	checkStrict        bool
	checkNoColor       bool
	checkVerbose       bool
)

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   constants.CommandCheck + " [definition-file...]",
		Short: "Check interface declarations against complexity budgets",
		Long: `Check every interface declared in the definition files against the
operation and parameter budgets, score implementation files for branching
density, and print a narrative report.

Definition files default to protocols.files from the configuration file;
directories are expanded using analysis.include_patterns.

Exit codes:
  0 - All blocking rules pass
  1 - A blocking rule failed
  2 - Analysis error (no input, invalid config, no readable definitions)

Examples:
  # Check with defaults
  protoscan check Sources/Protocols.swift

  # Also score an implementation file
  protoscan check Sources/Protocols.swift --impl Sources/Manager.swift

  # Tighter budgets, complexity becomes blocking
  protoscan check --max-operations 4 --max-parameters 2 --strict Sources/`,
		RunE:          runCheck,
		SilenceUsage:  true, // Don't print usage on errors (we handle our own output)
		SilenceErrors: true, // Don't print error messages (we handle our own output)
	}

	cmd.Flags().StringArrayVar(&checkImplPaths, "impl", nil,
		"Implementation file or directory to score (repeatable)")
	cmd.Flags().StringVarP(&checkConfigPath, "config", "c", "",
		"Path to config file")
	cmd.Flags().IntVar(&checkMaxOperations, "max-operations", 0,
		"Maximum operations per interface (overrides config)")
	cmd.Flags().IntVar(&checkMaxParameters, "max-parameters", 0,
		"Maximum parameters per operation (overrides config)")
	cmd.Flags().IntVar(&checkMaxComplexity, "max-complexity", 0,
		"Complexity score an implementation must stay below (overrides config)")
	cmd.Flags().BoolVar(&checkStrict, "strict", false,
		"Fail the run when an implementation is too complex")
	cmd.Flags().BoolVar(&checkNoColor, "no-color", false,
		"Disable colored output")
	cmd.Flags().BoolVarP(&checkVerbose, "verbose", "v", false,
		"Log progress details to stderr")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(checkVerbose)
	if err != nil {
		return &CheckExitError{Code: constants.ExitAnalysisError, Message: fmt.Sprintf("failed to create logger: %v", err)}
	}
	defer func() { _ = logger.Sync() }()

	target := "."
	if len(args) > 0 {
		target = args[0]
	}

	loader := service.NewConfigurationLoader()
	cfg, err := loader.LoadConfig(checkConfigPath, target)
	if err != nil {
		return &CheckExitError{Code: constants.ExitAnalysisError, Message: err.Error()}
	}

	// Apply flags explicitly set on the command line
	overrides := service.ThresholdOverrides{Strict: checkStrict, NoColor: checkNoColor}
	if cmd.Flags().Changed("max-operations") {
		overrides.MaxOperations = &checkMaxOperations
	}
	if cmd.Flags().Changed("max-parameters") {
		overrides.MaxParameters = &checkMaxParameters
	}
	if cmd.Flags().Changed("max-complexity") {
		overrides.MaxComplexity = &checkMaxComplexity
	}
	if err := loader.ApplyOverrides(cfg, overrides); err != nil {
		return &CheckExitError{Code: constants.ExitAnalysisError, Message: err.Error()}
	}

	req := loader.BuildCheckRequest(cfg, args, checkImplPaths)
	if len(req.DefinitionPaths) == 0 {
		return &CheckExitError{Code: constants.ExitAnalysisError, Message: "no definition files specified"}
	}
	out := cmd.OutOrStdout()
	req.OutputWriter = out
	req.ConfigPath = checkConfigPath

	pm := service.NewProgressManager(!checkVerbose)
	defer pm.Close()

	useCase, err := app.NewCheckUseCaseBuilder().
		WithService(service.NewCheckServiceWithProgress(cfg, pm, logger)).
		WithFormatter(service.NewReportFormatter(cfg, stylerFor(cfg.Output.Color, out))).
		Build()
	if err != nil {
		return &CheckExitError{Code: constants.ExitAnalysisError, Message: err.Error()}
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt)
	defer stop()

	report, err := useCase.Execute(ctx, req)
	if err != nil {
		return &CheckExitError{Code: constants.ExitAnalysisError, Message: err.Error()}
	}

	if !report.AllPassed {
		return &CheckExitError{Code: constants.ExitRuleFailure}
	}
	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// exitCodeFor maps an error returned by a command to a process exit code
func exitCodeFor(err error) int {
	if err == nil {
		return constants.ExitSuccess
	}
	var exitErr *CheckExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	if domain.ErrorCode(err) != "" {
		return constants.ExitAnalysisError
	}
	return constants.ExitRuleFailure
}
