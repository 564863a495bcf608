package main

import (
	"fmt"

	"github.com/ludo-technologies/protoscan/app"
	"github.com/ludo-technologies/protoscan/domain"
	"github.com/ludo-technologies/protoscan/internal/constants"
	"github.com/ludo-technologies/protoscan/service"
	"github.com/spf13/cobra"
)

// Default record file names
const (
	defaultConvertInput  = "projects.json"
	defaultConvertOutput = "projects-flat.json"
)

func convertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   constants.CommandConvert,
		Short: "Flatten nested project records",
		Long: `Read a JSON array of nested project records and write a flat array where
every record carries id, name, path, tags, mtime, size, created,
git_commits, git_last_commit, checksum and checked, in that order.

Examples:
  # Convert projects.json into projects-flat.json
  protoscan convert

  # Custom file names
  protoscan convert --input backup.json --output flat.json`,
		RunE:         runConvert,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("input", "i", defaultConvertInput, "Record file to read")
	cmd.Flags().StringP("output", "o", defaultConvertOutput, "Record file to write")
	cmd.Flags().BoolP("verbose", "v", false, "Log progress details to stderr")

	return cmd
}

func runConvert(cmd *cobra.Command, args []string) error {
	input, _ := cmd.Flags().GetString("input")
	output, _ := cmd.Flags().GetString("output")
	verbose, _ := cmd.Flags().GetBool("verbose")

	logger, err := newLogger(verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	out := cmd.OutOrStdout()
	useCase := app.NewConvertUseCase(
		service.NewConvertService(logger),
		service.NewConvertFormatter(stylerFor(true, out)),
	)

	_, err = useCase.Execute(commandContext(cmd), domain.ConvertRequest{
		InputPath:  input,
		OutputPath: output,
	}, out)
	return err
}
