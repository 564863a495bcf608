package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ludo-technologies/protoscan/app"
	"github.com/ludo-technologies/protoscan/internal/config"
	"github.com/ludo-technologies/protoscan/internal/constants"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

func initCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   constants.CommandInit,
		Short: "Generate a protoscan configuration file",
		Long: `Generate a documented protoscan configuration file with sensible defaults.

By default, creates protoscan.yaml in the current directory with full
documentation. Use --interactive for a guided setup wizard.

Examples:
  # Create protoscan.yaml in current directory
  protoscan init

  # Custom output path
  protoscan init --config tools/protoscan.yaml

  # Overwrite existing file
  protoscan init --force

  # Kotlin interfaces with strict budgets
  protoscan init --language kotlin --strictness strict

  # Interactive setup wizard
  protoscan init --interactive
  protoscan init -i`,
		RunE: runInit,
	}

	cmd.Flags().StringP("config", "c", constants.ConfigFileName,
		"Output path for the config file")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing config file")
	cmd.Flags().Bool("minimal", false,
		"Generate minimal config with essential options only")
	cmd.Flags().StringP("language", "l", string(config.HostLanguageSwift),
		"Host language of the definition files: swift, kotlin")
	cmd.Flags().StringP("strictness", "s", string(config.StrictnessStandard),
		"Threshold preset: relaxed, standard, strict")
	cmd.Flags().BoolP("interactive", "i", false,
		"Interactive setup wizard")

	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	force, _ := cmd.Flags().GetBool("force")
	minimal, _ := cmd.Flags().GetBool("minimal")
	languageFlag, _ := cmd.Flags().GetString("language")
	strictnessFlag, _ := cmd.Flags().GetString("strictness")
	interactive, _ := cmd.Flags().GetBool("interactive")

	language := config.HostLanguage(languageFlag)
	if _, ok := config.GetLanguagePresets()[language]; !ok {
		return fmt.Errorf("unknown language %q (expected swift or kotlin)", languageFlag)
	}
	strictness := config.Strictness(strictnessFlag)
	if _, ok := config.GetStrictnessPresets()[strictness]; !ok {
		return fmt.Errorf("unknown strictness %q (expected relaxed, standard or strict)", strictnessFlag)
	}

	out := cmd.OutOrStdout()

	// Run interactive setup if requested
	if interactive {
		var err error
		language, strictness, configPath, err = runInteractiveSetup(out, configPath)
		if err != nil {
			return err
		}
	}

	// Check if file exists
	if !force {
		exists, err := app.NewFileHelper().FileExists(configPath)
		if err != nil {
			return fmt.Errorf("failed to check %s: %w", configPath, err)
		}
		if exists {
			return fmt.Errorf("%s already exists. Use --force to overwrite", configPath)
		}
	}

	// Check if parent directory exists
	dir := filepath.Dir(configPath)
	if dir != "." && dir != "" {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			return fmt.Errorf("directory does not exist: %s", dir)
		}
	}

	content := config.GetFullConfigTemplate(language, strictness)
	if minimal {
		content = config.GetMinimalConfigTemplate()
	}
	if _, err := config.ParseConfigTemplate(content); err != nil {
		return fmt.Errorf("generated config is invalid: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	displayPath := configPath
	if absPath, err := filepath.Abs(configPath); err == nil {
		displayPath = absPath
	}
	fmt.Fprintf(out, "Created %s\n", displayPath)
	fmt.Fprintln(out, "\nList your definition files under protocols.files, then run 'protoscan check'.")

	return nil
}

func runInteractiveSetup(out io.Writer, defaultConfigPath string) (config.HostLanguage, config.Strictness, string, error) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "protoscan Configuration Setup")
	fmt.Fprintln(out, "=============================")
	fmt.Fprintln(out)

	languages := []struct {
		Label string
		Value config.HostLanguage
	}{
		{"Swift (protocol / func)", config.HostLanguageSwift},
		{"Kotlin (interface / fun)", config.HostLanguageKotlin},
	}

	languagePrompt := promptui.Select{
		Label: "Which language are the definitions written in?",
		Items: languages,
		Templates: &promptui.SelectTemplates{
			Label:    "{{ . }}",
			Active:   "\U0001F449 {{ .Label | cyan }}",
			Inactive: "   {{ .Label | white }}",
			Selected: "\U00002705 {{ .Label | green }}",
		},
	}

	languageIdx, _, err := languagePrompt.Run()
	if err != nil {
		return "", "", "", fmt.Errorf("language selection cancelled: %w", err)
	}

	fmt.Fprintln(out)

	strictnessLevels := []struct {
		Label       string
		Description string
		Value       config.Strictness
	}{
		{"Standard (recommended)", "5 operations, 3 parameters, complexity below 20", config.StrictnessStandard},
		{"Relaxed", "8 operations, 4 parameters, complexity below 30", config.StrictnessRelaxed},
		{"Strict", "4 operations, 2 parameters, blocking complexity below 12", config.StrictnessStrict},
	}

	strictnessPrompt := promptui.Select{
		Label: "How strict should the budgets be?",
		Items: strictnessLevels,
		Templates: &promptui.SelectTemplates{
			Label:    "{{ . }}",
			Active:   "\U0001F449 {{ .Label | cyan }} - {{ .Description | faint }}",
			Inactive: "   {{ .Label | white }} - {{ .Description | faint }}",
			Selected: "\U00002705 {{ .Label | green }}",
		},
	}

	strictnessIdx, _, err := strictnessPrompt.Run()
	if err != nil {
		return "", "", "", fmt.Errorf("strictness selection cancelled: %w", err)
	}

	fmt.Fprintln(out)

	outputPrompt := promptui.Prompt{
		Label:   "Output file path",
		Default: defaultConfigPath,
	}

	outputPath, err := outputPrompt.Run()
	if err != nil {
		return "", "", "", fmt.Errorf("output path input cancelled: %w", err)
	}
	if outputPath == "" {
		outputPath = defaultConfigPath
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Creating %s... ", outputPath)

	return languages[languageIdx].Value, strictnessLevels[strictnessIdx].Value, outputPath, nil
}
