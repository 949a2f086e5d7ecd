// ABOUTME: Cobra command for interactive credential setup.
// ABOUTME: Launches a bubbletea TUI wizard to collect and validate config.
package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/2389-research/remix/internal/config"
	"github.com/2389-research/remix/internal/tui"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Configure generation and storage credentials",
	Long:  "Interactive wizard to configure the OpenAI API key and saved-post database.",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	model := tui.NewSetupModel(
		cfg.LLM.APIKey,
		cfg.LLM.Model,
		cfg.Store.DatabaseURL,
	)

	p := tea.NewProgram(model)
	result, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	final := result.(tui.SetupModel)
	if !final.ShouldSave() {
		fmt.Println("Setup cancelled.")
		return nil
	}

	apiKey, llmModel, databaseURL := final.Result()
	cfg.LLM.APIKey = apiKey
	cfg.LLM.Model = llmModel
	cfg.Store.DatabaseURL = databaseURL

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	configPath, err := config.GetConfigPath()
	if err != nil {
		fmt.Println("Config saved successfully.")
	} else {
		fmt.Printf("Config saved to %s\n", configPath)
	}
	return nil
}
