// ABOUTME: Root Cobra command and global wiring for the remix CLI.
// ABOUTME: Loads config, builds the LLM client and store, and launches the TUI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/2389-research/remix/internal/config"
	"github.com/2389-research/remix/internal/llm"
	"github.com/2389-research/remix/internal/store"
	"github.com/2389-research/remix/internal/tui"
)

var globalConfig *config.Config
var globalLLM llm.Client
var globalStore store.Store
var globalStorePersistent bool

var rootCmd = &cobra.Command{
	Use:   "remix",
	Short: "Turn any text into social posts",
	Long: `
██████╗ ███████╗███╗   ███╗██╗██╗  ██╗
██╔══██╗██╔════╝████╗ ████║██║╚██╗██╔╝
██████╔╝█████╗  ██╔████╔██║██║ ╚███╔╝
██╔══██╗██╔══╝  ██║╚██╔╝██║██║ ██╔██╗
██║  ██║███████╗██║ ╚═╝ ██║██║██╔╝ ██╗
╚═╝  ╚═╝╚══════╝╚═╝     ╚═╝╚═╝╚═╝  ╚═╝

Paste in anything you've written and get back five candidate posts,
each under the 280-character limit. Save the keepers, tweet the best.

Run with no arguments for the interactive session.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "version" || cmd.Name() == "setup" {
			return nil
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		globalConfig = cfg

		client, err := llm.NewOpenAI(cfg.ResolveAPIKey(), cfg.LLM.Model, cfg.LLM.MaxTokens)
		if err != nil {
			if !errors.Is(err, llm.ErrNoAPIKey) {
				return fmt.Errorf("failed to create LLM client: %w", err)
			}
			// No key yet: generation commands will report this themselves.
		} else {
			globalLLM = client
		}

		if cfg.HasStore() {
			var opts []store.PostgresOption
			if client != nil {
				opts = append(opts, store.WithEmbedder(client))
			}
			pg, err := store.NewPostgres(cmd.Context(), cfg.ResolveDatabaseURL(), opts...)
			if err != nil {
				return fmt.Errorf("failed to open store: %w", err)
			}
			globalStore = pg
			globalStorePersistent = true
		} else {
			globalStore = store.NewMemory(nil)
		}

		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if globalStore != nil {
			globalStore.Close()
			globalStore = nil
		}
		return nil
	},
	RunE: runTUI,
}

func runTUI(cmd *cobra.Command, args []string) error {
	if !globalStorePersistent {
		fmt.Fprintln(os.Stderr, "No database configured; saved posts last only this session. Run 'remix setup' to connect one.")
	}

	app := tui.NewApp(globalLLM, globalStore)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// requirePersistentStore guards commands that only make sense against a real
// database.
func requirePersistentStore() error {
	if !globalStorePersistent {
		return fmt.Errorf("no database configured; run 'remix setup' first")
	}
	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
