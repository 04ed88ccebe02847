package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vibespecs/vibespecs/internal/app"
	"github.com/vibespecs/vibespecs/internal/config"
)

var debug bool

// Global app instance shared by subcommands, built in PersistentPreRunE.
var vibespecsApp *app.App

var rootCmd = &cobra.Command{
	Use:   "vibespecs",
	Short: "Turn app ideas into developer-ready PRDs",
	Long: `VibeSpecs turns a free-text app idea into a structured Product
Requirements Document using a hosted AI gateway, and exports it as a
Cursor-style build prompt, an agent step script, or a Markdown report.

Usage:
  vibespecs generate "your app idea"   # Generate a PRD
  vibespecs export prd.json --format markdown
  vibespecs serve                      # Start the REST API server`,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if debug {
			log.SetLevel(log.DebugLevel)
		}

		cfg, err := config.Load(debug)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		vibespecsApp, err = app.New(context.Background(), cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize app: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
}

func Execute() {
	defer func() {
		if vibespecsApp != nil {
			vibespecsApp.Close()
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
