package main

import (
	"github.com/spf13/cobra"

	"example.com/notetaker/internal/config"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "notetaker",
	Short: "Note-taking API with model-backed translation and auto-complete",
	Long: `notetaker serves a JSON API for notes: CRUD, search, Markdown export,
Chinese translation and writing assistance through a hosted chat model.

Configuration comes from the environment (and a .env file, if present).
Without a subcommand the server is started.`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error); overrides LOG_LEVEL")
}

// loadConfig reads the environment, applies flag overrides and validates
// the result once, before anything is opened.
func loadConfig() (config.Config, error) {
	cfg := config.Load()
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
