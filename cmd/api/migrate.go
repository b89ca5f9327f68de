package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"example.com/notetaker/internal/db"
	"example.com/notetaker/internal/logger"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the notes schema and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := logger.New(cfg.LogLevel)
		defer func() { _ = log.Sync() }()

		conn, err := db.Open(cmd.Context(), cfg.DatabaseURL, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime, cfg.ConnMaxIdleTime)
		if err != nil {
			return err
		}
		defer conn.Close()

		if err := conn.Migrate(cmd.Context()); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		log.Info("schema is up to date", zap.String("dialect", string(conn.Dialect)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
