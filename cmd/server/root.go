package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/workflow-hub-api/internal/config"
	"github.com/workflow-hub-api/internal/database"
	"github.com/workflow-hub-api/pkg/logger"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "workflow-hub-api",
	Short: "Workflow Hub identity and workflow access API",
	Long: `Workflow Hub API serves password and social login, session tokens,
and owner-scoped workflow listings backed by PostgreSQL.

Running without a subcommand starts the HTTP server.`,
	SilenceUsage: true,
	RunE:         runServe,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to a YAML config file (default ./config.yaml if present)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(versionCmd)
}

// bootstrap loads configuration and builds the logger shared by every command
func bootstrap() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, zerolog.Nop(), err
	}

	log := logger.New(logger.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Env:    cfg.Env,
	})
	for _, w := range cfg.Warnings() {
		log.Warn().Str("env", cfg.Env).Msg(w)
	}
	return cfg, log, nil
}

// connect opens the database for commands that need it
func connect() (*config.Config, zerolog.Logger, *database.DB, error) {
	cfg, log, err := bootstrap()
	if err != nil {
		return nil, log, nil, err
	}

	db, err := database.New(&cfg.Database, log)
	if err != nil {
		return nil, log, nil, err
	}
	return cfg, log, db, nil
}
