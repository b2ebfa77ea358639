package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/workflow-hub-api/internal/api"
	"github.com/workflow-hub-api/internal/auth"
	"github.com/workflow-hub-api/internal/repository"
	"github.com/workflow-hub-api/internal/service"
)

var skipMigrations bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "Do not apply pending migrations on start-up")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, log, db, err := connect()
	if err != nil {
		return err
	}
	defer db.Close()

	log.Info().Str("env", cfg.Env).Msg("Starting Workflow Hub API server...")

	if !skipMigrations {
		if err := db.RunMigrations(cfg.Database.MigrationsPath); err != nil {
			return fmt.Errorf("failed to run database migrations: %w", err)
		}
	}

	hasher, err := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	if err != nil {
		return err
	}
	log.Info().Int("bcrypt_cost", hasher.Cost()).Msg("Password hasher ready")
	tokens, err := auth.NewJWTManager(cfg.Auth.JWTSecret, log)
	if err != nil {
		return err
	}

	repos := repository.New(db)
	services := service.NewServices(repos, cfg, hasher, tokens, log)
	router := api.NewRouter(services, cfg, db, log)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	case <-quit:
	}
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("Server exited gracefully")
	return nil
}
