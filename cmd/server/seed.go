package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/workflow-hub-api/internal/auth"
	"github.com/workflow-hub-api/internal/repository"
	"github.com/workflow-hub-api/internal/service"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the admin account and demo workflows",
	Long: `Upserts the admin user from ADMIN_EMAIL / ADMIN_PASSWORD and inserts the
public demo workflows when the workflows table is empty. Safe to run repeatedly.`,
	Args: cobra.NoArgs,
	RunE: runSeed,
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, log, db, err := connect()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.RunMigrations(cfg.Database.MigrationsPath); err != nil {
		return err
	}

	hasher, err := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	if err != nil {
		return err
	}

	seeder := service.NewSeedService(repository.New(db), cfg.Seed, hasher, log)
	res, err := seeder.Seed(cmd.Context())
	if err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "admin %s (id %d), %d workflows inserted\n",
		res.AdminEmail, res.AdminID, res.WorkflowsInserted)
	return nil
}
