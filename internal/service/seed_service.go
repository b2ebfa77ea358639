package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"github.com/workflow-hub-api/internal/auth"
	"github.com/workflow-hub-api/internal/config"
	"github.com/workflow-hub-api/internal/models"
	"github.com/workflow-hub-api/internal/repository"
)

const adminUsername = "Admin"

// SeedResult reports what a seed run touched
type SeedResult struct {
	AdminEmail        string `json:"admin_email"`
	AdminID           int64  `json:"admin_id"`
	WorkflowsInserted int    `json:"workflows_inserted"`
}

// seedService is the concrete implementation of SeedService
type seedService struct {
	users     repository.UserRepository
	workflows repository.WorkflowRepository
	cfg       config.SeedConfig
	hasher    auth.PasswordHasher
	log       zerolog.Logger
}

// NewSeedService creates a SeedService on its own, for callers that only seed
func NewSeedService(repos *repository.Repositories, cfg config.SeedConfig, hasher auth.PasswordHasher, log zerolog.Logger) SeedService {
	return &seedService{
		users:     repos.User,
		workflows: repos.Workflow,
		cfg:       cfg,
		hasher:    hasher,
		log:       log.With().Str("service", "seed").Logger(),
	}
}

// Seed upserts the admin account and, on an empty table, the demo workflows.
// Running it twice leaves the data unchanged.
func (s *seedService) Seed(ctx context.Context) (*SeedResult, error) {
	if strings.TrimSpace(s.cfg.AdminEmail) == "" {
		return nil, errors.New("seed: admin email is not configured")
	}
	if s.cfg.AdminPassword == "" {
		return nil, errors.New("seed: admin password is not configured")
	}

	hash, err := s.hasher.Hash(s.cfg.AdminPassword)
	if err != nil {
		return nil, err
	}

	admin := &models.User{
		Email:        s.cfg.AdminEmail,
		PasswordHash: hash,
		Username:     adminUsername,
	}
	if err := s.users.Upsert(ctx, admin); err != nil {
		return nil, err
	}
	s.log.Info().Int64("user_id", admin.ID).Str("email", admin.Email).Msg("Admin user ensured")

	result := &SeedResult{AdminEmail: admin.Email, AdminID: admin.ID}

	count, err := s.workflows.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		s.log.Info().Int("existing", count).Msg("Workflows present, skipping demo data")
		return result, nil
	}

	inserted, err := s.workflows.BatchInsert(ctx, demoWorkflows(admin.Email))
	if err != nil {
		return nil, err
	}
	result.WorkflowsInserted = inserted

	s.log.Info().Int("inserted", inserted).Msg("Demo workflows seeded")
	return result, nil
}

func demoWorkflows(owner string) []*models.Workflow {
	return []*models.Workflow{
		{
			ID:       "wf001",
			Name:     "Daily ETL Pipeline (Public)",
			Tags:     []string{"etl"},
			Status:   models.WorkflowStatusRunning,
			Owner:    owner,
			IsPublic: true,
			Runs:     []string{models.RunSuccess},
			Schedule: "Daily",
			NextRun:  "Tomorrow",
		},
		{
			ID:       "wf002",
			Name:     "Weekly Sync (Public)",
			Tags:     []string{"sql"},
			Status:   models.WorkflowStatusPaused,
			Owner:    owner,
			IsPublic: true,
			Runs:     []string{models.RunSuccess},
			Schedule: "Weekly",
			NextRun:  "Next Week",
		},
	}
}
