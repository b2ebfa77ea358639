package service

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/workflow-hub-api/internal/auth"
	"github.com/workflow-hub-api/internal/config"
	"github.com/workflow-hub-api/internal/models"
	"github.com/workflow-hub-api/internal/repository"
)

// IdentityService defines the interface for the login flows
type IdentityService interface {
	Register(ctx context.Context, req *models.RegisterRequest) error
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResult, error)
	SocialLogin(ctx context.Context, req *models.SocialLoginRequest) (*models.SocialLoginResult, error)
	ForgotPassword(ctx context.Context, email string) (string, error)
}

// WorkflowService defines the interface for workflow access control
type WorkflowService interface {
	List(ctx context.Context, callerEmail string) ([]*models.Workflow, error)
	Create(ctx context.Context, req *models.CreateWorkflowRequest) (*models.Workflow, error)
	ToggleStatus(ctx context.Context, id string, status models.WorkflowStatus) (*models.Workflow, error)
}

// SeedService defines the interface for administrative seeding
type SeedService interface {
	Seed(ctx context.Context) (*SeedResult, error)
}

// Services holds all service interfaces
type Services struct {
	Identity IdentityService
	Workflow WorkflowService
	Seed     SeedService
	Tokens   auth.TokenManager
}

// NewServices creates all services
func NewServices(
	repos *repository.Repositories,
	cfg *config.Config,
	hasher auth.PasswordHasher,
	tokens auth.TokenManager,
	log zerolog.Logger,
) *Services {
	return &Services{
		Identity: newIdentityService(repos.User, hasher, tokens, log),
		Workflow: newWorkflowService(repos.Workflow, log),
		Seed:     NewSeedService(repos, cfg.Seed, hasher, log),
		Tokens:   tokens,
	}
}
