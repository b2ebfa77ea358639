package mocks

import (
	"context"

	"github.com/workflow-hub-api/internal/models"
	"github.com/workflow-hub-api/internal/service"
)

// MockIdentityService is a mock implementation of IdentityService
type MockIdentityService struct {
	RegisterFunc       func(ctx context.Context, req *models.RegisterRequest) error
	LoginFunc          func(ctx context.Context, req *models.LoginRequest) (*models.LoginResult, error)
	SocialLoginFunc    func(ctx context.Context, req *models.SocialLoginRequest) (*models.SocialLoginResult, error)
	ForgotPasswordFunc func(ctx context.Context, email string) (string, error)

	Registered   []*models.RegisterRequest
	SocialLogins []*models.SocialLoginRequest
}

// Verify interface compliance
var _ service.IdentityService = (*MockIdentityService)(nil)

func NewMockIdentityService() *MockIdentityService {
	return &MockIdentityService{}
}

func (m *MockIdentityService) Register(ctx context.Context, req *models.RegisterRequest) error {
	m.Registered = append(m.Registered, req)
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, req)
	}
	return nil
}

func (m *MockIdentityService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, req)
	}
	return &models.LoginResult{
		Success: true,
		Token:   "test-token",
		User:    models.UserProfile{Email: req.Email, Username: models.DefaultDisplayName},
	}, nil
}

func (m *MockIdentityService) SocialLogin(ctx context.Context, req *models.SocialLoginRequest) (*models.SocialLoginResult, error) {
	m.SocialLogins = append(m.SocialLogins, req)
	if m.SocialLoginFunc != nil {
		return m.SocialLoginFunc(ctx, req)
	}
	return &models.SocialLoginResult{
		Success: true,
		Token:   "test-token",
		User:    models.UserProfile{Email: req.Email, Username: req.DisplayName},
	}, nil
}

func (m *MockIdentityService) ForgotPassword(ctx context.Context, email string) (string, error) {
	if m.ForgotPasswordFunc != nil {
		return m.ForgotPasswordFunc(ctx, email)
	}
	return "ok", nil
}

// MockWorkflowService is a mock implementation of WorkflowService
type MockWorkflowService struct {
	ListFunc         func(ctx context.Context, callerEmail string) ([]*models.Workflow, error)
	CreateFunc       func(ctx context.Context, req *models.CreateWorkflowRequest) (*models.Workflow, error)
	ToggleStatusFunc func(ctx context.Context, id string, status models.WorkflowStatus) (*models.Workflow, error)

	ListCallers []string
	Created     []*models.CreateWorkflowRequest
}

// Verify interface compliance
var _ service.WorkflowService = (*MockWorkflowService)(nil)

func NewMockWorkflowService() *MockWorkflowService {
	return &MockWorkflowService{}
}

func (m *MockWorkflowService) List(ctx context.Context, callerEmail string) ([]*models.Workflow, error) {
	m.ListCallers = append(m.ListCallers, callerEmail)
	if m.ListFunc != nil {
		return m.ListFunc(ctx, callerEmail)
	}
	return []*models.Workflow{}, nil
}

func (m *MockWorkflowService) Create(ctx context.Context, req *models.CreateWorkflowRequest) (*models.Workflow, error) {
	m.Created = append(m.Created, req)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, req)
	}
	return &models.Workflow{
		ID:     "wf-1",
		Name:   req.Name,
		Status: models.WorkflowStatusRunning,
		Owner:  req.CallerEmail,
	}, nil
}

func (m *MockWorkflowService) ToggleStatus(ctx context.Context, id string, status models.WorkflowStatus) (*models.Workflow, error) {
	if m.ToggleStatusFunc != nil {
		return m.ToggleStatusFunc(ctx, id, status)
	}
	return &models.Workflow{ID: id, Status: status}, nil
}

// MockSeedService is a mock implementation of SeedService
type MockSeedService struct {
	SeedFunc func(ctx context.Context) (*service.SeedResult, error)
	Calls    int
}

// Verify interface compliance
var _ service.SeedService = (*MockSeedService)(nil)

func (m *MockSeedService) Seed(ctx context.Context) (*service.SeedResult, error) {
	m.Calls++
	if m.SeedFunc != nil {
		return m.SeedFunc(ctx)
	}
	return &service.SeedResult{}, nil
}
