package benchmark

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/workflow-hub-api/internal/auth"
	"github.com/workflow-hub-api/internal/config"
	"github.com/workflow-hub-api/internal/mocks"
	"github.com/workflow-hub-api/internal/models"
	"github.com/workflow-hub-api/internal/repository"
	"github.com/workflow-hub-api/internal/service"
	"github.com/workflow-hub-api/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

const benchSecret = "benchmark-signing-key-0123456789abcdef"

func newServices(b *testing.B, users *mocks.MockUserRepository, workflows *mocks.MockWorkflowRepository) *service.Services {
	b.Helper()
	hasher, err := auth.NewBcryptHasher(bcrypt.MinCost)
	if err != nil {
		b.Fatal(err)
	}
	tokens, err := auth.NewJWTManager(benchSecret, zerolog.Nop())
	if err != nil {
		b.Fatal(err)
	}
	repos := &repository.Repositories{User: users, Workflow: workflows}
	return service.NewServices(repos, &config.Config{}, hasher, tokens, zerolog.Nop())
}

// BenchmarkTokenIssue benchmarks HS256 token signing
func BenchmarkTokenIssue(b *testing.B) {
	m, _ := auth.NewJWTManager(benchSecret, zerolog.Nop())

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := m.Issue(int64(i), "user@example.com"); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkTokenValidate benchmarks the per-request token check
func BenchmarkTokenValidate(b *testing.B) {
	m, _ := auth.NewJWTManager(benchSecret, zerolog.Nop())
	token, _ := m.Issue(1, "user@example.com")

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := m.Validate(token); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkBcryptCost compares hashing time across work factors
func BenchmarkBcryptCost(b *testing.B) {
	for _, cost := range []int{bcrypt.MinCost, 8, bcrypt.DefaultCost} {
		b.Run(fmt.Sprintf("cost=%d", cost), func(b *testing.B) {
			h, _ := auth.NewBcryptHasher(cost)
			for i := 0; i < b.N; i++ {
				if _, err := h.Hash("benchmark-password"); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkListVisible benchmarks filtering 1000 workflows for one caller
func BenchmarkListVisible(b *testing.B) {
	workflows := mocks.NewMockWorkflowRepository()
	for i := 0; i < 1000; i++ {
		workflows.Put(&models.Workflow{
			ID:       fmt.Sprintf("wf-%06d", i),
			Name:     fmt.Sprintf("Workflow %d", i),
			Owner:    fmt.Sprintf("user%d@example.com", i%50),
			IsPublic: i%10 == 0,
			Status:   models.WorkflowStatusRunning,
		})
	}
	svc := newServices(b, mocks.NewMockUserRepository(), workflows)
	ctx := context.Background()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := svc.Workflow.List(ctx, "user7@example.com"); err != nil {
			b.Fatal(err)
		}
	}

	b.ReportMetric(float64(1000*b.N)/b.Elapsed().Seconds(), "rows/sec")
}

// BenchmarkSocialLoginReturning benchmarks the returning-user social login path
func BenchmarkSocialLoginReturning(b *testing.B) {
	svc := newServices(b, mocks.NewMockUserRepository(), mocks.NewMockWorkflowRepository())
	ctx := context.Background()
	req := &models.SocialLoginRequest{Email: "returning@example.com", DisplayName: "Returning"}
	if _, err := svc.Identity.SocialLogin(ctx, req); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		res, err := svc.Identity.SocialLogin(ctx, req)
		if err != nil || res.IsNewUser {
			b.Fatalf("unexpected result: %+v %v", res, err)
		}
	}
}

// BenchmarkValidation benchmarks request validation and tag normalisation
func BenchmarkValidation(b *testing.B) {
	req := &models.CreateWorkflowRequest{
		Name:        "Nightly ETL",
		Status:      models.WorkflowStatusPaused,
		Tags:        []string{" ETL ", "Data", "", "Nightly"},
		CallerEmail: "user@example.com",
	}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if errs := validation.ValidateCreateWorkflow(req); len(errs) > 0 {
			b.Fatal(errs)
		}
		_ = validation.NormalizeTags(req.Tags)
	}
}
