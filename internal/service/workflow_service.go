package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/workflow-hub-api/internal/models"
	"github.com/workflow-hub-api/internal/repository"
	"github.com/workflow-hub-api/internal/validation"
)

// maxIDAttempts bounds retries when a generated workflow ID is already taken
const maxIDAttempts = 3

// workflowService is the concrete implementation of WorkflowService
type workflowService struct {
	repo repository.WorkflowRepository
	log  zerolog.Logger
	now  func() time.Time
}

// newWorkflowService creates a new WorkflowService
func newWorkflowService(repo repository.WorkflowRepository, log zerolog.Logger) *workflowService {
	return &workflowService{
		repo: repo,
		log:  log.With().Str("service", "workflow").Logger(),
		now:  time.Now,
	}
}

// List returns the workflows the caller may see: public ones plus their own
func (s *workflowService) List(ctx context.Context, callerEmail string) ([]*models.Workflow, error) {
	if strings.TrimSpace(callerEmail) == "" {
		return nil, newValidationError([]validation.ValidationError{{Field: "email", Message: "email is required"}})
	}

	workflows, err := s.repo.ListVisible(ctx, callerEmail)
	if err != nil {
		s.log.Error().Err(err).Str("caller", callerEmail).Msg("Failed to list workflows")
		return nil, internalError()
	}
	return workflows, nil
}

// Create stores a private workflow owned by the caller
func (s *workflowService) Create(ctx context.Context, req *models.CreateWorkflowRequest) (*models.Workflow, error) {
	if errs := validation.ValidateCreateWorkflow(req); len(errs) > 0 {
		return nil, newValidationError(errs)
	}

	status := req.Status
	if status == "" {
		status = models.WorkflowStatusRunning
	}
	schedule := strings.TrimSpace(req.Schedule)
	if schedule == "" {
		schedule = models.DefaultSchedule
	}

	wf := &models.Workflow{
		Name:     strings.TrimSpace(req.Name),
		Tags:     validation.NormalizeTags(req.Tags),
		Status:   status,
		Owner:    req.CallerEmail,
		IsPublic: false,
		Runs:     []string{models.RunPending},
		Schedule: schedule,
		NextRun:  models.DefaultNextRun,
	}

	at := s.now()
	for attempt := 1; attempt <= maxIDAttempts; attempt++ {
		wf.ID = fmt.Sprintf("wf-%d", at.UnixMilli())

		err := s.repo.Create(ctx, wf)
		if err == nil {
			s.log.Info().Str("workflow_id", wf.ID).Str("owner", wf.Owner).Msg("Workflow created")
			return wf, nil
		}
		if !errors.Is(err, repository.ErrDuplicate) {
			s.log.Error().Err(err).Str("owner", wf.Owner).Msg("Failed to create workflow")
			return nil, internalError()
		}

		s.log.Warn().Str("workflow_id", wf.ID).Int("attempt", attempt).Msg("Workflow ID collision")
		at = at.Add(time.Millisecond)
	}

	s.log.Error().Str("owner", wf.Owner).Msg("Exhausted workflow ID attempts")
	return nil, internalError()
}

// ToggleStatus flips a workflow between Running and Paused.
// Any caller may toggle any workflow; there is no ownership check.
func (s *workflowService) ToggleStatus(ctx context.Context, id string, status models.WorkflowStatus) (*models.Workflow, error) {
	if errs := validation.ValidateToggleStatus(status); len(errs) > 0 {
		return nil, newValidationError(errs)
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.log.Error().Err(err).Str("workflow_id", id).Msg("Failed to load workflow")
		return nil, internalError()
	}
	if current == nil {
		return nil, newError(ErrNotFound, "Workflow ID not found to update.")
	}

	wf, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		s.log.Error().Err(err).Str("workflow_id", id).Msg("Failed to update workflow status")
		return nil, internalError()
	}
	// Nothing deletes workflows, but a zero-row update still means the id is gone
	if wf == nil {
		return nil, newError(ErrNotFound, "Workflow ID not found to update.")
	}

	s.log.Info().
		Str("workflow_id", id).
		Str("from", string(current.Status)).
		Str("to", string(status)).
		Msg("Workflow status updated")
	return wf, nil
}
