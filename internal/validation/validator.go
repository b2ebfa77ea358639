package validation

import (
	"fmt"
	"strings"

	"github.com/workflow-hub-api/internal/models"
)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// Summary joins validation errors into one human-readable message
func Summary(errs []ValidationError) string {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, "; ")
}

// isBlank treats whitespace-only input as missing
func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func required(errs []ValidationError, field, value string) []ValidationError {
	if isBlank(value) {
		errs = append(errs, ValidationError{Field: field, Message: field + " is required"})
	}
	return errs
}

// ValidateRegister validates a registration request
func ValidateRegister(req *models.RegisterRequest) []ValidationError {
	var errors []ValidationError
	errors = required(errors, "email", req.Email)
	errors = required(errors, "password", req.Password)
	errors = required(errors, "username", req.Username)
	return errors
}

// ValidateLogin validates a password login request
func ValidateLogin(req *models.LoginRequest) []ValidationError {
	var errors []ValidationError
	errors = required(errors, "email", req.Email)
	errors = required(errors, "password", req.Password)
	return errors
}

// ValidateSocialLogin validates the identity asserted by the social provider
func ValidateSocialLogin(req *models.SocialLoginRequest) []ValidationError {
	return required(nil, "email", req.Email)
}

// ValidateCreateWorkflow validates a workflow creation request
func ValidateCreateWorkflow(req *models.CreateWorkflowRequest) []ValidationError {
	var errors []ValidationError
	errors = required(errors, "name", req.Name)
	errors = required(errors, "email", req.CallerEmail)

	if req.Status != "" && !models.ValidStatuses[req.Status] {
		errors = append(errors, ValidationError{
			Field:   "status",
			Message: "invalid status, must be one of: Running, Paused, Completed",
			Value:   req.Status,
		})
	}
	return errors
}

// ValidateToggleStatus validates the target of a status toggle.
// Completed is a valid workflow status but not a toggle target.
func ValidateToggleStatus(status models.WorkflowStatus) []ValidationError {
	if status == "" {
		return []ValidationError{{Field: "newStatus", Message: "newStatus is required"}}
	}
	if !models.ToggleableStatuses[status] {
		return []ValidationError{{
			Field:   "newStatus",
			Message: fmt.Sprintf("invalid status provided, must be %s or %s", models.WorkflowStatusRunning, models.WorkflowStatusPaused),
			Value:   status,
		}}
	}
	return nil
}

// NormalizeTags trims and lowercases tags and drops empty entries, keeping order
func NormalizeTags(tags []string) []string {
	normalized := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag != "" {
			normalized = append(normalized, tag)
		}
	}
	return normalized
}

// EmailLocalPart returns the text before the first '@', or the whole address when it has none
func EmailLocalPart(email string) string {
	local, _, found := strings.Cut(email, "@")
	if !found {
		return strings.TrimSpace(email)
	}
	return strings.TrimSpace(local)
}
