package validation

import (
	"reflect"
	"testing"

	"github.com/workflow-hub-api/internal/models"
)

func fieldsOf(errs []ValidationError) []string {
	fields := make([]string, 0, len(errs))
	for _, e := range errs {
		fields = append(fields, e.Field)
	}
	return fields
}

func TestValidateRegister(t *testing.T) {
	tests := []struct {
		name       string
		req        *models.RegisterRequest
		wantFields []string
	}{
		{
			name:       "valid registration",
			req:        &models.RegisterRequest{Email: "a@b.com", Password: "secret", Username: "alice"},
			wantFields: []string{},
		},
		{
			name:       "missing everything",
			req:        &models.RegisterRequest{},
			wantFields: []string{"email", "password", "username"},
		},
		{
			name:       "whitespace username counts as missing",
			req:        &models.RegisterRequest{Email: "a@b.com", Password: "secret", Username: "   "},
			wantFields: []string{"username"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fieldsOf(ValidateRegister(tt.req))
			if !reflect.DeepEqual(got, tt.wantFields) {
				t.Errorf("Expected fields %v, got %v", tt.wantFields, got)
			}
		})
	}
}

func TestValidateLogin(t *testing.T) {
	if errs := ValidateLogin(&models.LoginRequest{Email: "a@b.com", Password: "x"}); len(errs) != 0 {
		t.Errorf("Expected no errors, got %v", errs)
	}
	if errs := ValidateLogin(&models.LoginRequest{Email: "a@b.com"}); len(errs) != 1 || errs[0].Field != "password" {
		t.Errorf("Expected password error, got %v", errs)
	}
}

func TestValidateSocialLogin(t *testing.T) {
	if errs := ValidateSocialLogin(&models.SocialLoginRequest{DisplayName: "Jane"}); len(errs) != 1 {
		t.Errorf("Expected email error, got %v", errs)
	}
	if errs := ValidateSocialLogin(&models.SocialLoginRequest{Email: "jane@x.com"}); len(errs) != 0 {
		t.Errorf("displayName is optional, got %v", errs)
	}
}

func TestValidateCreateWorkflow(t *testing.T) {
	tests := []struct {
		name       string
		req        *models.CreateWorkflowRequest
		wantFields []string
	}{
		{
			name:       "defaults are fine",
			req:        &models.CreateWorkflowRequest{Name: "ETL", CallerEmail: "a@b.com"},
			wantFields: []string{},
		},
		{
			name:       "empty name",
			req:        &models.CreateWorkflowRequest{Name: "", CallerEmail: "a@b.com"},
			wantFields: []string{"name"},
		},
		{
			name:       "missing caller",
			req:        &models.CreateWorkflowRequest{Name: "ETL"},
			wantFields: []string{"email"},
		},
		{
			name:       "completed is a valid initial status",
			req:        &models.CreateWorkflowRequest{Name: "ETL", CallerEmail: "a@b.com", Status: models.WorkflowStatusCompleted},
			wantFields: []string{},
		},
		{
			name:       "unknown status",
			req:        &models.CreateWorkflowRequest{Name: "ETL", CallerEmail: "a@b.com", Status: "Exploded"},
			wantFields: []string{"status"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fieldsOf(ValidateCreateWorkflow(tt.req))
			if !reflect.DeepEqual(got, tt.wantFields) {
				t.Errorf("Expected fields %v, got %v", tt.wantFields, got)
			}
		})
	}
}

func TestValidateToggleStatus(t *testing.T) {
	for _, ok := range []models.WorkflowStatus{models.WorkflowStatusRunning, models.WorkflowStatusPaused} {
		if errs := ValidateToggleStatus(ok); len(errs) != 0 {
			t.Errorf("%s should be a valid toggle target, got %v", ok, errs)
		}
	}
	for _, bad := range []models.WorkflowStatus{"", models.WorkflowStatusCompleted, "running"} {
		if errs := ValidateToggleStatus(bad); len(errs) != 1 {
			t.Errorf("%q should be rejected, got %v", bad, errs)
		}
	}
}

func TestNormalizeTags(t *testing.T) {
	got := NormalizeTags([]string{" ETL ", "", "Sql", "  "})
	want := []string{"etl", "sql"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}

	if got := NormalizeTags(nil); got == nil || len(got) != 0 {
		t.Errorf("Expected empty non-nil slice, got %#v", got)
	}
}

func TestEmailLocalPart(t *testing.T) {
	tests := map[string]string{
		"new@x.com":   "new",
		"a.b@c@d.com": "a.b",
		"@x.com":      "",
		"plain":       "plain",
	}
	for in, want := range tests {
		if got := EmailLocalPart(in); got != want {
			t.Errorf("EmailLocalPart(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSummary(t *testing.T) {
	errs := ValidateRegister(&models.RegisterRequest{})
	if got := Summary(errs); got != "email is required; password is required; username is required" {
		t.Errorf("Unexpected summary %q", got)
	}
}
