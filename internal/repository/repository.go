package repository

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/workflow-hub-api/internal/database"
	"github.com/workflow-hub-api/internal/models"
)

// ErrDuplicate is returned when an insert violates a uniqueness constraint
var ErrDuplicate = errors.New("duplicate key")

// uniqueViolation is the PostgreSQL SQLSTATE for unique_violation
const uniqueViolation = pq.ErrorCode("23505")

// psql builds PostgreSQL flavoured statements
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	Upsert(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Count(ctx context.Context) (int, error)
}

// WorkflowRepository defines the interface for workflow data operations
type WorkflowRepository interface {
	Create(ctx context.Context, workflow *models.Workflow) error
	BatchInsert(ctx context.Context, workflows []*models.Workflow) (int, error)
	GetByID(ctx context.Context, id string) (*models.Workflow, error)
	ListVisible(ctx context.Context, callerEmail string) ([]*models.Workflow, error)
	UpdateStatus(ctx context.Context, id string, status models.WorkflowStatus) (*models.Workflow, error)
	Count(ctx context.Context) (int, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	User     UserRepository
	Workflow WorkflowRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		User:     NewUserRepo(db),
		Workflow: NewWorkflowRepo(db),
	}
}

// translateError maps driver errors onto repository sentinels
func translateError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return &duplicateError{constraint: pqErr.Constraint, cause: err}
	}
	return err
}

type duplicateError struct {
	constraint string
	cause      error
}

func (e *duplicateError) Error() string {
	if e.constraint == "" {
		return ErrDuplicate.Error()
	}
	return ErrDuplicate.Error() + " (" + e.constraint + ")"
}

func (e *duplicateError) Is(target error) bool { return target == ErrDuplicate }

func (e *duplicateError) Unwrap() error { return e.cause }
