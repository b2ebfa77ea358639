package repository

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/workflow-hub-api/internal/database"
	"github.com/workflow-hub-api/internal/models"
)

var workflowColumns = []string{
	"id", "name", "tags", "status", "owner", "is_public", "runs", "schedule", "next_run", "created_at",
}

// workflowRepo is the concrete implementation of WorkflowRepository
type workflowRepo struct {
	db *database.DB
}

// NewWorkflowRepo creates a new workflow repository
func NewWorkflowRepo(db *database.DB) WorkflowRepository {
	return &workflowRepo{db: db}
}

// Create inserts a new workflow. A taken ID yields ErrDuplicate.
func (r *workflowRepo) Create(ctx context.Context, wf *models.Workflow) error {
	normalizeArrays(wf)

	query, args, err := psql.Insert("workflows").
		Columns("id", "name", "tags", "status", "owner", "is_public", "runs", "schedule", "next_run").
		Values(wf.ID, wf.Name, wf.Tags, wf.Status, wf.Owner, wf.IsPublic, wf.Runs, wf.Schedule, wf.NextRun).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return err
	}

	err = r.db.QueryRowxContext(ctx, query, args...).Scan(&wf.CreatedAt)
	return translateError(err)
}

// BatchInsert inserts multiple workflows using PostgreSQL COPY for efficiency
func (r *workflowRepo) BatchInsert(ctx context.Context, workflows []*models.Workflow) (int, error) {
	if len(workflows) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("workflows",
		"id", "name", "tags", "status", "owner", "is_public", "runs", "schedule", "next_run",
	))
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, wf := range workflows {
		normalizeArrays(wf)
		if _, err := stmt.ExecContext(ctx,
			wf.ID, wf.Name, wf.Tags, wf.Status, wf.Owner, wf.IsPublic, wf.Runs, wf.Schedule, wf.NextRun,
		); err != nil {
			return 0, err
		}
	}

	// Execute the COPY
	if _, err := stmt.ExecContext(ctx); err != nil {
		return 0, translateError(err)
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return len(workflows), nil
}

// GetByID retrieves a workflow by ID, returning nil when absent
func (r *workflowRepo) GetByID(ctx context.Context, id string) (*models.Workflow, error) {
	query, args, err := psql.Select(workflowColumns...).From("workflows").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	var wf models.Workflow
	err = r.db.GetContext(ctx, &wf, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &wf, nil
}

// ListVisible returns every public workflow plus those owned by callerEmail
func (r *workflowRepo) ListVisible(ctx context.Context, callerEmail string) ([]*models.Workflow, error) {
	query, args, err := psql.Select(workflowColumns...).
		From("workflows").
		Where(sq.Or{
			sq.Eq{"is_public": true},
			sq.Eq{"owner": callerEmail},
		}).
		ToSql()
	if err != nil {
		return nil, err
	}

	workflows := make([]*models.Workflow, 0)
	if err := r.db.SelectContext(ctx, &workflows, query, args...); err != nil {
		return nil, err
	}
	return workflows, nil
}

// UpdateStatus sets the status of a workflow and returns the updated row,
// or nil when no workflow has the given ID
func (r *workflowRepo) UpdateStatus(ctx context.Context, id string, status models.WorkflowStatus) (*models.Workflow, error) {
	query, args, err := psql.Update("workflows").
		Set("status", status).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING id, name, tags, status, owner, is_public, runs, schedule, next_run, created_at").
		ToSql()
	if err != nil {
		return nil, err
	}

	var wf models.Workflow
	err = r.db.QueryRowxContext(ctx, query, args...).StructScan(&wf)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &wf, nil
}

// Count returns the total number of workflows
func (r *workflowRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM workflows")
	return count, err
}

// normalizeArrays keeps NOT NULL array columns from receiving NULL
func normalizeArrays(wf *models.Workflow) {
	if wf.Tags == nil {
		wf.Tags = pq.StringArray{}
	}
	if wf.Runs == nil {
		wf.Runs = pq.StringArray{}
	}
}
