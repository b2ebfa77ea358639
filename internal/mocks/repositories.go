package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/workflow-hub-api/internal/models"
	"github.com/workflow-hub-api/internal/repository"
)

var (
	_ repository.UserRepository     = (*MockUserRepository)(nil)
	_ repository.WorkflowRepository = (*MockWorkflowRepository)(nil)
)

// MockUserRepository is an in-memory UserRepository that enforces unique emails
// the way the users_email_key constraint does
type MockUserRepository struct {
	mu          sync.Mutex
	Users       map[int64]*models.User
	EmailToUser map[string]*models.User
	nextID      int64

	InsertError  error
	LookupError  error
	CreateCalls  int
	LookupCalls  int
	// StaleLookups makes the next N GetByEmail calls miss, simulating a
	// concurrent writer that inserts between the lookup and the create
	StaleLookups int
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users:       make(map[int64]*models.User),
		EmailToUser: make(map[string]*models.User),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateCalls++
	if m.InsertError != nil {
		return m.InsertError
	}
	if _, exists := m.EmailToUser[user.Email]; exists {
		return repository.ErrDuplicate
	}
	m.store(user)
	return nil
}

func (m *MockUserRepository) Upsert(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.InsertError != nil {
		return m.InsertError
	}
	if existing, ok := m.EmailToUser[user.Email]; ok {
		*user = *existing
		return nil
	}
	m.store(user)
	return nil
}

func (m *MockUserRepository) store(user *models.User) {
	m.nextID++
	now := time.Now()
	user.ID = m.nextID
	user.CreatedAt = now
	user.UpdatedAt = now

	stored := *user
	m.Users[stored.ID] = &stored
	m.EmailToUser[stored.Email] = &stored
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LookupCalls++
	if m.LookupError != nil {
		return nil, m.LookupError
	}
	if m.StaleLookups > 0 {
		m.StaleLookups--
		return nil, nil
	}
	if u, ok := m.EmailToUser[email]; ok {
		c := *u
		return &c, nil
	}
	return nil, nil
}

func (m *MockUserRepository) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Users), nil
}

// MockWorkflowRepository is an in-memory WorkflowRepository keyed by workflow ID
type MockWorkflowRepository struct {
	mu        sync.Mutex
	Workflows map[string]*models.Workflow

	CreateFunc       func(ctx context.Context, wf *models.Workflow) error
	InsertError      error
	ListError        error
	UpdateError      error
	UpdateCalls      int
	CreatedIDs       []string
	BatchInsertCalls int
}

func NewMockWorkflowRepository() *MockWorkflowRepository {
	return &MockWorkflowRepository{
		Workflows: make(map[string]*models.Workflow),
	}
}

// Put stores a workflow directly, bypassing Create
func (m *MockWorkflowRepository) Put(wf *models.Workflow) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *wf
	m.Workflows[wf.ID] = &c
}

func (m *MockWorkflowRepository) Create(ctx context.Context, wf *models.Workflow) error {
	if m.CreateFunc != nil {
		if err := m.CreateFunc(ctx, wf); err != nil {
			return err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreatedIDs = append(m.CreatedIDs, wf.ID)
	if m.InsertError != nil {
		return m.InsertError
	}
	if _, exists := m.Workflows[wf.ID]; exists {
		return repository.ErrDuplicate
	}
	wf.CreatedAt = time.Now()
	c := *wf
	m.Workflows[wf.ID] = &c
	return nil
}

func (m *MockWorkflowRepository) BatchInsert(ctx context.Context, workflows []*models.Workflow) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.BatchInsertCalls++
	if m.InsertError != nil {
		return 0, m.InsertError
	}
	for _, wf := range workflows {
		if _, exists := m.Workflows[wf.ID]; exists {
			return 0, repository.ErrDuplicate
		}
	}
	for _, wf := range workflows {
		c := *wf
		m.Workflows[wf.ID] = &c
	}
	return len(workflows), nil
}

func (m *MockWorkflowRepository) GetByID(ctx context.Context, id string) (*models.Workflow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if wf, ok := m.Workflows[id]; ok {
		c := *wf
		return &c, nil
	}
	return nil, nil
}

func (m *MockWorkflowRepository) ListVisible(ctx context.Context, callerEmail string) ([]*models.Workflow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ListError != nil {
		return nil, m.ListError
	}
	visible := make([]*models.Workflow, 0)
	for _, wf := range m.Workflows {
		if wf.VisibleTo(callerEmail) {
			c := *wf
			visible = append(visible, &c)
		}
	}
	sort.Slice(visible, func(i, j int) bool { return visible[i].ID < visible[j].ID })
	return visible, nil
}

func (m *MockWorkflowRepository) UpdateStatus(ctx context.Context, id string, status models.WorkflowStatus) (*models.Workflow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.UpdateCalls++
	if m.UpdateError != nil {
		return nil, m.UpdateError
	}
	wf, ok := m.Workflows[id]
	if !ok {
		return nil, nil
	}
	wf.Status = status
	c := *wf
	return &c, nil
}

func (m *MockWorkflowRepository) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Workflows), nil
}
