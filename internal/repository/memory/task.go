package memory

import (
	"context"

	"github.com/tempohq/tempo/internal/domain"
)

// TaskRepository is the in-memory task registry.
type TaskRepository struct {
	s *Store
}

// Create appends a task to the registry.
func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.tasks = append(r.s.tasks, copyTask(task))
	return nil
}

// GetByID retrieves a task by ID.
func (r *TaskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, t := range r.s.tasks {
		if t.ID == id {
			return copyTask(t), nil
		}
	}
	return nil, nil
}

// ListByOrg returns tasks for an organization in registry insertion order,
// optionally narrowed to one status.
func (r *TaskRepository) ListByOrg(ctx context.Context, orgID string, status domain.TaskStatus) ([]domain.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var tasks []domain.Task
	for _, t := range r.s.tasks {
		if t.OrgID != orgID {
			continue
		}
		if status != "" && t.Status != status {
			continue
		}
		tasks = append(tasks, *copyTask(t))
	}
	return tasks, nil
}

// Decide applies a terminal transition under the store lock. The pending
// check, status update and history append happen as one unit, so a loser of
// a concurrent decision race always observes ErrTaskNotActionable and the
// task is never left partially updated.
func (r *TaskRepository) Decide(ctx context.Context, taskID string, decide domain.TaskDecide) (*domain.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, t := range r.s.tasks {
		if t.ID != taskID {
			continue
		}
		if t.Status != domain.TaskStatusPending {
			return nil, domain.ErrTaskNotActionable
		}
		t.Status = decide.Status
		t.UpdatedAt = decide.Decided
		t.History = append(t.History, decide.Item)
		return copyTask(t), nil
	}
	return nil, domain.ErrNotFound
}
