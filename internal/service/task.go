package service

import (
	"context"
	"fmt"
	"time"

	"github.com/tempohq/tempo/internal/domain"
	"github.com/tempohq/tempo/internal/metrics"
)

// TaskService handles the approval task registry
type TaskService struct {
	tasks domain.TaskRepository
	audit *AuditService
}

// NewTaskService creates a new task service
func NewTaskService(tasks domain.TaskRepository, audit *AuditService) *TaskService {
	return &TaskService{
		tasks: tasks,
		audit: audit,
	}
}

// TaskCreate represents task ingestion input from an external workflow run
type TaskCreate struct {
	WorkflowID string         `json:"workflow_id" validate:"required,max=255"`
	Title      string         `json:"title" validate:"required,max=255"`
	Payload    map[string]any `json:"payload"`
}

// List returns the active organization's tasks in registry order, optionally
// filtered by status. An empty status means all.
func (s *TaskService) List(ctx context.Context, session *domain.Session, status domain.TaskStatus) ([]domain.Task, error) {
	if session.ActiveOrgID == "" {
		return nil, nil
	}

	tasks, err := s.tasks.ListByOrg(ctx, session.ActiveOrgID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// Get returns one task. Tasks outside the active organization are not
// distinguishable from absent ones.
func (s *TaskService) Get(ctx context.Context, session *domain.Session, taskID string) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	if task == nil || task.OrgID != session.ActiveOrgID {
		return nil, domain.ErrNotFound
	}
	return task, nil
}

// Ingest registers a new pending task with a single "created" history entry
func (s *TaskService) Ingest(ctx context.Context, session *domain.Session, actor *domain.User, input TaskCreate) (*domain.Task, error) {
	if session.ActiveOrgID == "" {
		return nil, domain.ErrNotAMember
	}

	now := time.Now()
	task := &domain.Task{
		ID:         domain.NewID("task"),
		OrgID:      session.ActiveOrgID,
		WorkflowID: input.WorkflowID,
		Title:      input.Title,
		Status:     domain.TaskStatusPending,
		Payload:    input.Payload,
		CreatedAt:  now,
		UpdatedAt:  now,
		History: []domain.TaskHistoryItem{
			{
				ID:        domain.NewID("hist"),
				Action:    domain.HistoryActionCreated,
				Actor:     domain.Actor{ID: actor.ID, Name: actor.Name},
				Timestamp: now,
			},
		},
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

// Decide applies an approve or reject decision to a pending task. The status
// change and the history append are applied as one unit. Any member of the
// organization may decide; role-based gating is the caller's concern.
func (s *TaskService) Decide(ctx context.Context, session *domain.Session, actor *domain.User, taskID string, decision domain.Decision, comment string) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	if task == nil || task.OrgID != session.ActiveOrgID {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	decide := domain.TaskDecide{
		Status: decision.Status(),
		Item: domain.TaskHistoryItem{
			ID:        domain.NewID("hist"),
			Action:    domain.HistoryAction(decision),
			Actor:     domain.Actor{ID: actor.ID, Name: actor.Name},
			Timestamp: now,
			Comment:   comment,
		},
		Decided: now,
	}

	updated, err := s.tasks.Decide(ctx, taskID, decide)
	if err != nil {
		return nil, err
	}

	auditAction := domain.AuditActionTaskApproved
	if decision == domain.DecisionRejected {
		auditAction = domain.AuditActionTaskRejected
	}
	entry := &domain.AuditLog{
		OrgID:  task.OrgID,
		Actor:  domain.Actor{ID: actor.ID, Name: actor.Name},
		Action: auditAction,
		Target: domain.Target{Type: "task", ID: task.ID},
	}
	if comment != "" {
		entry.Meta = map[string]any{"comment": comment}
	}
	if err := s.audit.Record(ctx, entry); err != nil {
		return nil, err
	}

	metrics.Decisions.WithLabelValues(string(decision)).Inc()

	return updated, nil
}
