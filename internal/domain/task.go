package domain

import (
	"context"
	"time"
)

// TaskStatus is the lifecycle state of an approval task.
type TaskStatus string

const (
	TaskStatusPending  TaskStatus = "pending"
	TaskStatusApproved TaskStatus = "approved"
	TaskStatusRejected TaskStatus = "rejected"
	TaskStatusExpired  TaskStatus = "expired"
)

// Valid reports whether the status is one of the closed set.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusApproved, TaskStatusRejected, TaskStatusExpired:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are permitted.
func (s TaskStatus) Terminal() bool {
	return s != TaskStatusPending
}

// Decision is an explicit actor decision on a pending task.
type Decision string

const (
	DecisionApproved Decision = "approved"
	DecisionRejected Decision = "rejected"
)

// Status returns the terminal status the decision transitions to.
func (d Decision) Status() TaskStatus {
	if d == DecisionApproved {
		return TaskStatusApproved
	}
	return TaskStatusRejected
}

// HistoryAction is the kind of one recorded task action.
type HistoryAction string

const (
	HistoryActionCreated  HistoryAction = "created"
	HistoryActionApproved HistoryAction = "approved"
	HistoryActionRejected HistoryAction = "rejected"
)

// Task represents one pending or resolved approval request originating from
// an external workflow run. History is ordered and append-only; a task
// transitions out of pending exactly once.
type Task struct {
	ID         string            `json:"id"`
	OrgID      string            `json:"org_id"`
	WorkflowID string            `json:"workflow_id"`
	Title      string            `json:"title"`
	Status     TaskStatus        `json:"status"`
	Payload    map[string]any    `json:"payload"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
	History    []TaskHistoryItem `json:"history"`
}

// TaskHistoryItem is an immutable record of one action against a task. The
// actor is an id+name snapshot, not a live reference.
type TaskHistoryItem struct {
	ID        string        `json:"id"`
	Action    HistoryAction `json:"action"`
	Actor     Actor         `json:"user"`
	Timestamp time.Time     `json:"timestamp"`
	Comment   string        `json:"comment,omitempty"`
}

// TaskDecide carries the prepared transition a repository applies atomically:
// the status update and the history append are one unit, visible together or
// not at all.
type TaskDecide struct {
	Status  TaskStatus
	Item    TaskHistoryItem
	Decided time.Time
}

// TaskRepository defines the interface for task storage.
//
// Decide applies the transition only if the task is still pending, returning
// ErrNotFound for an unknown task and ErrTaskNotActionable for a terminal
// one. Concurrent Decide calls against the same task are serialized: at most
// one wins. ListByOrg returns tasks in registry insertion order; pass an
// empty status to list all.
type TaskRepository interface {
	Create(ctx context.Context, task *Task) error
	GetByID(ctx context.Context, id string) (*Task, error)
	ListByOrg(ctx context.Context, orgID string, status TaskStatus) ([]Task, error)
	Decide(ctx context.Context, taskID string, decide TaskDecide) (*Task, error)
}
