package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tempohq/tempo/internal/domain"
)

// TaskRepository handles task registry data access
type TaskRepository struct {
	db *DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create creates a task and its initial history in one transaction
func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) error {
	payload, err := json.Marshal(task.Payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO tasks (id, org_id, workflow_id, title, status, payload, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = tx.Exec(ctx, query,
		task.ID,
		task.OrgID,
		task.WorkflowID,
		task.Title,
		task.Status,
		payload,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	for _, item := range task.History {
		if err := insertHistory(ctx, tx, task.ID, item); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// GetByID retrieves a task by ID including its ordered history
func (r *TaskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := `
		SELECT id, org_id, workflow_id, title, status, payload, created_at, updated_at
		FROM tasks
		WHERE id = $1
	`

	task, err := scanTask(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	history, err := r.listHistory(ctx, task.ID)
	if err != nil {
		return nil, err
	}
	task.History = history

	return task, nil
}

// ListByOrg retrieves tasks for an organization in registry insertion order,
// optionally narrowed to one status
func (r *TaskRepository) ListByOrg(ctx context.Context, orgID string, status domain.TaskStatus) ([]domain.Task, error) {
	query := `
		SELECT id, org_id, workflow_id, title, status, payload, created_at, updated_at
		FROM tasks
		WHERE org_id = $1
	`
	args := []any{orgID}
	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY seq`

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, *task)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range tasks {
		history, err := r.listHistory(ctx, tasks[i].ID)
		if err != nil {
			return nil, err
		}
		tasks[i].History = history
	}

	return tasks, nil
}

// Decide applies a terminal transition. The row is locked for the duration
// of the transaction, so the status update and the history append commit as
// one unit and concurrent decisions on the same task serialize: the loser
// sees the terminal status and fails with ErrTaskNotActionable.
func (r *TaskRepository) Decide(ctx context.Context, taskID string, decide domain.TaskDecide) (*domain.Task, error) {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var status domain.TaskStatus
	err = tx.QueryRow(ctx, `SELECT status FROM tasks WHERE id = $1 FOR UPDATE`, taskID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock task: %w", err)
	}
	if status != domain.TaskStatusPending {
		return nil, domain.ErrTaskNotActionable
	}

	_, err = tx.Exec(ctx,
		`UPDATE tasks SET status = $2, updated_at = $3 WHERE id = $1`,
		taskID, decide.Status, decide.Decided,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	if err := insertHistory(ctx, tx, taskID, decide.Item); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit decision: %w", err)
	}

	return r.GetByID(ctx, taskID)
}

func insertHistory(ctx context.Context, tx pgx.Tx, taskID string, item domain.TaskHistoryItem) error {
	query := `
		INSERT INTO task_history (id, task_id, action, actor_id, actor_name, ts, comment)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := tx.Exec(ctx, query,
		item.ID,
		taskID,
		item.Action,
		item.Actor.ID,
		item.Actor.Name,
		item.Timestamp,
		item.Comment,
	)
	if err != nil {
		return fmt.Errorf("failed to insert history item: %w", err)
	}
	return nil
}

func (r *TaskRepository) listHistory(ctx context.Context, taskID string) ([]domain.TaskHistoryItem, error) {
	query := `
		SELECT id, action, actor_id, actor_name, ts, comment
		FROM task_history
		WHERE task_id = $1
		ORDER BY seq
	`

	rows, err := r.db.Pool.Query(ctx, query, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list task history: %w", err)
	}
	defer rows.Close()

	var history []domain.TaskHistoryItem
	for rows.Next() {
		var item domain.TaskHistoryItem
		if err := rows.Scan(
			&item.ID,
			&item.Action,
			&item.Actor.ID,
			&item.Actor.Name,
			&item.Timestamp,
			&item.Comment,
		); err != nil {
			return nil, fmt.Errorf("failed to scan history item: %w", err)
		}
		history = append(history, item)
	}

	return history, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var task domain.Task
	var payload []byte

	if err := row.Scan(
		&task.ID,
		&task.OrgID,
		&task.WorkflowID,
		&task.Title,
		&task.Status,
		&payload,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &task.Payload); err != nil {
			return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
		}
	}

	return &task, nil
}
