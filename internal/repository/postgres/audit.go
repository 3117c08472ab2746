package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tempohq/tempo/internal/domain"
)

// AuditRepository handles audit log data access. Append-only: no update or
// delete statements exist against audit_logs.
type AuditRepository struct {
	db *DB
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db *DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Append records an audit entry
func (r *AuditRepository) Append(ctx context.Context, entry *domain.AuditLog) error {
	meta, err := json.Marshal(entry.Meta)
	if err != nil {
		return fmt.Errorf("failed to marshal meta: %w", err)
	}

	query := `
		INSERT INTO audit_logs (id, org_id, actor_id, actor_name, action, target_type, target_id, meta, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err = r.db.Pool.Exec(ctx, query,
		entry.ID,
		entry.OrgID,
		entry.Actor.ID,
		entry.Actor.Name,
		entry.Action,
		entry.Target.Type,
		entry.Target.ID,
		meta,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}

	return nil
}

// ListByOrg retrieves entries for an organization newest-first. The seq
// tiebreaker keeps insertion order for entries with equal timestamps.
func (r *AuditRepository) ListByOrg(ctx context.Context, orgID string) ([]domain.AuditLog, error) {
	query := `
		SELECT id, org_id, actor_id, actor_name, action, target_type, target_id, meta, created_at
		FROM audit_logs
		WHERE org_id = $1
		ORDER BY created_at DESC, seq
	`

	rows, err := r.db.Pool.Query(ctx, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.AuditLog
	for rows.Next() {
		var entry domain.AuditLog
		var meta []byte

		if err := rows.Scan(
			&entry.ID,
			&entry.OrgID,
			&entry.Actor.ID,
			&entry.Actor.Name,
			&entry.Action,
			&entry.Target.Type,
			&entry.Target.ID,
			&meta,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}

		if len(meta) > 0 {
			if err := json.Unmarshal(meta, &entry.Meta); err != nil {
				return nil, fmt.Errorf("failed to unmarshal meta: %w", err)
			}
		}

		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
