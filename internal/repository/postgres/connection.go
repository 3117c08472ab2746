package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tempohq/tempo/internal/domain"
)

// ConnectionRepository handles workflow cluster connection data access
type ConnectionRepository struct {
	db *DB
}

// NewConnectionRepository creates a new connection repository
func NewConnectionRepository(db *DB) *ConnectionRepository {
	return &ConnectionRepository{db: db}
}

// Create creates a new connection
func (r *ConnectionRepository) Create(ctx context.Context, conn *domain.Connection) error {
	query := `
		INSERT INTO connections (id, org_id, display_name, target, client_type, api_key_encrypted, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		conn.ID,
		conn.OrgID,
		conn.DisplayName,
		conn.Target,
		conn.ClientType,
		conn.APIKeyEncrypted,
		conn.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create connection: %w", err)
	}

	return nil
}

// GetByID retrieves a connection by ID
func (r *ConnectionRepository) GetByID(ctx context.Context, id string) (*domain.Connection, error) {
	query := `
		SELECT id, org_id, display_name, target, client_type, api_key_encrypted, created_at
		FROM connections
		WHERE id = $1
	`

	var conn domain.Connection
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&conn.ID,
		&conn.OrgID,
		&conn.DisplayName,
		&conn.Target,
		&conn.ClientType,
		&conn.APIKeyEncrypted,
		&conn.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get connection: %w", err)
	}

	return &conn, nil
}

// ListByOrg retrieves all connections for an organization in insertion order
func (r *ConnectionRepository) ListByOrg(ctx context.Context, orgID string) ([]domain.Connection, error) {
	query := `
		SELECT id, org_id, display_name, target, client_type, api_key_encrypted, created_at
		FROM connections
		WHERE org_id = $1
		ORDER BY seq
	`

	rows, err := r.db.Pool.Query(ctx, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list connections: %w", err)
	}
	defer rows.Close()

	var conns []domain.Connection
	for rows.Next() {
		var conn domain.Connection
		if err := rows.Scan(
			&conn.ID,
			&conn.OrgID,
			&conn.DisplayName,
			&conn.Target,
			&conn.ClientType,
			&conn.APIKeyEncrypted,
			&conn.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan connection: %w", err)
		}
		conns = append(conns, conn)
	}

	return conns, rows.Err()
}

// Delete removes a connection; a repeated delete fails with ErrNotFound
func (r *ConnectionRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM connections WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete connection: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}
