package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tempohq/tempo/internal/domain"
)

// UserRepository handles user directory data access
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a user with its memberships in one transaction
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO users (id, name, email, avatar_url, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := tx.Exec(ctx, query, user.ID, user.Name, user.Email, user.AvatarURL, user.CreatedAt); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	memberQuery := `
		INSERT INTO org_members (org_id, user_id, role)
		VALUES ($1, $2, $3)
	`
	for _, m := range user.Memberships {
		if _, err := tx.Exec(ctx, memberQuery, m.OrgID, user.ID, m.Role); err != nil {
			return fmt.Errorf("failed to create membership: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// GetByID retrieves a user by ID including memberships
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `
		SELECT id, name, email, avatar_url, created_at
		FROM users
		WHERE id = $1
	`
	return r.get(ctx, query, id)
}

// GetByEmail retrieves a user by email, case-insensitively
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, name, email, avatar_url, created_at
		FROM users
		WHERE lower(email) = lower($1)
	`
	return r.get(ctx, query, email)
}

func (r *UserRepository) get(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	err := r.db.Pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.AvatarURL,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	memberships, err := r.listMemberships(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	user.Memberships = memberships

	return &user, nil
}

func (r *UserRepository) listMemberships(ctx context.Context, userID string) ([]domain.OrgMembership, error) {
	query := `
		SELECT org_id, role
		FROM org_members
		WHERE user_id = $1
		ORDER BY seq
	`

	rows, err := r.db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}
	defer rows.Close()

	var memberships []domain.OrgMembership
	for rows.Next() {
		var m domain.OrgMembership
		if err := rows.Scan(&m.OrgID, &m.Role); err != nil {
			return nil, fmt.Errorf("failed to scan membership: %w", err)
		}
		memberships = append(memberships, m)
	}

	return memberships, rows.Err()
}
