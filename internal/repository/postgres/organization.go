package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tempohq/tempo/internal/domain"
)

// OrganizationRepository handles organization data access
type OrganizationRepository struct {
	db *DB
}

// NewOrganizationRepository creates a new organization repository
func NewOrganizationRepository(db *DB) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

// Create creates a new organization
func (r *OrganizationRepository) Create(ctx context.Context, org *domain.Organization) error {
	query := `
		INSERT INTO orgs (id, name, slug, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.Pool.Exec(ctx, query, org.ID, org.Name, org.Slug, org.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create organization: %w", err)
	}

	return nil
}

// GetByID retrieves an organization by ID
func (r *OrganizationRepository) GetByID(ctx context.Context, id string) (*domain.Organization, error) {
	query := `
		SELECT id, name, slug, created_at
		FROM orgs
		WHERE id = $1
	`

	var org domain.Organization
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(&org.ID, &org.Name, &org.Slug, &org.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}

	return &org, nil
}

// ListByUserID retrieves the organizations a user is a member of, in
// directory insertion order
func (r *OrganizationRepository) ListByUserID(ctx context.Context, userID string) ([]domain.Organization, error) {
	query := `
		SELECT o.id, o.name, o.slug, o.created_at
		FROM orgs o
		INNER JOIN org_members m ON o.id = m.org_id
		WHERE m.user_id = $1
		ORDER BY o.seq
	`

	rows, err := r.db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	defer rows.Close()

	var orgs []domain.Organization
	for rows.Next() {
		var org domain.Organization
		if err := rows.Scan(&org.ID, &org.Name, &org.Slug, &org.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan organization: %w", err)
		}
		orgs = append(orgs, org)
	}

	return orgs, rows.Err()
}

// AddMember adds a member to an organization, updating the role if the
// membership already exists
func (r *OrganizationRepository) AddMember(ctx context.Context, orgID, userID string, role domain.Role) error {
	query := `
		INSERT INTO org_members (org_id, user_id, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (org_id, user_id) DO UPDATE SET role = $3
	`

	_, err := r.db.Pool.Exec(ctx, query, orgID, userID, role)
	if err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}

	return nil
}
