package domain

import (
	"context"
	"time"
)

// Organization is the tenancy boundary: every task, audit entry and
// connection belongs to exactly one organization.
type Organization struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

// Role is a user's role within one organization.
type Role string

const (
	RoleOwner    Role = "org_owner"
	RoleAdmin    Role = "admin"
	RoleApprover Role = "approver"
	RoleViewer   Role = "viewer"
)

// Valid reports whether the role is one of the closed set.
func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleApprover, RoleViewer:
		return true
	}
	return false
}

// OrgMembership binds a user to an organization with a role. A user may hold
// different roles in different organizations.
type OrgMembership struct {
	OrgID string `json:"org_id"`
	Role  Role   `json:"role"`
}

// OrganizationRepository defines the interface for organization storage.
// ListByUserID returns the organizations the user has a membership in,
// ordered by directory insertion order.
type OrganizationRepository interface {
	Create(ctx context.Context, org *Organization) error
	GetByID(ctx context.Context, id string) (*Organization, error)
	ListByUserID(ctx context.Context, userID string) ([]Organization, error)
	AddMember(ctx context.Context, orgID, userID string, role Role) error
}
