package memory

import (
	"context"

	"github.com/tempohq/tempo/internal/domain"
)

// OrganizationRepository is the in-memory organization directory.
type OrganizationRepository struct {
	s *Store
}

// Create adds an organization to the directory.
func (r *OrganizationRepository) Create(ctx context.Context, org *domain.Organization) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := *org
	r.s.orgs = append(r.s.orgs, &out)
	return nil
}

// GetByID retrieves an organization by ID.
func (r *OrganizationRepository) GetByID(ctx context.Context, id string) (*domain.Organization, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, o := range r.s.orgs {
		if o.ID == id {
			out := *o
			return &out, nil
		}
	}
	return nil, nil
}

// ListByUserID returns the organizations the user is a member of, in
// directory insertion order.
func (r *OrganizationRepository) ListByUserID(ctx context.Context, userID string) ([]domain.Organization, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var user *domain.User
	for _, u := range r.s.users {
		if u.ID == userID {
			user = u
			break
		}
	}
	if user == nil {
		return nil, nil
	}

	var orgs []domain.Organization
	for _, o := range r.s.orgs {
		if _, ok := user.MembershipIn(o.ID); ok {
			orgs = append(orgs, *o)
		}
	}
	return orgs, nil
}

// AddMember appends a membership to the user's membership list.
func (r *OrganizationRepository) AddMember(ctx context.Context, orgID, userID string, role domain.Role) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.ID != userID {
			continue
		}
		for i, m := range u.Memberships {
			if m.OrgID == orgID {
				u.Memberships[i].Role = role
				return nil
			}
		}
		u.Memberships = append(u.Memberships, domain.OrgMembership{OrgID: orgID, Role: role})
		return nil
	}
	return domain.ErrUserNotFound
}
