package service

import (
	"context"
	"fmt"

	"github.com/tempohq/tempo/internal/domain"
)

// OrgService handles organization listing and active-organization selection
type OrgService struct {
	orgs     domain.OrganizationRepository
	sessions domain.SessionStore
}

// NewOrgService creates a new organization service
func NewOrgService(orgs domain.OrganizationRepository, sessions domain.SessionStore) *OrgService {
	return &OrgService{
		orgs:     orgs,
		sessions: sessions,
	}
}

// ListAvailable returns the organizations the user holds a membership in
func (s *OrgService) ListAvailable(ctx context.Context, userID string) ([]domain.Organization, error) {
	orgs, err := s.orgs.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	return orgs, nil
}

// Select switches the session's active organization. The user must hold a
// membership in the target organization; on ErrNotAMember the previously
// active organization remains unchanged.
func (s *OrgService) Select(ctx context.Context, session *domain.Session, user *domain.User, orgID string) (*domain.Organization, error) {
	if _, ok := user.MembershipIn(orgID); !ok {
		return nil, domain.ErrNotAMember
	}

	org, err := s.orgs.GetByID(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}
	if org == nil {
		return nil, domain.ErrNotAMember
	}

	if err := s.sessions.SetActiveOrg(ctx, session.ID, orgID); err != nil {
		return nil, fmt.Errorf("failed to switch organization: %w", err)
	}
	session.ActiveOrgID = orgID

	return org, nil
}
