package service

import (
	"context"
	"fmt"
	"time"

	"github.com/tempohq/tempo/internal/domain"
	"github.com/tempohq/tempo/internal/metrics"
)

// AuditService handles the organization-scoped audit trail
type AuditService struct {
	repo domain.AuditRepository
}

// NewAuditService creates a new audit service
func NewAuditService(repo domain.AuditRepository) *AuditService {
	return &AuditService{repo: repo}
}

// Record appends an audit entry, assigning id and timestamp when unset.
// There is no update or delete counterpart.
func (s *AuditService) Record(ctx context.Context, entry *domain.AuditLog) error {
	if entry.ID == "" {
		entry.ID = domain.NewID("audit")
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	if err := s.repo.Append(ctx, entry); err != nil {
		return fmt.Errorf("failed to record audit entry: %w", err)
	}

	metrics.AuditEntries.WithLabelValues(entry.Action).Inc()
	return nil
}

// List retrieves the active organization's audit trail, newest first
func (s *AuditService) List(ctx context.Context, session *domain.Session) ([]domain.AuditLog, error) {
	if session.ActiveOrgID == "" {
		return nil, nil
	}

	entries, err := s.repo.ListByOrg(ctx, session.ActiveOrgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	return entries, nil
}
