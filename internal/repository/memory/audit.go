package memory

import (
	"context"
	"sort"

	"github.com/tempohq/tempo/internal/domain"
)

// AuditRepository is the in-memory audit log. Append-only.
type AuditRepository struct {
	s *Store
}

// Append records an audit entry.
func (r *AuditRepository) Append(ctx context.Context, entry *domain.AuditLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := *entry
	r.s.audits = append(r.s.audits, &out)
	return nil
}

// ListByOrg returns entries for an organization sorted by CreatedAt
// descending. The sort is stable: equal timestamps keep insertion order.
func (r *AuditRepository) ListByOrg(ctx context.Context, orgID string) ([]domain.AuditLog, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var entries []domain.AuditLog
	for _, e := range r.s.audits {
		if e.OrgID == orgID {
			entries = append(entries, *e)
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})

	return entries, nil
}
