package memory

import (
	"context"

	"github.com/tempohq/tempo/internal/domain"
)

// ConnectionRepository is the in-memory connection registry.
type ConnectionRepository struct {
	s *Store
}

// Create appends a connection to the registry.
func (r *ConnectionRepository) Create(ctx context.Context, conn *domain.Connection) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := *conn
	out.APIKeyEncrypted = append([]byte(nil), conn.APIKeyEncrypted...)
	r.s.conns = append(r.s.conns, &out)
	return nil
}

// GetByID retrieves a connection by ID.
func (r *ConnectionRepository) GetByID(ctx context.Context, id string) (*domain.Connection, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, c := range r.s.conns {
		if c.ID == id {
			out := *c
			return &out, nil
		}
	}
	return nil, nil
}

// ListByOrg returns connections for an organization in insertion order.
func (r *ConnectionRepository) ListByOrg(ctx context.Context, orgID string) ([]domain.Connection, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var conns []domain.Connection
	for _, c := range r.s.conns {
		if c.OrgID == orgID {
			conns = append(conns, *c)
		}
	}
	return conns, nil
}

// Delete removes the single matching record. A repeated delete of the same
// id fails with ErrNotFound.
func (r *ConnectionRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i, c := range r.s.conns {
		if c.ID == id {
			r.s.conns = append(r.s.conns[:i], r.s.conns[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}
