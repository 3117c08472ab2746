package memory

import (
	"context"

	"github.com/tempohq/tempo/internal/domain"
)

// SessionStore is the in-memory session store for demo mode and tests.
type SessionStore struct {
	s *Store
}

// Create stores a session.
func (st *SessionStore) Create(ctx context.Context, session *domain.Session) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()

	out := *session
	st.s.sessions[session.ID] = &out
	return nil
}

// Get retrieves a session by ID, or (nil, nil) if unknown.
func (st *SessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	st.s.mu.RLock()
	defer st.s.mu.RUnlock()

	sess, ok := st.s.sessions[id]
	if !ok {
		return nil, nil
	}
	out := *sess
	return &out, nil
}

// SetActiveOrg updates the session's active organization.
func (st *SessionStore) SetActiveOrg(ctx context.Context, id, orgID string) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()

	sess, ok := st.s.sessions[id]
	if !ok {
		return domain.ErrNotFound
	}
	sess.ActiveOrgID = orgID
	return nil
}

// Delete removes the session. Principal and active organization disappear
// together; a concurrent Get sees either the full session or nothing.
func (st *SessionStore) Delete(ctx context.Context, id string) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()

	delete(st.s.sessions, id)
	return nil
}
