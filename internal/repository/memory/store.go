// Package memory provides in-memory repository adapters. They back the demo
// mode and the test suite, and honor the same atomicity and ordering
// contracts as the postgres adapters: decisions are serialized per task, list
// order is insertion order, and audit reads are newest-first with stable
// ties.
package memory

import (
	"sync"

	"github.com/tempohq/tempo/internal/domain"
)

// Store holds all in-memory collections behind one lock. Registry slices
// preserve insertion order; readers receive copies, never aliases into the
// store.
type Store struct {
	mu sync.RWMutex

	users    []*domain.User
	orgs     []*domain.Organization
	tasks    []*domain.Task
	audits   []*domain.AuditLog
	conns    []*domain.Connection
	sessions map[string]*domain.Session
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*domain.Session)}
}

// Users returns the user repository view of the store.
func (s *Store) Users() domain.UserRepository { return &UserRepository{s: s} }

// Organizations returns the organization repository view of the store.
func (s *Store) Organizations() domain.OrganizationRepository { return &OrganizationRepository{s: s} }

// Tasks returns the task repository view of the store.
func (s *Store) Tasks() domain.TaskRepository { return &TaskRepository{s: s} }

// Audit returns the audit log repository view of the store.
func (s *Store) Audit() domain.AuditRepository { return &AuditRepository{s: s} }

// Connections returns the connection repository view of the store.
func (s *Store) Connections() domain.ConnectionRepository { return &ConnectionRepository{s: s} }

// Sessions returns the session store view of the store.
func (s *Store) Sessions() domain.SessionStore { return &SessionStore{s: s} }

func copyUser(u *domain.User) *domain.User {
	out := *u
	out.Memberships = append([]domain.OrgMembership(nil), u.Memberships...)
	return &out
}

func copyTask(t *domain.Task) *domain.Task {
	out := *t
	out.History = append([]domain.TaskHistoryItem(nil), t.History...)
	return &out
}
