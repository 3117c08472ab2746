package memory

import (
	"context"
	"strings"

	"github.com/tempohq/tempo/internal/domain"
)

// UserRepository is the in-memory user directory.
type UserRepository struct {
	s *Store
}

// Create adds a user to the directory.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.users = append(r.s.users, copyUser(user))
	return nil
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.ID == id {
			return copyUser(u), nil
		}
	}
	return nil, nil
}

// GetByEmail retrieves a user by email, case-insensitively.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			return copyUser(u), nil
		}
	}
	return nil, nil
}
