package domain

import (
	"context"
	"time"
)

// User represents a platform user. Email is the sole login identifier and
// resolves case-insensitively to exactly one user in the directory.
type User struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	AvatarURL   string          `json:"avatar_url,omitempty"`
	Memberships []OrgMembership `json:"memberships"`
	CreatedAt   time.Time       `json:"created_at"`
}

// MembershipIn returns the user's membership in the given organization, if any.
func (u *User) MembershipIn(orgID string) (OrgMembership, bool) {
	for _, m := range u.Memberships {
		if m.OrgID == orgID {
			return m, true
		}
	}
	return OrgMembership{}, false
}

// UserLogin represents login input. There is no password: the directory
// resolves the identifier on its own, verification is an upstream concern.
type UserLogin struct {
	Email string `json:"email" validate:"required,email,max=255"`
}

// TokenPair represents the JWT token pair issued on login.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// UserRepository defines the interface for user directory storage.
// Lookups return (nil, nil) when no record matches. Memberships are
// returned in their original insertion order.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}
