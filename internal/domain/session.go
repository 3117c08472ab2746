package domain

import (
	"context"
	"time"
)

// Session is one authenticated session. Each session tracks exactly one
// active organization; sessions for different users never observe each
// other's selection. A session is seeded with the user's first membership's
// organization on login.
type Session struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	ActiveOrgID string    `json:"active_org_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// SessionStore defines the interface for server-side session state.
// Get returns (nil, nil) for an unknown or expired session. Delete removes
// the principal and active organization in one step; no partial state is
// observable afterwards.
type SessionStore interface {
	Create(ctx context.Context, session *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	SetActiveOrg(ctx context.Context, id, orgID string) error
	Delete(ctx context.Context, id string) error
}
