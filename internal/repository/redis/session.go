package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tempohq/tempo/internal/domain"
)

const sessionPrefix = "session:"

// SessionStore keeps session state in Redis, one key per session. Deleting
// the key removes the principal and the active organization in one step.
type SessionStore struct {
	client *Client
	ttl    time.Duration
}

// NewSessionStore creates a new session store with the given TTL
func NewSessionStore(client *Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

// Create stores a session
func (s *SessionStore) Create(ctx context.Context, session *domain.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	return s.client.rdb.Set(ctx, sessionPrefix+session.ID, data, s.ttl).Err()
}

// Get retrieves a session, or (nil, nil) if unknown or expired
func (s *SessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	data, err := s.client.rdb.Get(ctx, sessionPrefix+id).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &session, nil
}

// SetActiveOrg updates the session's active organization, keeping the
// remaining TTL
func (s *SessionStore) SetActiveOrg(ctx context.Context, id, orgID string) error {
	session, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if session == nil {
		return domain.ErrNotFound
	}

	session.ActiveOrgID = orgID
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	return s.client.rdb.Set(ctx, sessionPrefix+id, data, redis.KeepTTL).Err()
}

// Delete removes a session
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	return s.client.rdb.Del(ctx, sessionPrefix+id).Err()
}
