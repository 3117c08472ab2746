package service

import (
	"context"
	"fmt"
	"time"

	"github.com/tempohq/tempo/internal/domain"
	"github.com/tempohq/tempo/internal/security"
)

// ConnectionService handles the cluster connection registry
type ConnectionService struct {
	conns     domain.ConnectionRepository
	encryptor *security.Encryptor
}

// NewConnectionService creates a new connection service
func NewConnectionService(conns domain.ConnectionRepository, encryptor *security.Encryptor) *ConnectionService {
	return &ConnectionService{
		conns:     conns,
		encryptor: encryptor,
	}
}

// List returns the active organization's connections in registry order
func (s *ConnectionService) List(ctx context.Context, session *domain.Session) ([]domain.Connection, error) {
	if session.ActiveOrgID == "" {
		return nil, nil
	}

	conns, err := s.conns.ListByOrg(ctx, session.ActiveOrgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list connections: %w", err)
	}
	return conns, nil
}

// Create registers a new connection. The API key, when present, is stored
// encrypted and never returned.
func (s *ConnectionService) Create(ctx context.Context, session *domain.Session, input domain.ConnectionCreate) (*domain.Connection, error) {
	if session.ActiveOrgID == "" {
		return nil, domain.ErrNotAMember
	}

	conn := &domain.Connection{
		ID:          domain.NewID("conn"),
		OrgID:       session.ActiveOrgID,
		DisplayName: input.DisplayName,
		Target:      input.Target,
		ClientType:  input.ClientType,
		CreatedAt:   time.Now(),
	}

	if input.APIKey != "" {
		encrypted, err := s.encryptor.EncryptString(input.APIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to encrypt api key: %w", err)
		}
		conn.APIKeyEncrypted = encrypted
	}

	if err := s.conns.Create(ctx, conn); err != nil {
		return nil, fmt.Errorf("failed to create connection: %w", err)
	}
	return conn, nil
}

// Delete removes a connection from the active organization's registry.
// Unknown ids, repeated deletes and ids from other organizations all return
// ErrNotFound.
func (s *ConnectionService) Delete(ctx context.Context, session *domain.Session, connID string) error {
	conn, err := s.conns.GetByID(ctx, connID)
	if err != nil {
		return fmt.Errorf("failed to get connection: %w", err)
	}
	if conn == nil || conn.OrgID != session.ActiveOrgID {
		return domain.ErrNotFound
	}

	if err := s.conns.Delete(ctx, connID); err != nil {
		return err
	}
	return nil
}
