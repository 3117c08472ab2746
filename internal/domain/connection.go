package domain

import (
	"context"
	"time"
)

// ClientType distinguishes managed-cloud clusters from self-hosted ones.
type ClientType string

const (
	ClientTypeCloud      ClientType = "cloud"
	ClientTypeSelfHosted ClientType = "self_hosted"
)

// Connection is a named endpoint configuration to an external workflow
// cluster, scoped to one organization. An optional API key is stored
// encrypted and never leaves the service.
type Connection struct {
	ID              string     `json:"id"`
	OrgID           string     `json:"org_id"`
	DisplayName     string     `json:"display_name"`
	Target          string     `json:"target"`
	ClientType      ClientType `json:"client_type"`
	APIKeyEncrypted []byte     `json:"-"`
	CreatedAt       time.Time  `json:"created_at"`
}

// ConnectionCreate represents connection creation input. Display names and
// targets are deliberately not unique: the registry is permissive.
type ConnectionCreate struct {
	DisplayName string     `json:"display_name" validate:"required,max=255"`
	Target      string     `json:"target" validate:"required,max=255"`
	ClientType  ClientType `json:"client_type" validate:"required,oneof=cloud self_hosted"`
	APIKey      string     `json:"api_key,omitempty" validate:"omitempty,max=4096"`
}

// ConnectionRepository defines the interface for connection storage.
// Delete returns ErrNotFound when no record matches, including a repeated
// delete of the same id.
type ConnectionRepository interface {
	Create(ctx context.Context, conn *Connection) error
	GetByID(ctx context.Context, id string) (*Connection, error)
	ListByOrg(ctx context.Context, orgID string) ([]Connection, error)
	Delete(ctx context.Context, id string) error
}
