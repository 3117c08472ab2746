package domain

import (
	"context"
	"time"
)

// Audit action strings.
const (
	AuditActionUserLogin    = "user.login"
	AuditActionTaskApproved = "task.approved"
	AuditActionTaskRejected = "task.rejected"
)

// Actor is an id+name snapshot of the acting user at the time of the action.
type Actor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Target references the resource an action was taken against.
type Target struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// AuditLog is one immutable, organization-scoped activity record. Entries are
// append-only and queried newest-first.
type AuditLog struct {
	ID        string         `json:"id"`
	OrgID     string         `json:"org_id"`
	Actor     Actor          `json:"actor"`
	Action    string         `json:"action"`
	Target    Target         `json:"target"`
	Meta      map[string]any `json:"meta,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// AuditRepository defines the interface for audit log storage. Append is the
// only mutation; no update or delete exists. ListByOrg returns entries sorted
// by CreatedAt descending, with equal timestamps keeping insertion order.
type AuditRepository interface {
	Append(ctx context.Context, entry *AuditLog) error
	ListByOrg(ctx context.Context, orgID string) ([]AuditLog, error)
}
