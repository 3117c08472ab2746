package service

import (
	"context"
	"testing"
	"time"

	"github.com/tempohq/tempo/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditService_List_NewestFirst(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, session := env.login(t, "alice@tempo.app")

	entries, err := env.audit.List(ctx, session)
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	for i := 1; i < len(entries); i++ {
		assert.False(t, entries[i].CreatedAt.After(entries[i-1].CreatedAt),
			"entries must be ordered newest first")
	}
}

func TestAuditService_List_OrgScoped(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, session := env.login(t, "alice@tempo.app")

	entries, err := env.audit.List(ctx, session)
	require.NoError(t, err)
	for _, e := range entries {
		assert.Equal(t, "org_1", e.OrgID)
	}
}

func TestAuditService_List_StableTies(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, session := env.login(t, "alice@tempo.app")

	// two entries with the identical timestamp keep append order
	ts := time.Now().Add(time.Hour)
	first := &domain.AuditLog{
		ID:        "audit_tie_1",
		OrgID:     "org_1",
		Actor:     domain.Actor{ID: "user_1", Name: "Alice Johnson"},
		Action:    domain.AuditActionTaskApproved,
		Target:    domain.Target{Type: "task", ID: "task_1"},
		CreatedAt: ts,
	}
	second := &domain.AuditLog{
		ID:        "audit_tie_2",
		OrgID:     "org_1",
		Actor:     domain.Actor{ID: "user_1", Name: "Alice Johnson"},
		Action:    domain.AuditActionTaskRejected,
		Target:    domain.Target{Type: "task", ID: "task_4"},
		CreatedAt: ts,
	}
	require.NoError(t, env.audit.Record(ctx, first))
	require.NoError(t, env.audit.Record(ctx, second))

	entries, err := env.audit.List(ctx, session)
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(entries), 2)
	assert.Equal(t, "audit_tie_1", entries[0].ID)
	assert.Equal(t, "audit_tie_2", entries[1].ID)
}

func TestAuditService_Record_FillsDefaults(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	entry := &domain.AuditLog{
		OrgID:  "org_1",
		Actor:  domain.Actor{ID: "user_1", Name: "Alice Johnson"},
		Action: domain.AuditActionUserLogin,
		Target: domain.Target{Type: "user", ID: "user_1"},
	}
	require.NoError(t, env.audit.Record(ctx, entry))

	assert.NotEmpty(t, entry.ID)
	assert.False(t, entry.CreatedAt.IsZero())
}
