package service

import (
	"context"
	"testing"

	"github.com/tempohq/tempo/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrgService_ListAvailable(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	orgs, err := env.orgs.ListAvailable(ctx, "user_1")
	require.NoError(t, err)
	require.Len(t, orgs, 2)
	assert.Equal(t, "org_1", orgs[0].ID)
	assert.Equal(t, "org_2", orgs[1].ID)

	orgs, err = env.orgs.ListAvailable(ctx, "user_3")
	require.NoError(t, err)
	require.Len(t, orgs, 2)
	assert.Equal(t, "org_1", orgs[0].ID)
	assert.Equal(t, "org_3", orgs[1].ID)
}

func TestOrgService_Select(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, session := env.login(t, "alice@tempo.app")
	require.Equal(t, "org_1", session.ActiveOrgID)

	org, err := env.orgs.Select(ctx, session, user, "org_2")
	require.NoError(t, err)
	assert.Equal(t, "org_2", org.ID)
	assert.Equal(t, "org_2", session.ActiveOrgID)

	// the stored session reflects the switch
	stored, err := env.store.Sessions().Get(ctx, session.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "org_2", stored.ActiveOrgID)
}

func TestOrgService_Select_NotAMember(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// charlie has no membership in org_2
	user, session := env.login(t, "charlie@tempo.app")
	require.Equal(t, "org_1", session.ActiveOrgID)

	_, err := env.orgs.Select(ctx, session, user, "org_2")
	assert.ErrorIs(t, err, domain.ErrNotAMember)

	// a failed switch leaves the active org untouched
	assert.Equal(t, "org_1", session.ActiveOrgID)
	stored, err := env.store.Sessions().Get(ctx, session.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "org_1", stored.ActiveOrgID)
}

func TestOrgService_Select_ScopesData(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, session := env.login(t, "bob@tempo.app")

	tasks, err := env.tasks.List(ctx, session, "")
	require.NoError(t, err)
	for _, task := range tasks {
		assert.Equal(t, "org_1", task.OrgID)
	}

	_, err = env.orgs.Select(ctx, session, user, "org_2")
	require.NoError(t, err)

	tasks, err = env.tasks.List(ctx, session, "")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "task_3", tasks[0].ID)
}
