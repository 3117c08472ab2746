package service

import (
	"context"
	"testing"

	"github.com/tempohq/tempo/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectionService_List(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, session := env.login(t, "alice@tempo.app")

	conns, err := env.conns.List(ctx, session)
	require.NoError(t, err)
	require.Len(t, conns, 2)
	assert.Equal(t, "conn_1", conns[0].ID)
	assert.Equal(t, "conn_2", conns[1].ID)
}

func TestConnectionService_Create(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, session := env.login(t, "alice@tempo.app")

	conn, err := env.conns.Create(ctx, session, domain.ConnectionCreate{
		DisplayName: "Acme Dev",
		Target:      "localhost:7233",
		ClientType:  domain.ClientTypeSelfHosted,
		APIKey:      "tmprl-key-123",
	})
	require.NoError(t, err)

	assert.Equal(t, "org_1", conn.OrgID)
	assert.Equal(t, domain.ClientTypeSelfHosted, conn.ClientType)

	// key is stored encrypted, recoverable only through the encryptor
	require.NotEmpty(t, conn.APIKeyEncrypted)
	assert.NotEqual(t, []byte("tmprl-key-123"), conn.APIKeyEncrypted)

	plaintext, err := env.conns.encryptor.DecryptString(conn.APIKeyEncrypted)
	require.NoError(t, err)
	assert.Equal(t, "tmprl-key-123", plaintext)

	conns, err := env.conns.List(ctx, session)
	require.NoError(t, err)
	assert.Equal(t, conn.ID, conns[len(conns)-1].ID)
}

func TestConnectionService_Create_WithoutKey(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, session := env.login(t, "alice@tempo.app")

	conn, err := env.conns.Create(ctx, session, domain.ConnectionCreate{
		DisplayName: "Acme Local",
		Target:      "localhost:7233",
		ClientType:  domain.ClientTypeSelfHosted,
	})
	require.NoError(t, err)
	assert.Empty(t, conn.APIKeyEncrypted)
}

func TestConnectionService_Delete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, session := env.login(t, "alice@tempo.app")

	require.NoError(t, env.conns.Delete(ctx, session, "conn_1"))

	conns, err := env.conns.List(ctx, session)
	require.NoError(t, err)
	require.Len(t, conns, 1)
	assert.Equal(t, "conn_2", conns[0].ID)

	// a repeated delete is not distinguishable from an unknown id
	assert.ErrorIs(t, env.conns.Delete(ctx, session, "conn_1"), domain.ErrNotFound)
	assert.ErrorIs(t, env.conns.Delete(ctx, session, "conn_nope"), domain.ErrNotFound)
}

func TestConnectionService_Delete_OtherOrg(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// conn_3 belongs to org_2
	_, session := env.login(t, "alice@tempo.app")

	assert.ErrorIs(t, env.conns.Delete(ctx, session, "conn_3"), domain.ErrNotFound)
}
