package service

import (
	"context"
	"testing"
	"time"

	"github.com/tempohq/tempo/internal/demo"
	"github.com/tempohq/tempo/internal/domain"
	"github.com/tempohq/tempo/internal/repository/memory"
	"github.com/tempohq/tempo/internal/security"
	"github.com/stretchr/testify/require"
)

// testEnv wires the services over a seeded in-memory store.
type testEnv struct {
	store *memory.Store
	now   time.Time

	audit *AuditService
	auth  *AuthService
	orgs  *OrgService
	tasks *TaskService
	conns *ConnectionService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := memory.NewStore()
	now := time.Now()

	err := demo.Seed(context.Background(), demo.Repositories{
		Users:       store.Users(),
		Orgs:        store.Organizations(),
		Tasks:       store.Tasks(),
		Audit:       store.Audit(),
		Connections: store.Connections(),
	}, now)
	require.NoError(t, err)

	jwtManager := security.NewJWTManager("test-secret-key-with-32-chars!!", 15*time.Minute, 7*24*time.Hour)

	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}
	encryptor, err := security.NewEncryptor(key)
	require.NoError(t, err)

	audit := NewAuditService(store.Audit())

	return &testEnv{
		store: store,
		now:   now,
		audit: audit,
		auth:  NewAuthService(store.Users(), store.Sessions(), audit, jwtManager),
		orgs:  NewOrgService(store.Organizations(), store.Sessions()),
		tasks: NewTaskService(store.Tasks(), audit),
		conns: NewConnectionService(store.Connections(), encryptor),
	}
}

// login is a shortcut for tests that need an authenticated user and session.
func (e *testEnv) login(t *testing.T, email string) (*domain.User, *domain.Session) {
	t.Helper()

	result, err := e.auth.Login(context.Background(), email)
	require.NoError(t, err)
	return result.User, result.Session
}
