package service

import (
	"context"
	"fmt"
	"time"

	"github.com/tempohq/tempo/internal/domain"
	"github.com/tempohq/tempo/internal/metrics"
	"github.com/tempohq/tempo/internal/security"
)

// AuthService handles authentication and session lifecycle
type AuthService struct {
	users      domain.UserRepository
	sessions   domain.SessionStore
	audit      *AuditService
	jwtManager *security.JWTManager
}

// NewAuthService creates a new auth service
func NewAuthService(
	users domain.UserRepository,
	sessions domain.SessionStore,
	audit *AuditService,
	jwtManager *security.JWTManager,
) *AuthService {
	return &AuthService{
		users:      users,
		sessions:   sessions,
		audit:      audit,
		jwtManager: jwtManager,
	}
}

// LoginResult is what a successful login yields
type LoginResult struct {
	User    *domain.User    `json:"user"`
	Session *domain.Session `json:"session"`
	Tokens  domain.TokenPair `json:"tokens"`
}

// Login resolves the email case-insensitively against the directory and
// opens a session. The directory is the only check: identifier verification
// is an upstream concern. The session's active organization is seeded with
// the user's first membership.
func (s *AuthService) Login(ctx context.Context, email string) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	session := &domain.Session{
		ID:        domain.NewID("sess"),
		UserID:    user.ID,
		CreatedAt: time.Now(),
	}
	if len(user.Memberships) > 0 {
		session.ActiveOrgID = user.Memberships[0].OrgID
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	accessToken, refreshToken, expiresIn, err := s.jwtManager.GenerateTokenPair(user.ID, user.Email, session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	if session.ActiveOrgID != "" {
		entry := &domain.AuditLog{
			OrgID:  session.ActiveOrgID,
			Actor:  domain.Actor{ID: user.ID, Name: user.Name},
			Action: domain.AuditActionUserLogin,
			Target: domain.Target{Type: "user", ID: user.ID},
		}
		if err := s.audit.Record(ctx, entry); err != nil {
			return nil, err
		}
	}

	metrics.Logins.Inc()

	return &LoginResult{
		User:    user,
		Session: session,
		Tokens: domain.TokenPair{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			ExpiresIn:    expiresIn,
		},
	}, nil
}

// Logout removes the session. Principal and active organization are cleared
// together; no partial state is observable.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Refresh issues a new token pair for a still-live session
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}

	session, err := s.sessions.Get(ctx, claims.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, domain.ErrNotFound
	}

	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	accessToken, newRefreshToken, expiresIn, err := s.jwtManager.GenerateTokenPair(user.ID, user.Email, session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	return &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
		ExpiresIn:    expiresIn,
	}, nil
}

// GetUserByID retrieves a user by ID
func (s *AuthService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}
