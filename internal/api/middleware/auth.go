package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/tempohq/tempo/internal/api/response"
	"github.com/tempohq/tempo/internal/domain"
	"github.com/tempohq/tempo/internal/repository/redis"
	"github.com/tempohq/tempo/internal/security"
)

type contextKey string

const (
	UserKey    contextKey = "user"
	SessionKey contextKey = "session"
)

// AuthMiddleware handles JWT authentication and session resolution
type AuthMiddleware struct {
	jwtManager *security.JWTManager
	sessions   domain.SessionStore
	users      domain.UserRepository
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(jwtManager *security.JWTManager, sessions domain.SessionStore, users domain.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
		sessions:   sessions,
		users:      users,
	}
}

// Authenticate validates the JWT token and loads the session it is bound to.
// A valid token whose session no longer exists is rejected: logout ends the
// principal and the active organization together.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(w, "invalid authorization header format")
			return
		}

		claims, err := m.jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			response.Unauthorized(w, "invalid or expired token")
			return
		}

		session, err := m.sessions.Get(r.Context(), claims.SessionID)
		if err != nil {
			response.InternalError(w, "failed to load session")
			return
		}
		if session == nil {
			response.Unauthorized(w, "session expired")
			return
		}

		user, err := m.users.GetByID(r.Context(), session.UserID)
		if err != nil {
			response.InternalError(w, "failed to load user")
			return
		}
		if user == nil {
			response.Unauthorized(w, "unknown user")
			return
		}

		ctx := context.WithValue(r.Context(), UserKey, user)
		ctx = context.WithValue(ctx, SessionKey, session)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUser gets the authenticated user from context
func GetUser(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(UserKey).(*domain.User)
	return user, ok
}

// GetSession gets the session from context
func GetSession(ctx context.Context) (*domain.Session, bool) {
	session, ok := ctx.Value(SessionKey).(*domain.Session)
	return session, ok
}

// RateLimitMiddleware handles rate limiting
type RateLimitMiddleware struct {
	rateLimiter *redis.RateLimiter
}

// NewRateLimitMiddleware creates a new rate limit middleware
func NewRateLimitMiddleware(rateLimiter *redis.RateLimiter) *RateLimitMiddleware {
	return &RateLimitMiddleware{rateLimiter: rateLimiter}
}

// Limit applies rate limiting based on user ID
func (m *RateLimitMiddleware) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := GetUser(r.Context())
		if !ok {
			response.Unauthorized(w, "unauthorized")
			return
		}

		allowed, remaining, resetTime, err := m.rateLimiter.Allow(r.Context(), user.ID)
		if err != nil {
			// if the rate limiter is unavailable, let the request through
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		w.Header().Set("X-RateLimit-Reset", resetTime.Format("2006-01-02T15:04:05Z"))

		if !allowed {
			response.Error(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		next.ServeHTTP(w, r)
	})
}
