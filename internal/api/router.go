package api

import (
	"net/http"

	"github.com/tempohq/tempo/internal/api/handler"
	customMiddleware "github.com/tempohq/tempo/internal/api/middleware"
	"github.com/tempohq/tempo/internal/config"
	"github.com/tempohq/tempo/internal/domain"
	"github.com/tempohq/tempo/internal/repository/redis"
	"github.com/tempohq/tempo/internal/security"
	"github.com/tempohq/tempo/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies carries the stores the router is built over. The repositories
// are interfaces so the same wiring serves the postgres and memory drivers.
type Dependencies struct {
	Config      *config.Config
	Users       domain.UserRepository
	Orgs        domain.OrganizationRepository
	Tasks       domain.TaskRepository
	Audit       domain.AuditRepository
	Connections domain.ConnectionRepository
	Sessions    domain.SessionStore

	// DB is pinged by the readiness endpoint; nil skips the check.
	DB handler.Pinger
	// RateLimiter is optional; nil disables rate limiting.
	RateLimiter *redis.RateLimiter
}

// NewRouter creates and configures the HTTP router
func NewRouter(deps Dependencies) (http.Handler, error) {
	cfg := deps.Config

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Server.RequestTimeout))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize security components
	jwtManager := security.NewJWTManager(
		cfg.Auth.JWTSecret,
		cfg.Auth.AccessTokenTTL,
		cfg.Auth.RefreshTokenTTL,
	)

	encryptor, err := newEncryptor(cfg)
	if err != nil {
		return nil, err
	}

	// Initialize services
	auditService := service.NewAuditService(deps.Audit)
	authService := service.NewAuthService(deps.Users, deps.Sessions, auditService, jwtManager)
	orgService := service.NewOrgService(deps.Orgs, deps.Sessions)
	taskService := service.NewTaskService(deps.Tasks, auditService)
	connectionService := service.NewConnectionService(deps.Connections, encryptor)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	orgHandler := handler.NewOrgHandler(orgService)
	taskHandler := handler.NewTaskHandler(taskService)
	auditHandler := handler.NewAuditHandler(auditService)
	connectionHandler := handler.NewConnectionHandler(connectionService)

	// Auth middleware
	authMiddleware := customMiddleware.NewAuthMiddleware(jwtManager, deps.Sessions, deps.Users)

	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Health check
		r.Get("/health", handler.HealthCheck)
		r.Get("/ready", handler.ReadyCheck(deps.DB))

		// Auth routes (public)
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			if cfg.Security.RateLimit.Enabled && deps.RateLimiter != nil {
				rateLimitMiddleware := customMiddleware.NewRateLimitMiddleware(deps.RateLimiter)
				r.Use(rateLimitMiddleware.Limit)
			}

			r.Post("/auth/logout", authHandler.Logout)
			r.Get("/auth/me", authHandler.Me)

			r.Route("/orgs", func(r chi.Router) {
				r.Get("/", orgHandler.List)
				r.Post("/{orgID}/activate", orgHandler.Activate)
			})

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", taskHandler.List)
				r.Post("/", taskHandler.Create)

				r.Route("/{taskID}", func(r chi.Router) {
					r.Get("/", taskHandler.Get)
					r.Post("/decide", taskHandler.Decide)
				})
			})

			r.Get("/audit", auditHandler.List)

			r.Route("/connections", func(r chi.Router) {
				r.Get("/", connectionHandler.List)
				r.Post("/", connectionHandler.Create)
				r.Delete("/{connectionID}", connectionHandler.Delete)
			})
		})
	})

	return r, nil
}

// newEncryptor builds the API key encryptor from the configured key, falling
// back to a key derived from the JWT secret when none is set.
func newEncryptor(cfg *config.Config) (*security.Encryptor, error) {
	if cfg.Security.EncryptionKey != "" {
		return security.NewEncryptorFromBase64(cfg.Security.EncryptionKey)
	}

	key := []byte(cfg.Auth.JWTSecret)
	if len(key) > 32 {
		key = key[:32]
	} else if len(key) < 32 {
		padded := make([]byte, 32)
		copy(padded, key)
		key = padded
	}
	return security.NewEncryptor(key)
}
