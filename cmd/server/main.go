package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tempohq/tempo/internal/api"
	"github.com/tempohq/tempo/internal/config"
	"github.com/tempohq/tempo/internal/demo"
	"github.com/tempohq/tempo/internal/repository/memory"
	"github.com/tempohq/tempo/internal/repository/postgres"
	"github.com/tempohq/tempo/internal/repository/redis"
	"github.com/joho/godotenv"
	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	setupLogger(cfg)

	log.Info().
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Str("driver", cfg.Database.Driver).
		Msg("Starting Tempo API server")

	deps := api.Dependencies{Config: cfg}

	switch cfg.Database.Driver {
	case "memory":
		store := memory.NewStore()
		if err := demo.Seed(context.Background(), demo.Repositories{
			Users:       store.Users(),
			Orgs:        store.Organizations(),
			Tasks:       store.Tasks(),
			Audit:       store.Audit(),
			Connections: store.Connections(),
		}, time.Now()); err != nil {
			log.Fatal().Err(err).Msg("Failed to seed demo data")
		}
		deps.Users = store.Users()
		deps.Orgs = store.Organizations()
		deps.Tasks = store.Tasks()
		deps.Audit = store.Audit()
		deps.Connections = store.Connections()
		deps.Sessions = store.Sessions()

		log.Info().Msg("Running with in-memory store and demo dataset")

	case "postgres":
		db, err := postgres.NewDB(context.Background(), cfg.Database)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to database")
		}
		defer db.Close()

		redisClient, err := redis.NewClient(cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer redisClient.Close()

		deps.Users = postgres.NewUserRepository(db)
		deps.Orgs = postgres.NewOrganizationRepository(db)
		deps.Tasks = postgres.NewTaskRepository(db)
		deps.Audit = postgres.NewAuditRepository(db)
		deps.Connections = postgres.NewConnectionRepository(db)
		deps.Sessions = redis.NewSessionStore(redisClient, cfg.Auth.SessionTTL)
		deps.DB = db

		if cfg.Security.RateLimit.Enabled {
			deps.RateLimiter = redis.NewRateLimiter(
				redisClient,
				cfg.Security.RateLimit.RequestsPerMinute,
				cfg.Security.RateLimit.Burst,
			)
		}

	default:
		log.Fatal().Str("driver", cfg.Database.Driver).Msg("Unknown database driver")
	}

	router, err := api.NewRouter(deps)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build router")
	}

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info().Msgf("Server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}

// setupLogger configures zerolog: level, console format for development,
// and an optional rotating file sink.
func setupLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	var sinks []io.Writer
	if cfg.Logging.Format == "console" {
		sinks = append(sinks, zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		sinks = append(sinks, os.Stderr)
	}

	if cfg.Logging.File != "" {
		rotator, err := rotatelogs.New(
			cfg.Logging.File+".%Y%m%d",
			rotatelogs.WithLinkName(cfg.Logging.File),
			rotatelogs.WithRotationTime(24*time.Hour),
			rotatelogs.WithMaxAge(7*24*time.Hour),
		)
		if err != nil {
			log.Error().Err(err).Msg("Failed to open log file, logging to stderr only")
		} else {
			sinks = append(sinks, rotator)
		}
	}

	log.Logger = log.Output(zerolog.MultiLevelWriter(sinks...))
}
