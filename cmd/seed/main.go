package main

import (
	"context"
	"time"

	"github.com/tempohq/tempo/internal/config"
	"github.com/tempohq/tempo/internal/demo"
	"github.com/tempohq/tempo/internal/repository/postgres"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Loads the demo dataset into postgres. Intended for development databases;
// seeding twice will fail on duplicate keys.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	ctx := context.Background()

	db, err := postgres.NewDB(ctx, cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	repos := demo.Repositories{
		Users:       postgres.NewUserRepository(db),
		Orgs:        postgres.NewOrganizationRepository(db),
		Tasks:       postgres.NewTaskRepository(db),
		Audit:       postgres.NewAuditRepository(db),
		Connections: postgres.NewConnectionRepository(db),
	}

	if err := demo.Seed(ctx, repos, time.Now()); err != nil {
		log.Fatal().Err(err).Msg("Seeding failed")
	}

	log.Info().Msg("Demo dataset loaded")
}
