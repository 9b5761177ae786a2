// seed_demo applies the schema and loads the demo customers into PostgreSQL.
// Customers are only inserted when the table is empty.
//
// Usage: go run ./cmd/seed_demo
package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"

	"github.com/jhoicas/pipeline-crm/internal/infrastructure/memory"
	"github.com/jhoicas/pipeline-crm/internal/infrastructure/postgres"
	"github.com/jhoicas/pipeline-crm/pkg/config"
	"github.com/jhoicas/pipeline-crm/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic("load config: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("apply migrations")
	}

	repo := postgres.NewCustomerRepository(pool)
	existing, err := repo.List(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("list customers")
	}
	if len(existing) > 0 {
		log.Info().Int("customers", len(existing)).Msg("store not empty, nothing to seed")
		return
	}

	demo := memory.DemoCustomers(time.Now())
	if err := repo.CreateMany(ctx, demo); err != nil {
		log.Fatal().Err(err).Msg("insert demo customers")
	}
	log.Info().Int("customers", len(demo)).Msg("demo customers loaded")
}
