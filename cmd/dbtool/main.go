package main

import (
	"context"
	"database/sql"
	"os"
	"strings"
	"trip-planner-service/internal/adapters/cache"
	"trip-planner-service/internal/adapters/repositories"
	"trip-planner-service/internal/config"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/db"
	"trip-planner-service/internal/platform/graphdb"
	"trip-planner-service/internal/platform/obs"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	envErr := godotenv.Load()
	obs.SetupLogger(config.Get("LOG_FORMAT", "console"), config.Get("LOG_LEVEL", "info"))
	if envErr != nil {
		log.Info().Msg("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal().Msg("DATABASE_URL is required")
	}

	ctx := context.Background()

	pg, err := db.Open(ctx, databaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to postgres")
	}
	defer pg.Close()

	seedPath := config.Get("SEED_PATH", "data/seeds/problems.yaml")
	problems, err := repositories.LoadProblemSet(seedPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", seedPath).Msg("load seed problems")
	}

	if err := initAndSeed(ctx, pg, problems); err != nil {
		log.Fatal().Err(err).Msg("postgres seeding failed")
	}

	if uri := config.Get("NEO4J_URI", ""); uri != "" {
		if err := mirrorToNeo4j(ctx, uri, problems); err != nil {
			log.Fatal().Err(err).Msg("neo4j seeding failed")
		}
	}
}

func initAndSeed(ctx context.Context, pg *sql.DB, problems map[string]domain.ProblemDefinition) error {
	log.Info().Msg("Initializing database schema...")
	if err := repositories.InitSchema(ctx, pg); err != nil {
		return err
	}
	log.Info().Msg("Schema ready.")

	log.Info().Int("problems", len(problems)).Msg("Seeding database...")
	if err := repositories.SeedProblems(ctx, repositories.NewPostgresProblemRepository(pg), problems); err != nil {
		return err
	}
	log.Info().Msg("Seeding complete.")

	purged, err := cache.NewSQLTripCache(pg, 0).Purge(ctx)
	if err != nil {
		return err
	}
	log.Info().Int64("rows", purged).Msg("Purged expired trip plans.")

	return nil
}

func mirrorToNeo4j(ctx context.Context, uri string, problems map[string]domain.ProblemDefinition) error {
	driver, err := graphdb.Open(ctx, uri, config.Get("NEO4J_USER", "neo4j"), config.Get("NEO4J_PASSWORD", ""))
	if err != nil {
		return err
	}
	defer driver.Close(ctx)

	repo := repositories.NewNeo4jProblemRepository(driver, config.Get("NEO4J_DATABASE", "neo4j"))
	for id, def := range problems {
		if err := repo.SaveProblem(ctx, id, def); err != nil {
			return err
		}
		log.Info().Str("problem", id).Msg("Mirrored problem to neo4j")
	}

	return nil
}
