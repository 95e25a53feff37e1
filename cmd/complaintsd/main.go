// Command complaintsd is the reference complaints backend consumed by the
// portal: the /api/v1/complaints resource over MongoDB, with Redis-backed
// Idempotency-Key replay protection.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/brocode/complaint-portal/internal/api/middleware"
	"github.com/brocode/complaint-portal/internal/core/domain"
	"github.com/brocode/complaint-portal/internal/core/service"
	"github.com/brocode/complaint-portal/internal/infrastructure/db/mongo"
	"github.com/brocode/complaint-portal/internal/infrastructure/db/redis"
	"github.com/brocode/complaint-portal/internal/infrastructure/fixtures"
	apphttp "github.com/brocode/complaint-portal/internal/infrastructure/http"
	"github.com/brocode/complaint-portal/internal/pkg/config"
	"github.com/brocode/complaint-portal/pkg/logger"
)

func main() {
	seed := flag.Bool("seed", false, "load the demo complaints into an empty collection")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.LoadBackend(ctx)
	if err != nil {
		l := logger.Init(logger.Options{Service: "complaintsd"})
		l.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "complaintsd",
	})

	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		if err := mongo.Disconnect(mongoClient); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect")
		}
	}()

	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer rdb.Close()

	repo := mongo.NewComplaintRepository(db)
	if err := repo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create indexes")
	}

	complaints := service.NewComplaintService(repo, redis.NewIdempotencyStore(rdb), log)

	if *seed {
		n, err := complaints.SeedIfEmpty(ctx, fixtures.New().Complaints(time.Now().UTC()))
		if err != nil {
			log.Fatal().Err(err).Msg("seed failed")
		}
		log.Info().Int("written", n).Msg("seed done")
	}

	var tokens middleware.TokenParser
	if cfg.JWTSecret != "" {
		auth, err := service.NewAuthService(cfg.JWTSecret, 0, domain.Session{})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to build auth service")
		}
		tokens = auth
	} else {
		log.Warn().Msg("JWT_SECRET not set, bearer auth disabled and listings are unscoped")
	}

	e := apphttp.NewRouter(apphttp.Deps{
		DB:         db,
		Redis:      rdb,
		Complaints: complaints,
		Tokens:     tokens,
		Log:        log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("mongo_db", cfg.Mongo.Database).Msg("complaintsd starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during shutdown")
	}
	log.Info().Msg("server stopped")
}
