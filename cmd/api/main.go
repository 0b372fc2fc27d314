package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/DBXDWARKA/office-runner-api/internal/api"
	mongodb "github.com/DBXDWARKA/office-runner-api/internal/infrastructure/db/mongo"
	redisdb "github.com/DBXDWARKA/office-runner-api/internal/infrastructure/db/redis"
	"github.com/DBXDWARKA/office-runner-api/internal/pkg/config"
	"github.com/DBXDWARKA/office-runner-api/pkg/logger"
)

// @title           Office Runner API
// @version         1.0
// @description     Trip dispatch, billing and approval backend for office runners.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	// Missing .env is fine; containers inject real environment variables.
	_ = godotenv.Load()

	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	log.Info().Str("env", cfg.Env).Str("port", cfg.Port).Msg("starting office runner api")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	if err := mongodb.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user indexes failed")
	}
	if err := mongodb.NewTripRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("trip indexes failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	e, dispatcher := api.NewRouter(db, rdb, api.Options{
		JWTSecret:    cfg.JWTSecret,
		RatePerKm:    cfg.RatePerKm,
		AuditWorkers: cfg.AuditWorkers,
	})
	dispatcher.Start(ctx)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	// Stop audit workers after the server has drained in-flight requests so
	// their lifecycle events still get recorded.
	cancel()

	log.Info().Msg("stopped")
}
