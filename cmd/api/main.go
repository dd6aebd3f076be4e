package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"scamtrap/internal/api"
	"scamtrap/internal/api/handlers"
	"scamtrap/internal/config"
	"scamtrap/internal/domain/services"
	"scamtrap/internal/infrastructure/cache"
	"scamtrap/internal/infrastructure/database"
	"scamtrap/internal/infrastructure/persistence"
	"scamtrap/internal/streaming"
	"scamtrap/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	var log *logger.Logger
	if cfg.App.Environment == "production" {
		log = logger.NewProduction()
	} else {
		log = logger.New(logger.Config{
			Level:      cfg.Logger.Level,
			Format:     cfg.Logger.Format,
			TimeFormat: cfg.Logger.TimeFormat,
		})
	}
	logger.SetGlobal(log)

	log.Info().
		Str("app", cfg.App.Name).
		Str("version", cfg.App.Version).
		Str("environment", cfg.App.Environment).
		Msg("starting scamtrap API server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// PostgreSQL (optional, persistence only)
	var db *database.PostgresDB
	if cfg.Database.Enabled {
		db, err = database.NewPostgres(ctx, cfg.Database, log)
		if err != nil {
			log.Warn().Err(err).Msg("PostgreSQL unavailable, continuing without persistence")
			db = nil
		} else {
			defer db.Close()
		}
	}

	// Redis (optional, rate limiting and snapshot cache)
	var redisCache *cache.RedisCache
	if cfg.Redis.Enabled {
		redisCache, err = cache.NewRedis(ctx, cfg.Redis, log)
		if err != nil {
			log.Warn().Err(err).Msg("Redis unavailable, continuing without cache")
			redisCache = nil
		} else {
			defer redisCache.Close()
		}
	}

	// NATS (optional, detection event stream)
	var natsPublisher *streaming.NATSPublisher
	if cfg.NATS.Enabled {
		natsPublisher, err = streaming.NewNATSPublisher(ctx, cfg.NATS, log)
		if err != nil {
			log.Warn().Err(err).Msg("NATS unavailable, continuing without event streaming")
			natsPublisher = nil
		} else {
			defer natsPublisher.Close()
		}
	}

	eventBus := streaming.NewEventBus(natsPublisher, log)
	defer eventBus.Close()

	// Fire-and-forget message store
	var sinkDB *database.PostgresDB
	if cfg.Persistence.Enabled {
		sinkDB = db
	}
	sink := persistence.NewSink(sinkDB, cfg.Persistence.QueueSize, log)
	sink.Start(ctx)
	defer sink.Close()

	// Detection pipeline
	classifier := services.NewClassifier(log)
	categorizer := services.NewCategorizer(log)
	extractor := services.NewExtractor(log)
	analytics := services.NewAggregator(cfg.History.Capacity, log)
	engine := services.NewEngine(classifier, categorizer, extractor, analytics, streaming.NewPublisher(eventBus), log)

	router := api.NewRouter(handlers.Dependencies{
		Config:     cfg,
		Logger:     log,
		Engine:     engine,
		Classifier: classifier,
		Analytics:  analytics,
		Sink:       sink,
		Cache:      redisCache,
		DB:         db,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}

	log.Info().Msg("server stopped")
}
