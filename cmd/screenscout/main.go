package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/screenscout/screenscout/internal/api"
	"github.com/screenscout/screenscout/internal/cache"
	"github.com/screenscout/screenscout/internal/config"
	"github.com/screenscout/screenscout/internal/database"
	"github.com/screenscout/screenscout/internal/logger"
	"github.com/screenscout/screenscout/internal/scheduler"
)

func main() {
	// Local development convenience; a missing .env is not an error.
	_ = godotenv.Load()

	configPath := flag.String("config", "", "Path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Path:   cfg.Logging.Path,
	})
	defer log.Close()

	log.Info().
		Str("logLevel", cfg.Logging.Level).
		Msg("starting ScreenScout")

	db, err := database.New(cfg.Database.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()

	log.Info().Msg("running database migrations")
	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	var store cache.Store
	if cfg.Cache.Addr != "" {
		redisStore := cache.NewRedis(cfg.Cache, log.Logger)
		defer redisStore.Close()
		store = redisStore
		log.Info().Str("addr", cfg.Cache.Addr).Msg("using redis cache")
	} else {
		store = cache.NewMemory()
		log.Info().Msg("no cache address configured, using in-process cache")
	}

	server := api.NewServer(db.Conn(), store, cfg, log.Logger)

	sched, err := scheduler.New(log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create scheduler")
	}
	warmer := scheduler.NewTrendingWarmerTask(server.TMDB(), server.Hybrid(), log.Logger)
	if err := sched.RegisterTask(warmer); err != nil {
		log.Warn().Err(err).Msg("failed to register cache warmer")
	}
	if server.TMDB().IsConfigured() {
		sched.Start()
	} else {
		log.Warn().Msg("TMDB API key not configured, cache warmer disabled")
	}

	go func() {
		if err := server.Start(cfg.Server.Address()); err != nil {
			log.Info().Msg("server stopped")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	log.Info().Msg("received shutdown signal")

	if err := sched.Stop(); err != nil {
		log.Warn().Err(err).Msg("scheduler shutdown error")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}

	log.Info().Msg("server stopped")
}
