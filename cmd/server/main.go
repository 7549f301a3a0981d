package main // Entry point package

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/iliyamo/game-catalog/internal/config"
	"github.com/iliyamo/game-catalog/internal/database"
	"github.com/iliyamo/game-catalog/internal/database/migrations"
	"github.com/iliyamo/game-catalog/internal/handler"
	"github.com/iliyamo/game-catalog/internal/repository"
	"github.com/iliyamo/game-catalog/internal/router"
	"github.com/iliyamo/game-catalog/internal/service"
)

func main() {
	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.DBAutoMigrate {
		applied, err := database.MigrateUp(ctx, db, migrations.FS, ".")
		if err != nil {
			log.Fatalf("migrate: %v", err)
		}
		for _, name := range applied {
			log.Printf("migrate: applied %s", name)
		}
	}

	cacheCfg, err := config.LoadCacheConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	rlCfg, err := config.LoadRateLimitConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	rdb := config.NewRedisClient() // nil disables cache and rate limiting
	if rdb != nil {
		defer rdb.Close()
	}

	var events service.EventPublisher = service.NopPublisher{}
	if cfg.EventsEnabled {
		pub := service.NewAMQPPublisher(cfg.RabbitMQURL, cfg.EventsQueue)
		defer pub.Close()
		events = pub
	}

	developers := repository.NewGameDeveloperRepo(db)
	categories := repository.NewCategoryRepo(db)
	games := repository.NewGameRepo(db)

	e := router.New(router.Handlers{
		Developers: handler.NewGameDeveloperHandler(developers, events),
		Categories: handler.NewCategoryHandler(categories, events),
		Games:      handler.NewGameHandler(games, developers, categories, events),
		Health:     handler.NewHealthHandler(repository.NewHealthRepo(db)),
	}, router.Options{
		Prefix:    cfg.APIPrefix,
		JWTSecret: cfg.JWTSecret,
		Cache:     cacheCfg,
		RateLimit: rlCfg,
		Redis:     rdb,
	})
	if cfg.JWTSecret == "" {
		log.Printf("write guard disabled (JWT_SECRET not set)")
	}

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, db=%s)", addr, cfg.Env, cfg.DBDriver)

	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err) // Log and exit if server fails
		}
	}()

	<-ctx.Done()
	log.Printf("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
