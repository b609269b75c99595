package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"

	"github.com/zgkmail/watchornot/watchornot-go/internal/badge"
	"github.com/zgkmail/watchornot/watchornot-go/internal/config"
	"github.com/zgkmail/watchornot/watchornot-go/internal/db"
	"github.com/zgkmail/watchornot/watchornot-go/internal/handler"
	"github.com/zgkmail/watchornot/watchornot-go/internal/middleware"
	"github.com/zgkmail/watchornot/watchornot-go/internal/repository"
	"github.com/zgkmail/watchornot/watchornot-go/internal/router"
	"github.com/zgkmail/watchornot/watchornot-go/internal/service"
)

func main() {
	cfg := config.Load()
	middleware.InitLogger(cfg.LogLevel, "watchornot-api")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	cache := service.NewCacheService(cfg.RedisURL)
	defer cache.Close()

	handler.InitMetrics(pool)

	ratingRepo := repository.NewRatingRepo(pool)
	prefRepo := repository.NewPreferenceRepo(pool)
	userRepo := repository.NewUserRepo(pool)

	engine := badge.NewEngine(service.NewPreferenceSource(ratingRepo, prefRepo))
	ratingSvc := service.NewRatingService(ratingRepo, prefRepo, engine, cache)
	profileSvc := service.NewProfileService(userRepo, cache)

	app := fiber.New(fiber.Config{
		AppName:      "WatchOrNot API",
		ServerHeader: "WatchOrNot",
	})

	router.Setup(app, &router.Handlers{
		Rating:  handler.NewRatingHandler(ratingSvc),
		Badge:   handler.NewBadgeHandler(ratingSvc),
		Profile: handler.NewProfileHandler(profileSvc),
		Stats:   handler.NewStatsHandler(profileSvc),
		Health:  handler.NewHealthHandler(pool, cache.Client()),
	}, cfg.CORSOrigins)

	// Background recompute of preference aggregates on rating changes.
	worker := service.NewPrefsWorker(pool, prefRepo, cache)
	go worker.Start(ctx)

	go func() {
		<-ctx.Done()
		log.Println("shutting down")
		if err := app.Shutdown(); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}()

	log.Printf("WatchOrNot Go backend starting on :%s (env=%s)", cfg.Port, cfg.Environment)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
