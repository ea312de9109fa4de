package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/moviemetrics/movie-metrics/internal/config"
	"github.com/moviemetrics/movie-metrics/internal/database"
	"github.com/moviemetrics/movie-metrics/internal/handler"
	"github.com/moviemetrics/movie-metrics/internal/middleware"
	"github.com/moviemetrics/movie-metrics/internal/queue"
	"github.com/moviemetrics/movie-metrics/internal/repository"
	"github.com/moviemetrics/movie-metrics/internal/router"
	"github.com/moviemetrics/movie-metrics/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer func() { _ = db.Close() }()

	startupCtx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := database.RunMigrations(startupCtx, db); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	permissions := repository.NewPermissionRepo(db)
	roles := repository.NewRoleRepo(db)
	genres := repository.NewGenreRepo(db)
	classifications := repository.NewClassificationRepo(db)
	users := repository.NewUserRepo(db)
	movies := repository.NewMovieRepo(db)
	reviews := repository.NewReviewRepo(db)

	seeder := service.NewSeeder(cfg, permissions, roles, genres, classifications, users)
	if err := seeder.Run(startupCtx); err != nil {
		log.Fatalf("seed: %v", err)
	}

	authSvc := service.NewAuthService(cfg, users, roles)
	userSvc := service.NewUserService(users, roles, cfg.BcryptCost)
	movieSvc := service.NewMovieService(movies, classifications, genres)
	reviewSvc := service.NewReviewService(reviews, movies, users)
	catalogSvc := service.NewCatalogService(genres, classifications, roles, permissions)

	rdb := config.NewRedisClient()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	// The response cache is handed to the router so it runs inside
	// the protected chain, after authentication and authorization.
	cache := middleware.NewResponseCache(config.LoadCacheConfig(), rdb)

	router.Register(e, router.Handlers{
		Auth:    handler.NewAuthHandler(authSvc),
		Users:   handler.NewUserHandler(userSvc),
		Movies:  handler.NewMovieHandler(movieSvc),
		Reviews: handler.NewReviewHandler(reviewSvc, movieSvc),
		Catalog: handler.NewCatalogHandler(catalogSvc),
		Health:  handler.NewHealthHandler(db),
	}, cfg.JWTSecret, cache)

	go func() {
		if err := queue.StartReviewConsumer(); err != nil {
			log.Printf("review-consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
