package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-blog-api/internal/config"
	"github.com/iliyamo/movie-blog-api/internal/database"
	"github.com/iliyamo/movie-blog-api/internal/handler"
	"github.com/iliyamo/movie-blog-api/internal/middleware"
	"github.com/iliyamo/movie-blog-api/internal/queue"
	"github.com/iliyamo/movie-blog-api/internal/repository"
	"github.com/iliyamo/movie-blog-api/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	users := repository.NewUserRepo(db)
	posts := repository.NewPostRepo(db)

	authHandler := handler.NewAuthHandler(cfg, users)
	postHandler := handler.NewPostHandler(posts)

	// Redis is optional: a nil client turns rate limiting and response
	// caching into passthrough middleware.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; rate limiting and response cache disabled")
	}
	rateLimit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	// The consumer runs for the lifetime of the process and reconnects on
	// its own when the broker drops the connection.
	go func() {
		if err := queue.StartPostConsumer(); err != nil {
			log.Printf("post-consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret, rateLimit)
	router.RegisterPosts(e, postHandler, cfg.JWTSecret, cache)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
