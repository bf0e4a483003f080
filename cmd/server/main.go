package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // Loads .env files into the environment
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/hilgaap/inventori-api/internal/config"     // Internal config loader
	"github.com/hilgaap/inventori-api/internal/database"   // MySQL connection pool
	"github.com/hilgaap/inventori-api/internal/handler"    // HTTP handlers
	"github.com/hilgaap/inventori-api/internal/middleware" // Rate limiting
	"github.com/hilgaap/inventori-api/internal/repository" // Storage layer
	"github.com/hilgaap/inventori-api/internal/router"     // Route registration
)

func main() {
	// Load .env if present; real environments set variables directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	users := repository.NewUserRepo(db)
	products := repository.NewProductRepo(db)

	// The limiter is injected into the auth routes. Redis backs it when
	// configured and reachable; otherwise the process-local window map.
	rlCfg := config.LoadRateLimitConfig()
	var limiter middleware.Limiter = middleware.NewMemoryLimiter(rlCfg)
	if rdb := config.NewRedisClient(); rdb != nil {
		limiter = middleware.NewRedisLimiter(rdb, rlCfg)
		log.Printf("rate limiter backed by redis")
	}

	e := echo.New()
	e.HideBanner = true

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users), limiter)
	router.RegisterAPI(e,
		handler.NewProductHandler(products),
		handler.NewUserHandler(cfg, users),
		cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
