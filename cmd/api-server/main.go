package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"tourhub/database"
	"tourhub/internal/config"
	"tourhub/internal/http-api/handler"
	"tourhub/internal/http-api/middleware"
	"tourhub/internal/http-api/repository"
	"tourhub/internal/http-api/service"
	"tourhub/internal/security"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := newLogger(cfg)

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Seed(db, logger); err != nil {
		logger.Error("database seeding failed", "error", err)
		os.Exit(1)
	}

	rdb := newRedisClient(cfg, logger)

	// Repositories
	tourRepo := repository.NewTourRepository(db)
	ratingRepo := repository.NewTourRatingRepository(db)
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)

	// Services
	tokenProvider := security.NewJWTProvider(cfg.JWTSecret, cfg.AccessTokenTTL)
	ratingService := service.NewRatingService(ratingRepo, tourRepo)
	tourService := service.NewTourService(tourRepo)
	principalService := service.NewPrincipalService(tokenProvider, userRepo)
	authService := service.NewAuthService(userRepo, roleRepo, refreshTokenRepo, tokenProvider, cfg.RefreshTokenTTL)

	// Handlers
	ratingHandler := handler.NewRatingHandler(ratingService)
	tourHandler := handler.NewTourHandler(tourService)
	authHandler := handler.NewAuthHandler(authService, cfg.AccessTokenTTL)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(cfg, rdb))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authn := middleware.AuthMiddleware(principalService)
	csrOnly := middleware.RequireAuthority(service.RoleCSR)

	authHandler.RegisterRoutes(r.Group("/auth"))

	tours := r.Group("/tours")
	tourHandler.RegisterRoutes(tours)
	ratingHandler.RegisterRoutes(tours, authn, csrOnly)
	ratingHandler.RegisterAdminRoutes(r.Group("/ratings"), authn, csrOnly)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("starting HTTP server", "addr", addr)
	if err := r.Run(addr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(h)
}

func newRedisClient(cfg *config.Config, logger *slog.Logger) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		Password:     cfg.RedisPassword,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		// Rate limiting degrades to the in-process limiter
		logger.Warn("redis unreachable, using in-process rate limiter", "error", err)
		return nil
	}

	logger.Info("connected to redis", "addr", cfg.RedisAddr)
	return rdb
}
