package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	_ "github.com/redmonkez12/user-api/docs" // Swagger docs
	"github.com/redmonkez12/user-api/internal/auth"
	"github.com/redmonkez12/user-api/internal/config"
	"github.com/redmonkez12/user-api/internal/database"
	httpServer "github.com/redmonkez12/user-api/internal/http"
	"github.com/redmonkez12/user-api/internal/logging"
	"github.com/redmonkez12/user-api/internal/user"
)

// @title           User API
// @version         1.0
// @description     REST API with user registration, token authentication and role-gated user CRUD.

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.

func main() {
	if err := run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := logging.NewLogger(cfg.Server.IsDevelopment())
	logger.Info("starting application",
		"env", cfg.Server.Env,
		"port", cfg.Server.Port,
	)

	db, err := database.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := database.Migrate(ctx, db); err != nil {
		return err
	}

	hasher := auth.NewHasher()

	// Bootstrap admin account
	if cfg.Auth.AdminPassword != "" {
		adminHash, err := hasher.Hash(cfg.Auth.AdminPassword)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}
		if err := database.SeedAdmin(ctx, db, adminHash); err != nil {
			return err
		}
	} else {
		logger.Warn("ADMIN_PASSWORD not set, skipping admin bootstrap")
	}

	// Refresh token records live in Postgres or Redis
	var records auth.RefreshTokenRepository
	switch cfg.Auth.TokenStore {
	case config.StoreRedis:
		redisClient, err := initRedis(cfg.Redis)
		if err != nil {
			return fmt.Errorf("failed to initialize Redis: %w", err)
		}
		defer redisClient.Close()
		records = auth.NewRedisRepository(redisClient)
	default:
		records = auth.NewPostgresRepository(db)
	}

	accessCodec, err := auth.NewCodec(cfg.Auth.Codec, cfg.Auth.AccessTokenSecret, cfg.Auth.AccessTokenDuration)
	if err != nil {
		return fmt.Errorf("failed to initialize access token codec: %w", err)
	}
	// Refresh tokens carry no expiry: revocation-only model
	refreshCodec, err := auth.NewCodec(cfg.Auth.Codec, cfg.Auth.RefreshTokenSecret, 0)
	if err != nil {
		return fmt.Errorf("failed to initialize refresh token codec: %w", err)
	}

	tokenService := auth.NewTokenService(accessCodec, refreshCodec, records)

	userRepo := user.NewPostgresRepository(db)
	userService := user.NewService(userRepo, hasher, logger)
	authService := auth.NewService(userService, hasher, tokenService, logger)

	userHandler := user.NewHandler(userService)
	tokenHandler := auth.NewHandler(authService)
	authMiddleware := auth.NewMiddleware(tokenService)

	router := httpServer.NewRouter(cfg, userHandler, tokenHandler, authMiddleware, logger)

	server := httpServer.NewServer(
		":"+cfg.Server.Port,
		router,
		cfg.Server.ReadTimeout,
		cfg.Server.WriteTimeout,
		logger,
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		logger.Info("received shutdown signal", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// initRedis initializes the Redis connection and returns a Redis client
func initRedis(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return client, nil
}
