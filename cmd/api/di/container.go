package di

import (
	"fmt"
	"time"

	"recruit-auth-service/cmd/api/infrastructure"
	"recruit-auth-service/internal/adapter/cache"
	"recruit-auth-service/internal/adapter/db/postgres"
	ginhandler "recruit-auth-service/internal/adapter/gin/handler"
	"recruit-auth-service/internal/adapter/repository/cached"
	"recruit-auth-service/internal/config"
	"recruit-auth-service/internal/usecase/auth"
	redisclient "recruit-auth-service/pkg/redis"
	"recruit-auth-service/pkg/token"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *zap.Logger
	DB          *gorm.DB
	RedisClient *redisclient.Client
	Tokens      *token.Manager
	AuthUC      auth.Usecase
	AuthHandler *ginhandler.AuthHandler
}

// NewContainer creates and initializes all application dependencies
func NewContainer(cfg *config.Config, l *zap.Logger) (*Container, error) {
	// Validate configuration before initializing any dependencies
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	db, err := infrastructure.NewDatabase(cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	rdb, err := infrastructure.NewRedisClient(cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Redis: %w", err)
	}

	// Cache-aside layer in front of the user store
	userCache := cache.NewRedisUserCache(
		rdb.Client,
		time.Duration(cfg.Redis.CacheTTL)*time.Second,
		l,
	)
	dbRepo := postgres.NewUserRepoPG(db, l)
	repo := cached.NewCachedUserRepository(dbRepo, userCache, l)

	tokenTTL := time.Duration(cfg.Auth.TokenTTLSeconds) * time.Second
	tokens := token.NewManager(cfg.Auth.JWTSecret, tokenTTL)

	authUC := auth.New(repo, tokens, l)
	authHandler := ginhandler.NewAuthHandler(authUC, tokenTTL, cfg.Auth.CookieSecure, l)

	return &Container{
		Config:      cfg,
		Logger:      l,
		DB:          db,
		RedisClient: rdb,
		Tokens:      tokens,
		AuthUC:      authUC,
		AuthHandler: authHandler,
	}, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	var errs []error

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	if c.DB != nil {
		if err := infrastructure.CloseDatabase(c.DB); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("container close errors: %v", errs)
	}

	return nil
}
