//go:build wireinject
// +build wireinject

// Wire injector mirroring the manual wiring in main.go. Generate with:
//
//	wire gen ./cmd/api
//
// Optional collaborators (Redis blacklist, RabbitMQ, Google) are resolved by
// provider functions that return nil when the feature is disabled.
package main

import (
	"context"

	"github.com/google/wire"
	"go.uber.org/zap"

	appauth "github.com/xiebiao/blend/internal/application/auth"
	apporder "github.com/xiebiao/blend/internal/application/order"
	"github.com/xiebiao/blend/internal/bootstrap"
	"github.com/xiebiao/blend/internal/domain/media"
	"github.com/xiebiao/blend/internal/infrastructure/config"
	"github.com/xiebiao/blend/internal/infrastructure/logger"
	"github.com/xiebiao/blend/internal/infrastructure/mail"
	"github.com/xiebiao/blend/internal/infrastructure/oauth"
	"github.com/xiebiao/blend/internal/infrastructure/persistence/postgres"
	"github.com/xiebiao/blend/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/blend/internal/infrastructure/storage"
	"github.com/xiebiao/blend/pkg/jwt"
	"github.com/xiebiao/blend/pkg/mq"
)

// infrastructureSet: config, logger and the external systems.
var infrastructureSet = wire.NewSet(
	config.Load,
	provideLogConfig,
	logger.New,
	postgres.NewDB,
	provideImageStore,
	provideNotifier,
	provideTokenStore,
	provideEventPublisher,
	provideIdentityProvider,
)

// middlewareSet: token signing shared by use cases and the auth middleware.
var middlewareSet = wire.NewSet(
	provideJWTManager,
)

var appSet = wire.NewSet(
	wire.Struct(new(bootstrap.Infra), "*"),
	bootstrap.Build,
)

// InitializeApp builds the application from config and environment.
func InitializeApp(ctx context.Context) (*bootstrap.App, error) {
	wire.Build(infrastructureSet, middlewareSet, appSet)
	return nil, nil
}

func provideLogConfig(cfg *config.Config) config.LogConfig {
	return cfg.Log
}

func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Expiration)
}

func provideImageStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (media.Store, error) {
	return storage.New(ctx, cfg, log)
}

func provideNotifier(cfg *config.Config, log *zap.Logger) appauth.Notifier {
	return mail.New(cfg.Mail, log)
}

func provideTokenStore(cfg *config.Config, log *zap.Logger) (bootstrap.TokenStore, error) {
	if !cfg.Redis.Enabled {
		return nil, nil
	}
	client, err := redis.NewClient(cfg, log)
	if err != nil {
		return nil, err
	}
	return redis.NewTokenStore(client), nil
}

func provideEventPublisher(cfg *config.Config, log *zap.Logger) (apporder.EventPublisher, error) {
	if !cfg.RabbitMQ.Enabled {
		return apporder.NopPublisher{}, nil
	}
	return mq.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, "topic", log)
}

func provideIdentityProvider(cfg *config.Config) appauth.IdentityProvider {
	if !cfg.Google.Enabled() {
		return nil
	}
	return oauth.NewGoogleProvider(cfg.Google)
}
