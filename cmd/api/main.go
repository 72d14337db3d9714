package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	_ "github.com/xiebiao/blend/docs"
	apporder "github.com/xiebiao/blend/internal/application/order"
	"github.com/xiebiao/blend/internal/bootstrap"
	"github.com/xiebiao/blend/internal/infrastructure/config"
	"github.com/xiebiao/blend/internal/infrastructure/logger"
	"github.com/xiebiao/blend/internal/infrastructure/mail"
	"github.com/xiebiao/blend/internal/infrastructure/oauth"
	"github.com/xiebiao/blend/internal/infrastructure/persistence/postgres"
	"github.com/xiebiao/blend/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/blend/internal/infrastructure/storage"
	"github.com/xiebiao/blend/pkg/jwt"
	"github.com/xiebiao/blend/pkg/metrics"
	"github.com/xiebiao/blend/pkg/mq"
	"github.com/xiebiao/blend/pkg/response"
	"github.com/xiebiao/blend/pkg/tracing"
)

// @title                       Blend API
// @version                     1.0
// @description                 Catalog, orders and accounts for the Blend store.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	// 1. config and logger
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	zlog, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()
	response.SetLogger(zlog)

	zlog.Info("config loaded",
		zap.Int("port", cfg.Server.Port),
		zap.String("mode", cfg.Server.Mode),
		zap.String("storage", cfg.Storage.Driver),
		zap.String("mail", cfg.Mail.Provider),
		zap.Bool("redis", cfg.Redis.Enabled),
		zap.Bool("rabbitmq", cfg.RabbitMQ.Enabled),
	)

	ctx := context.Background()

	// 2. observability
	if cfg.Metrics.Enabled {
		metrics.InitMetrics()
	}
	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.Endpoint)
		if err != nil {
			zlog.Fatal("init tracer", zap.Error(err))
		}
		defer func() { _ = shutdown(context.Background()) }()
	}

	// 3. infrastructure
	db, err := postgres.NewDB(cfg, zlog)
	if err != nil {
		zlog.Fatal("connect database", zap.Error(err))
	}

	images, err := storage.New(ctx, cfg, zlog)
	if err != nil {
		zlog.Fatal("init storage", zap.Error(err))
	}
	defer images.Close()

	infra := bootstrap.Infra{
		DB:       db,
		Images:   images,
		Notifier: mail.New(cfg.Mail, zlog),
		JWT:      jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Expiration),
		Log:      zlog,
		Events:   apporder.NopPublisher{},
	}

	if cfg.Redis.Enabled {
		client, err := redis.NewClient(cfg, zlog)
		if err != nil {
			zlog.Fatal("connect redis", zap.Error(err))
		}
		defer client.Close()
		infra.Tokens = redis.NewTokenStore(client)
	}

	if cfg.RabbitMQ.Enabled {
		publisher, err := mq.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, "topic", zlog)
		if err != nil {
			zlog.Fatal("connect rabbitmq", zap.Error(err))
		}
		defer publisher.Close()
		infra.Events = publisher
	}

	if cfg.Google.Enabled() {
		infra.Google = oauth.NewGoogleProvider(cfg.Google)
	}

	// 4. application
	app := bootstrap.Build(cfg, infra)
	if err := app.Seed.Execute(ctx, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		zlog.Error("seed admin", zap.Error(err))
	}

	// 5. serve until SIGINT/SIGTERM
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      app.Engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		zlog.Info("server started", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down", zap.Duration("timeout", cfg.Server.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("forced shutdown", zap.Error(err))
	}
	zlog.Info("server stopped")
}
