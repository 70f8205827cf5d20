package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/sanosuguru/go-event-rest-api/internal/api"
	"github.com/sanosuguru/go-event-rest-api/internal/api/handler"
	"github.com/sanosuguru/go-event-rest-api/internal/api/middleware"
	"github.com/sanosuguru/go-event-rest-api/internal/application"
	"github.com/sanosuguru/go-event-rest-api/internal/config"
	"github.com/sanosuguru/go-event-rest-api/internal/domain/event"
	"github.com/sanosuguru/go-event-rest-api/internal/infrastructure/memory"
	"github.com/sanosuguru/go-event-rest-api/internal/infrastructure/postgres"
	"github.com/sanosuguru/go-event-rest-api/internal/infrastructure/rabbitmq"
	"github.com/sanosuguru/go-event-rest-api/internal/pkg/logger"
	"github.com/sanosuguru/go-event-rest-api/internal/pkg/metrics"
)

func main() {
	cfg := config.Load()

	logger.Init(logger.Options{
		Env:     cfg.App.Env,
		Service: cfg.App.Name,
		Level:   cfg.App.LogLevel,
	})
	defer logger.Sync()

	m := metrics.New()

	// ストレージ
	var (
		eventRepo event.Repository
		healthDB  handler.Pinger
	)
	switch cfg.App.StorageDriver {
	case "memory":
		logger.Warn("メモリストアを使用します。再起動するとデータは失われます")
		eventRepo = memory.NewEventRepository()
	case "postgres":
		db, err := postgres.NewConnection(&cfg.Database)
		if err != nil {
			logger.Fatal("データベース接続エラー", zap.Error(err))
		}
		defer db.Close()

		if err := postgres.RunMigrations(db, cfg.Database.MigrationsPath); err != nil {
			logger.Fatal("マイグレーションエラー", zap.Error(err))
		}
		eventRepo = postgres.NewEventRepository(db)
		healthDB = db
	default:
		logger.Fatal("不明なストレージドライバーです", zap.String("driver", cfg.App.StorageDriver))
	}

	opts := []application.EventServiceOption{application.WithMetrics(m)}

	// メッセージ発行（RABBITMQ_URL が設定されている場合のみ）
	if cfg.RabbitMQ.URL != "" {
		pub, err := rabbitmq.NewPublisher(cfg.RabbitMQ.URL)
		if err != nil {
			logger.Warn("RabbitMQに接続できません。作成通知は発行されません", zap.Error(err))
		} else {
			defer pub.Close()
			opts = append(opts, application.WithPublisher(pub))
		}
	}

	eventService := application.NewEventService(eventRepo, opts...)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = api.CustomHTTPErrorHandler
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	middleware.SetupMiddleware(e)
	e.Use(middleware.PrometheusMiddleware(m))

	handler.RegisterRoutes(e, handler.NewEventHandler(eventService), handler.NewHealthHandler(healthDB))
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()), middleware.MetricsBasicAuth(cfg.Metrics))

	// Graceful shutdown
	go func() {
		logger.Info("サーバーを起動します",
			zap.String("port", cfg.Server.Port),
			zap.String("storage", cfg.App.StorageDriver),
		)
		if err := e.Start(fmt.Sprintf(":%s", cfg.Server.Port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("サーバー起動エラー", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("サーバーをシャットダウンしています...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("サーバーシャットダウンエラー", zap.Error(err))
		return
	}

	logger.Info("サーバーが正常にシャットダウンしました")
}
