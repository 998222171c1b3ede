package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"article-clustering/internal/adapter/cluster_http"
	"article-clustering/internal/di"
	"article-clustering/internal/infra/config"
	"article-clustering/internal/infra/logger"
)

func main() {
	// 1. Load Config
	cfg := config.Load()

	// 2. Initialize Logger
	log := logger.New()
	slog.SetDefault(log)

	// 3. Wire Components
	components, err := di.NewApplicationComponents(cfg, log)
	if err != nil {
		log.Error("failed to wire components", "error", err)
		os.Exit(1)
	}
	log.Info("embedder ready", "backend", cfg.Embedder.Backend, "version", components.Encoder.Version())

	// 4. Initialize Echo
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
			)
			return nil
		},
	}))

	// 5. Register Handlers
	handler := cluster_http.NewHandler(components.ClusterUsecase)
	cluster_http.RegisterRoutes(e, handler)

	// 6. Start Server with graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown failed", "error", err)
		os.Exit(1)
	}
}
