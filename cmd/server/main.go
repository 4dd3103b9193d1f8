package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"univoice/internal/bootstrap"
	"univoice/internal/config"
	"univoice/internal/platform/logger"
	httptransport "univoice/internal/transport/http"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}

	zl, err := logger.New(cfg.App.Env, cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	app, err := bootstrap.New(ctx, cfg, zl)
	if err != nil {
		zl.Fatal("bootstrap failed", zap.Error(err))
	}
	defer func() {
		if err := app.Close(); err != nil {
			zl.Warn("close resources failed", zap.Error(err))
		}
	}()

	router := httptransport.NewRouter(app)
	server := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		zl.Info("server starting",
			zap.String("addr", server.Addr),
			zap.String("store", app.StoreBackend),
			zap.Int("problems", len(app.Problems)),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server failed", zap.Error(err))
		}
	}()

	waitForShutdown(server, zl)
}

func waitForShutdown(server *http.Server, zl *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zl.Warn("server shutdown failed", zap.Error(err))
	}
}
