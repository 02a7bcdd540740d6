package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	chiTransport "github.com/kailas-cloud/explorer/internal/transport/chi"
	healthuc "github.com/kailas-cloud/explorer/internal/usecase/health"
	summaryuc "github.com/kailas-cloud/explorer/internal/usecase/summary"
	"github.com/kailas-cloud/explorer/internal/version"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `
Start the explorer HTTP API.

Routes:
  POST /api/summarize   {"topic": "...", "category": "..."}
  GET  /api/categories
  GET  /health
  GET  /metrics
`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Override http.port from config")
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, logger, env, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if servePort > 0 {
		cfg.HTTP.Port = servePort
	}

	logger.Info("Starting explorer API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("search_provider", cfg.Search.Provider),
		zap.String("completion_provider", cfg.Completion.Provider),
		zap.String("model", cfg.Completion.Model),
	)

	searcher, completer := buildProviders(&cfg, logger)

	summarySvc := summaryuc.New(searcher, completer).WithSnippetBudget(cfg.Search.SnippetBudget)
	healthSvc := healthuc.New(searcher, completer)

	server := chiTransport.NewServer(summarySvc, healthSvc, logger)
	handler := chiTransport.NewRouter(server, chiTransport.RouterConfig{
		APIKeys:        cfg.Auth.APIKeys,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		RateLimiter:    chiTransport.NewClientRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst),
		TrustProxy:     cfg.RateLimit.TrustProxy,
	}, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	case <-quit:
		logger.Info("Received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
		return err
	}

	logger.Info("Server stopped gracefully")
	return nil
}
