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

	chiTransport "github.com/kailas-cloud/coursesearch/internal/transport/chi"
	"github.com/kailas-cloud/coursesearch/internal/version"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Build the index and serve the HTTP API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, env, err := setup()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		if servePort != 0 {
			cfg.HTTP.Port = servePort
		}

		logger.Info("Starting coursesearch API server",
			zap.String("version", version.Version),
			zap.String("commit", version.Commit),
			zap.String("env", env),
			zap.Int("http_port", cfg.HTTP.Port),
			zap.String("index_backend", cfg.Index.Backend),
		)

		ctx := cmd.Context()
		a, err := newApp(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer a.close()

		if _, err := a.indexing.Rebuild(ctx); err != nil {
			logger.Error("Initial index build failed", zap.Error(err))
			return fmt.Errorf("initial index build: %w", err)
		}

		server := chiTransport.NewServer(a.search, a.health, a.search.Len, logger)
		handler := chiTransport.NewRouter(server, chiTransport.RouterConfig{
			CORSAllowedOrigins: cfg.HTTP.CORSAllowedOrigins,
			APIKeys:            cfg.HTTP.APIKeys,
		}, logger)

		addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
		srv := &http.Server{
			Addr:         addr,
			Handler:      handler,
			ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
			WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
		}

		// Graceful shutdown; SIGHUP reloads the catalog
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		reload := make(chan os.Signal, 1)
		signal.Notify(reload, syscall.SIGHUP)
		defer signal.Stop(reload)

		serveErr := make(chan error, 1)
		go func() {
			logger.Info("Starting HTTP server", zap.String("addr", addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serveErr <- err
			}
		}()

		reloadCtx, stopReload := context.WithCancel(ctx)
		defer stopReload()
		go reloadOnSignal(reloadCtx, reload, a, logger)

		select {
		case err := <-serveErr:
			return fmt.Errorf("http server: %w", err)
		case <-quit:
			logger.Info("Received shutdown signal")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Error during shutdown", zap.Error(err))
		}

		logger.Info("Server stopped gracefully")
		return nil
	},
}

// reloadOnSignal rebuilds the index on every signal. A failed rebuild keeps serving
// the previous snapshot.
func reloadOnSignal(ctx context.Context, sig <-chan os.Signal, a *app, logger *zap.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-sig:
			logger.Info("Reloading catalog")
			if _, err := a.indexing.Rebuild(ctx); err != nil {
				logger.Error("Catalog reload failed, keeping previous index", zap.Error(err))
			}
		}
	}
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "HTTP port (overrides http.port)")
	rootCmd.AddCommand(serveCmd)
}
