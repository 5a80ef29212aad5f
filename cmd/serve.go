package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/seo-optimizer/contentscore/analyzer"
	"github.com/seo-optimizer/contentscore/api"
	"github.com/seo-optimizer/contentscore/config"
	"github.com/seo-optimizer/contentscore/logging"
	"github.com/seo-optimizer/contentscore/middleware"
	"github.com/seo-optimizer/contentscore/stats"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the scoring API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, *configFile)
		},
	}
}

// services is everything the API needs, built from the configuration
type services struct {
	log      *logrus.Logger
	storage  *stats.Storage
	analyzer *analyzer.Analyzer
	server   *http.Server
}

func buildServices(cfg *config.Config) (*services, error) {
	log, err := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	if err != nil {
		return nil, err
	}
	gin.SetMode(cfg.GinMode)

	storage, err := stats.NewStorage(cfg.DataDir, log)
	if err != nil {
		return nil, fmt.Errorf("failed to open score statistics: %w", err)
	}
	storage.Cleanup(cfg.StatsRetentionMonths)

	a := analyzer.New(analyzer.Options{
		CacheTTL:        cfg.CacheTTL,
		CleanupInterval: cfg.CacheCleanup,
		Stats:           storage,
		Logger:          log,
	})

	server := api.NewServer(cfg.Addr(), api.Options{
		Analyzer:       a,
		RequestStats:   logging.NewStatistics(cfg.DevMode),
		ScoreStats:     storage,
		RateLimiter:    middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst),
		Logger:         log,
		MaxBodyBytes:   cfg.MaxBodyBytes,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	return &services{log: log, storage: storage, analyzer: a, server: server}, nil
}

func runServe(ctx context.Context, configFile string) error {
	envFile, err := config.LoadEnv(".")
	if err != nil {
		return err
	}
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	svc, err := buildServices(cfg)
	if err != nil {
		return err
	}
	if envFile == "" {
		svc.log.Info("No .env file found, using environment variables")
	} else {
		svc.log.WithField("file", envFile).Info("Loaded environment file")
	}

	errCh := make(chan error, 1)
	go func() {
		svc.log.WithField("addr", svc.server.Addr).Info("Server starting")
		if err := svc.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			_ = svc.analyzer.Shutdown()
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
		svc.log.Info("Shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	serveErr := svc.server.Shutdown(shutdownCtx)
	// flushes the score statistics to disk
	return errors.Join(serveErr, svc.analyzer.Shutdown())
}
