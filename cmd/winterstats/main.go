package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"github.com/couchcryptid/winter-stats-service/internal/adapter/chart"
	httpadapter "github.com/couchcryptid/winter-stats-service/internal/adapter/http"
	"github.com/couchcryptid/winter-stats-service/internal/config"
	"github.com/couchcryptid/winter-stats-service/internal/fixtures"
	"github.com/couchcryptid/winter-stats-service/internal/i18n"
	"github.com/couchcryptid/winter-stats-service/internal/observability"
	"github.com/couchcryptid/winter-stats-service/internal/report"
)

func main() {
	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	catalog, err := fixtures.Load()
	if err != nil {
		logger.Error("failed to load fixtures", "error", err)
		os.Exit(1)
	}
	metrics.DatasetsLoaded.Set(float64(len(catalog.Winters)))
	for _, w := range catalog.Winters {
		metrics.RecordsLoaded.WithLabelValues(w.Label).Set(float64(len(w.Records)))
	}
	logger.Info("fixtures loaded",
		"location", catalog.Location.Name,
		"winters", len(catalog.Winters),
		"records", catalog.RecordCount(),
	)

	locale, _ := i18n.Lookup(cfg.DefaultLocale)
	clock := clockwork.NewRealClock()
	reports := report.New(catalog, clock, logger, metrics, cfg.SmoothingWindow)
	charts := chart.NewCachedRenderer(chart.NewLineRenderer(metrics, logger), cfg.ChartCacheSize, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, httpadapter.Options{
		Reports:       reports,
		Charts:        charts,
		Metrics:       metrics,
		Logger:        logger,
		Clock:         clock,
		DefaultLocale: locale,
		ChartWidth:    cfg.ChartWidth,
		ChartHeight:   cfg.ChartHeight,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	// Start HTTP server.
	g.Go(func() error {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	// Drain on signal, or when the server fails to start.
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("shutdown complete")
}
