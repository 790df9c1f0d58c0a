// Command hostgraph serves the host topology graph over HTTP.
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

	"github.com/gin-gonic/gin"
	"github.com/pressly/goose/v3"
	"github.com/sirupsen/logrus"

	"github.com/hostgraph/hostgraph/internal/api"
	"github.com/hostgraph/hostgraph/internal/config"
	"github.com/hostgraph/hostgraph/internal/db"
	"github.com/hostgraph/hostgraph/internal/db/migrations"
	"github.com/hostgraph/hostgraph/internal/dbpool"
	"github.com/hostgraph/hostgraph/internal/metrics"
	"github.com/hostgraph/hostgraph/internal/middleware"
	"github.com/hostgraph/hostgraph/internal/service"
	"github.com/hostgraph/hostgraph/internal/store"
)

const (
	shutdownTimeout = 15 * time.Second
	poolStatPeriod  = 15 * time.Second
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	if err := run(log); err != nil {
		log.WithError(err).Fatal("hostgraph exited")
	}
}

func run(log *logrus.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("LOG_LEVEL: %w", err)
	}

	log.SetLevel(level)

	if level < logrus.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := dbpool.NewPool(ctx, cfg.DatabaseURL.Value(), dbpool.Options{
		MaxConns:         int32(cfg.DBMaxConns), //nolint:gosec // bounded by config validation.
		StatementTimeout: 2 * cfg.TraversalTimeout,
	})
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := db.RunMigrations(ctx, pool, log, migrations.FS); err != nil {
		return err
	}

	base := store.Base{Pool: pool, Log: log}
	graphStore := store.NewGraphStore(base)

	stats := service.NewStatsWorker(graphStore, log, 0)
	go stats.Run(ctx)
	go reportPoolStats(ctx, pool)

	deps := &api.RouterDeps{
		Log:           log,
		DB:            pool,
		Schema:        schemaCheck(pool),
		Nodes:         service.NewNodeService(store.NewNodeStore(base), stats, log),
		Relationships: service.NewRelationshipService(store.NewRelationshipStore(base), stats, log),
		Topology:      service.NewTopologyService(store.NewTopologyStore(base), stats, log),
		Graph:         service.NewGraphService(graphStore, log),
		Hosts: service.NewHostService(graphStore, service.HostLimits{
			DefaultDepth: cfg.DefaultDepth,
			MaxDepth:     cfg.MaxTraversalDepth,
			PathBudget:   cfg.TraversalPathBudget,
			Workers:      cfg.TraversalWorkers,
			Timeout:      cfg.TraversalTimeout,
		}, log),
		CORSOrigins:   cfg.CORSOrigins,
		Version:       config.Version,
		SchemaVersion: db.SchemaVersion(),
	}

	if cfg.AuthDisabled {
		log.Warn("authentication disabled")
	} else {
		keys := make([]string, 0, len(cfg.APIKeys))
		for _, k := range cfg.APIKeys {
			keys = append(keys, k.Value())
		}

		deps.Keys = middleware.NewStaticKeys(keys)
	}

	apiSrv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           api.NewRouter(ctx, deps),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      cfg.TraversalTimeout + 30*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	metricsSrv := &http.Server{
		Addr:              cfg.MetricsAddr(),
		Handler:           api.NewMetricsHandler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 2)

	for _, srv := range []*http.Server{apiSrv, metricsSrv} {
		go func() {
			log.WithField("addr", srv.Addr).Info("listening")

			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("serving %s: %w", srv.Addr, err)
			}
		}()
	}

	select {
	case <-ctx.Done():
		log.Info("shutting down")
	case err := <-errCh:
		stop()
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return errors.Join(apiSrv.Shutdown(shutdownCtx), metricsSrv.Shutdown(shutdownCtx))
}

// schemaCheck fails while any embedded migration is still pending.
func schemaCheck(pool *dbpool.Pool) api.SchemaCheck {
	return func(ctx context.Context) error {
		status, err := db.MigrationStatus(ctx, pool, migrations.FS)
		if err != nil {
			return err
		}

		for _, s := range status {
			if s.State != goose.StateApplied {
				return fmt.Errorf("migration %d is %s", s.Source.Version, s.State)
			}
		}

		return nil
	}
}

// reportPoolStats publishes connection pool usage until ctx is done.
func reportPoolStats(ctx context.Context, pool *dbpool.Pool) {
	ticker := time.NewTicker(poolStatPeriod)
	defer ticker.Stop()

	for {
		s := pool.Stat()
		metrics.DBConnections.WithLabelValues("acquired").Set(float64(s.AcquiredConns()))
		metrics.DBConnections.WithLabelValues("idle").Set(float64(s.IdleConns()))
		metrics.DBConnections.WithLabelValues("total").Set(float64(s.TotalConns()))

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
