// Package main copies a host inventory kept in SQLite into the hostgraph
// PostgreSQL schema.
//
// The SQLite database must hold two tables:
//
//	nodes(id TEXT, labels TEXT, properties TEXT, created TEXT, updated TEXT)
//	relationships(source TEXT, target TEXT, type TEXT, properties TEXT, created TEXT)
//
// labels is a JSON array or a comma-separated list; properties is a JSON object.
//
// Usage:
//
//	SQLITE_PATH=/path/to/inventory.sqlite DATABASE_URL=postgres://... go run ./scripts/migrate
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	_ "modernc.org/sqlite"
)

// config holds environment-driven migration settings.
type config struct {
	SQLitePath  string
	DatabaseURL string
	DryRun      bool
}

// skippedRow records a node or relationship that was not copied.
type skippedRow struct {
	Key    string
	Reason string
}

// report holds the final migration summary.
type report struct {
	Source                string
	Target                string
	NodesRead             int
	NodesInserted         int
	NodesVerified         int
	RelationshipsRead     int
	RelationshipsInserted int
	RelationshipsVerified int
	Skipped               []skippedRow
	SpotChecks            []string
	Duration              time.Duration
	DryRun                bool
	Err                   error
}

func main() {
	cfg := loadConfig()
	if cfg.DatabaseURL == "" && !cfg.DryRun {
		slog.Error("DATABASE_URL is required")
		os.Exit(1)
	}

	slog.Info("starting migration", "sqlite", cfg.SQLitePath, "dry_run", cfg.DryRun)

	start := time.Now()
	r, err := runMigration(context.Background(), cfg)
	r.Duration = time.Since(start)
	if err != nil {
		r.Err = err
		slog.Error("migration failed", "error", err)
	}
	printReport(os.Stdout, &r)
	if err != nil {
		os.Exit(1)
	}
}

// loadConfig reads configuration from environment variables.
func loadConfig() config {
	return config{
		SQLitePath:  envOr("SQLITE_PATH", "inventory.sqlite"),
		DatabaseURL: envOr("DATABASE_URL", ""),
		DryRun:      os.Getenv("DRY_RUN") == "true" || os.Getenv("DRY_RUN") == "1",
	}
}

// runMigration executes the full migration pipeline in one PostgreSQL
// transaction.
func runMigration(ctx context.Context, cfg config) (report, error) {
	r := report{
		Source: cfg.SQLitePath,
		Target: sanitizeURL(cfg.DatabaseURL),
		DryRun: cfg.DryRun,
	}

	lite, err := sql.Open("sqlite", cfg.SQLitePath+"?mode=ro")
	if err != nil {
		return r, fmt.Errorf("open sqlite: %w", err)
	}
	defer lite.Close()

	nodes, skipped, err := readNodes(ctx, lite)
	if err != nil {
		return r, fmt.Errorf("read nodes: %w", err)
	}
	r.NodesRead = len(nodes) + len(skipped)
	r.Skipped = append(r.Skipped, skipped...)
	slog.Info("read nodes from sqlite", "count", r.NodesRead, "invalid", len(skipped))

	rels, err := readRelationships(ctx, lite)
	if err != nil {
		return r, fmt.Errorf("read relationships: %w", err)
	}
	r.RelationshipsRead = len(rels)
	slog.Info("read relationships from sqlite", "count", r.RelationshipsRead)

	rels, skipped = dropDangling(rels, buildNodeSet(nodes))
	r.Skipped = append(r.Skipped, skipped...)

	if cfg.DryRun {
		slog.Info("dry run, skipping PostgreSQL writes")
		r.NodesInserted = len(nodes)
		r.RelationshipsInserted = len(rels)
		return r, nil
	}

	conn, err := pgx.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return r, fmt.Errorf("connect postgres: %w", err)
	}
	defer conn.Close(ctx)

	tx, err := conn.Begin(ctx)
	if err != nil {
		return r, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	if r.NodesInserted, err = insertNodes(ctx, tx, nodes); err != nil {
		return r, fmt.Errorf("insert nodes: %w", err)
	}
	slog.Info("inserted nodes", "count", r.NodesInserted)

	if r.RelationshipsInserted, err = insertRelationships(ctx, tx, rels); err != nil {
		return r, fmt.Errorf("insert relationships: %w", err)
	}
	slog.Info("inserted relationships", "count", r.RelationshipsInserted, "skipped", len(r.Skipped))

	if r.NodesVerified, err = countRows(ctx, tx, "hg_nodes"); err != nil {
		return r, fmt.Errorf("verify node count: %w", err)
	}
	if r.RelationshipsVerified, err = countRows(ctx, tx, "hg_relationships"); err != nil {
		return r, fmt.Errorf("verify relationship count: %w", err)
	}

	r.SpotChecks = spotCheck(ctx, tx, nodes)

	if err := tx.Commit(ctx); err != nil {
		return r, fmt.Errorf("commit: %w", err)
	}
	slog.Info("transaction committed")
	return r, nil
}
