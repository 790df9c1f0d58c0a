package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/url"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
)

// sqliteTimeLayouts are the datetime formats accepted from SQLite.
var sqliteTimeLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
	"2006-01-02",
}

// parseTime parses a SQLite datetime string to time.Time.
func parseTime(s string) time.Time {
	for _, layout := range sqliteTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	slog.Warn("unparseable time, using now", "value", s)
	return time.Now().UTC()
}

// normalizeJSON ensures a properties value is a JSON object, defaulting to "{}".
func normalizeJSON(s sql.NullString) string {
	if !s.Valid || strings.TrimSpace(s.String) == "" {
		return "{}"
	}
	var obj map[string]any
	if json.Unmarshal([]byte(s.String), &obj) != nil || obj == nil {
		slog.Warn("properties are not a JSON object, using empty object", "value", s.String)
		return "{}"
	}
	return s.String
}

// parseLabels accepts a JSON array or a comma-separated list. Empty entries
// and duplicates are dropped.
func parseLabels(s string) []string {
	var raw []string
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		raw = strings.Split(s, ",")
	}

	labels := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimSpace(l)
		if l != "" && !slices.Contains(labels, l) {
			labels = append(labels, l)
		}
	}
	return labels
}

// propertyString returns props[key] when it is a string.
func propertyString(props, key string) string {
	var obj map[string]any
	if json.Unmarshal([]byte(props), &obj) != nil {
		return ""
	}
	s, _ := obj[key].(string)
	return s
}

// sanitizeURL removes credentials from a database URL for display.
func sanitizeURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "[unparseable URL]"
	}
	u.User = nil
	return u.String()
}

// envOr returns the environment variable value or a default.
func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// allowedTables is the set of table names that countRows may query.
var allowedTables = map[string]bool{
	"hg_nodes":         true,
	"hg_relationships": true,
}

// countRows counts rows in a table.
func countRows(ctx context.Context, tx pgx.Tx, table string) (int, error) {
	if !allowedTables[table] {
		return 0, fmt.Errorf("disallowed table name: %s", table)
	}

	var count int
	err := tx.QueryRow(ctx, "SELECT count(*) FROM "+pgx.Identifier{table}.Sanitize()).Scan(&count)
	return count, err
}

// spotCheck compares labels and address of up to 5 random nodes between the
// source rows and PostgreSQL.
func spotCheck(ctx context.Context, tx pgx.Tx, nodes []node) []string {
	count := min(5, len(nodes))
	var checks []string

	for _, idx := range rand.Perm(len(nodes))[:count] {
		n := nodes[idx]
		var (
			pgLabels  []string
			pgAddress *string
		)
		err := tx.QueryRow(ctx,
			`SELECT labels, properties->>'address' FROM hg_nodes WHERE id = $1`, n.ID,
		).Scan(&pgLabels, &pgAddress)
		if err != nil {
			checks = append(checks, fmt.Sprintf("FAIL %s: not found in postgres: %v", n.ID, err))
			continue
		}

		addr := ""
		if pgAddress != nil {
			addr = *pgAddress
		}
		if slices.Equal(pgLabels, n.Labels) && addr == propertyString(n.Properties, "address") {
			checks = append(checks, fmt.Sprintf("ok   %s: labels=%s address=%q", n.ID, strings.Join(pgLabels, ","), addr))
		} else {
			checks = append(checks, fmt.Sprintf("FAIL %s: mismatch pg(%v/%q) vs sqlite(%v)", n.ID, pgLabels, addr, n.Labels))
		}
	}
	return checks
}

// printReport writes the final migration summary.
func printReport(w io.Writer, r *report) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "=== hostgraph Inventory Migration Report ===")
	if r.DryRun {
		fmt.Fprintln(w, "MODE: DRY RUN (no changes made)")
	}
	fmt.Fprintf(w, "Source: %s\n", r.Source)
	fmt.Fprintf(w, "Target: %s\n", r.Target)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Nodes: %d read, %d inserted, %d verified %s\n",
		r.NodesRead, r.NodesInserted, r.NodesVerified, statusMark(r.NodesInserted, r.NodesVerified, r.DryRun))
	fmt.Fprintf(w, "Relationships: %d read, %d inserted, %d verified %s\n",
		r.RelationshipsRead, r.RelationshipsInserted, r.RelationshipsVerified,
		statusMark(r.RelationshipsInserted, r.RelationshipsVerified, r.DryRun))

	if len(r.Skipped) > 0 {
		fmt.Fprintf(w, "\nSkipped (%d):\n", len(r.Skipped))
		for _, s := range r.Skipped {
			fmt.Fprintf(w, "  - %s (reason: %s)\n", s.Key, s.Reason)
		}
	}

	if len(r.SpotChecks) > 0 {
		fmt.Fprintln(w, "\nSpot checks:")
		for _, c := range r.SpotChecks {
			fmt.Fprintf(w, "  %s\n", c)
		}
	}

	fmt.Fprintf(w, "\nDuration: %.1fs\n", r.Duration.Seconds())
	if r.Err != nil {
		fmt.Fprintf(w, "Status: FAILED: %v\n", r.Err)
	} else {
		fmt.Fprintln(w, "Status: SUCCESS")
	}
}

// statusMark compares inserted rows against the verified table count, which
// may include rows that existed before the run.
func statusMark(inserted, verified int, dryRun bool) string {
	switch {
	case dryRun:
		return "(dry run)"
	case verified >= inserted:
		return "[ok]"
	default:
		return "[MISMATCH]"
	}
}
