package main

import (
	"context"
	"database/sql"
	"fmt"
	"slices"

	"github.com/jackc/pgx/v5"
)

// node is an inventory node read from SQLite.
type node struct {
	ID         string
	Labels     []string
	Properties string
	Created    string
	Updated    string
}

// readNodes reads every node row. Rows without labels, and IP rows without
// an address, are returned as skipped.
func readNodes(ctx context.Context, db *sql.DB) ([]node, []skippedRow, error) {
	rows, err := db.QueryContext(ctx, `SELECT id, labels, properties, created, updated FROM nodes`)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var (
		nodes   []node
		skipped []skippedRow
	)
	for rows.Next() {
		var (
			n      node
			labels string
			props  sql.NullString
		)
		if err := rows.Scan(&n.ID, &labels, &props, &n.Created, &n.Updated); err != nil {
			return nil, nil, fmt.Errorf("scan node: %w", err)
		}
		n.Labels = parseLabels(labels)
		n.Properties = normalizeJSON(props)

		if reason := checkNode(&n); reason != "" {
			skipped = append(skipped, skippedRow{Key: "node " + n.ID, Reason: reason})
			continue
		}
		nodes = append(nodes, n)
	}
	return nodes, skipped, rows.Err()
}

// checkNode returns why n cannot be stored, or "".
func checkNode(n *node) string {
	if n.ID == "" {
		return "empty id"
	}
	if len(n.Labels) == 0 {
		return "no labels"
	}
	if slices.Contains(n.Labels, "IP") && propertyString(n.Properties, "address") == "" {
		return "IP node without address"
	}
	return ""
}

// insertNodes upserts nodes in batches of 100 and returns the number written.
func insertNodes(ctx context.Context, tx pgx.Tx, nodes []node) (int, error) {
	const batchSize = 100
	for i := 0; i < len(nodes); i += batchSize {
		end := min(i+batchSize, len(nodes))
		if err := insertNodeBatch(ctx, tx, nodes[i:end]); err != nil {
			return i, fmt.Errorf("batch %d-%d: %w", i, end, err)
		}
	}
	return len(nodes), nil
}

func insertNodeBatch(ctx context.Context, tx pgx.Tx, batch []node) error {
	b := &pgx.Batch{}
	for i := range batch {
		n := &batch[i]
		b.Queue(
			`INSERT INTO hg_nodes (id, labels, properties, created_at, updated_at)
			 VALUES ($1, $2, $3::jsonb, $4, $5)
			 ON CONFLICT (id) DO UPDATE
			 SET labels = EXCLUDED.labels, properties = EXCLUDED.properties, updated_at = EXCLUDED.updated_at`,
			n.ID, n.Labels, n.Properties, parseTime(n.Created), parseTime(n.Updated),
		)
	}
	return tx.SendBatch(ctx, b).Close()
}

// buildNodeSet creates a set of node IDs for fast lookup.
func buildNodeSet(nodes []node) map[string]bool {
	m := make(map[string]bool, len(nodes))
	for i := range nodes {
		m[nodes[i].ID] = true
	}
	return m
}
