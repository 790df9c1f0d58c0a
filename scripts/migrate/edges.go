package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// relationship is an inventory relationship read from SQLite.
type relationship struct {
	Source     string
	Target     string
	Type       string
	Properties string
	Created    string
}

func (r *relationship) key() string {
	return r.Source + " -" + r.Type + "-> " + r.Target
}

// readRelationships reads every relationship row.
func readRelationships(ctx context.Context, db *sql.DB) ([]relationship, error) {
	rows, err := db.QueryContext(ctx, `SELECT source, target, type, properties, created FROM relationships`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rels []relationship
	for rows.Next() {
		var (
			r     relationship
			props sql.NullString
		)
		if err := rows.Scan(&r.Source, &r.Target, &r.Type, &props, &r.Created); err != nil {
			return nil, fmt.Errorf("scan relationship: %w", err)
		}
		r.Properties = normalizeJSON(props)
		rels = append(rels, r)
	}
	return rels, rows.Err()
}

// dropDangling removes relationships whose endpoints are not in nodeIDs or
// whose type is empty.
func dropDangling(rels []relationship, nodeIDs map[string]bool) ([]relationship, []skippedRow) {
	var (
		kept    []relationship
		skipped []skippedRow
	)
	for i := range rels {
		r := rels[i]
		switch {
		case r.Type == "":
			skipped = append(skipped, skippedRow{r.key(), "empty type"})
		case !nodeIDs[r.Source]:
			skipped = append(skipped, skippedRow{r.key(), "source node not found"})
		case !nodeIDs[r.Target]:
			skipped = append(skipped, skippedRow{r.key(), "target node not found"})
		default:
			kept = append(kept, r)
		}
	}
	return kept, skipped
}

// insertRelationships upserts relationships in batches of 100.
func insertRelationships(ctx context.Context, tx pgx.Tx, rels []relationship) (int, error) {
	const batchSize = 100
	for i := 0; i < len(rels); i += batchSize {
		end := min(i+batchSize, len(rels))

		b := &pgx.Batch{}
		for j := i; j < end; j++ {
			r := &rels[j]
			b.Queue(
				`INSERT INTO hg_relationships (source, target, type, properties, created_at)
				 VALUES ($1, $2, $3, $4::jsonb, $5)
				 ON CONFLICT (source, target, type) DO UPDATE SET properties = EXCLUDED.properties`,
				r.Source, r.Target, r.Type, r.Properties, parseTime(r.Created),
			)
		}
		if err := tx.SendBatch(ctx, b).Close(); err != nil {
			return i, fmt.Errorf("batch %d-%d: %w", i, end, err)
		}
	}
	return len(rels), nil
}
