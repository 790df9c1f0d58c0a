package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/hostgraph/hostgraph/internal/models"
	"github.com/hostgraph/hostgraph/internal/traverse"
)

// Graph query limits.
const (
	defaultNeighborLimit = 100  // default relationships returned by Neighbors
	maxNeighborLimit     = 1000 // caps relationships returned by Neighbors
)

// GraphStore answers graph-shaped queries: neighborhoods, counts and close hosts.
type GraphStore struct {
	Base
}

// NewGraphStore creates a GraphStore with the given shared base.
func NewGraphStore(base Base) *GraphStore {
	return &GraphStore{Base: base}
}

// Neighbors returns nodeID and up to limit relationships of any type that touch it.
func (s *GraphStore) Neighbors(ctx context.Context, nodeID string, limit int) (*models.NeighborResult, error) {
	if limit <= 0 {
		limit = defaultNeighborLimit
	}

	if limit > maxNeighborLimit {
		limit = maxNeighborLimit
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginSnapshotTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting neighbors: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	g := newTxGraph(tx)

	root, err := scanNode(tx.QueryRow(ctx, `SELECT `+nodeColumns+` FROM hg_nodes WHERE id = $1`, nodeID).Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNodeNotFound
		}

		return nil, fmt.Errorf("scanning node: %w", err)
	}

	relTypes, err := relationshipTypes(ctx, tx)
	if err != nil {
		return nil, err
	}

	byNode, err := g.Neighbors(ctx, []string{nodeID}, relTypes)
	if err != nil {
		return nil, err
	}

	neighbors := byNode[nodeID]
	if len(neighbors) > limit {
		neighbors = neighbors[:limit]
	}

	if neighbors == nil {
		neighbors = []models.Neighbor{}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing neighbors: %w", err)
	}

	return &models.NeighborResult{Node: *root, Neighbors: neighbors}, nil
}

// relationshipTypes returns every relationship type present in the graph.
func relationshipTypes(ctx context.Context, tx pgx.Tx) ([]string, error) {
	var types []string

	err := tx.QueryRow(ctx, `SELECT COALESCE(array_agg(DISTINCT type), '{}') FROM hg_relationships`).Scan(&types)
	if err != nil {
		return nil, fmt.Errorf("listing relationship types: %w", err)
	}

	return types, nil
}

// Stats returns node and relationship counts plus a per-label node count.
func (s *GraphStore) Stats(ctx context.Context) (*models.GraphStats, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginSnapshotTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting stats: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	stats := &models.GraphStats{Labels: make(map[string]int)}

	err = tx.QueryRow(ctx, `SELECT
		(SELECT COUNT(*) FROM hg_nodes),
		(SELECT COUNT(*) FROM hg_relationships)`).Scan(&stats.Nodes, &stats.Relationships)
	if err != nil {
		return nil, fmt.Errorf("counting graph: %w", err)
	}

	rows, err := tx.Query(ctx, `SELECT label, COUNT(*) FROM hg_nodes, unnest(labels) AS label GROUP BY label`)
	if err != nil {
		return nil, fmt.Errorf("counting labels: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			label string
			count int
		)

		if err := rows.Scan(&label, &count); err != nil {
			return nil, fmt.Errorf("scanning label count: %w", err)
		}

		stats.Labels[label] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating label counts: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing stats: %w", err)
	}

	return stats, nil
}

// CloseHosts runs the close-hosts traversal from the host at address against
// a single snapshot of the graph.
func (s *GraphStore) CloseHosts(
	ctx context.Context,
	address string,
	maxDepth int,
	opts traverse.Options,
) ([]models.CloseHost, traverse.Stats, error) {
	tx, err := s.beginSnapshotTx(ctx)
	if err != nil {
		return nil, traverse.Stats{}, fmt.Errorf("finding close hosts: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	hosts, stats, err := traverse.FindCloseHosts(ctx, newTxGraph(tx), address, maxDepth, opts)
	if err != nil {
		return nil, stats, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, stats, fmt.Errorf("committing close hosts: %w", err)
	}

	return hosts, stats, nil
}

// Distance reports how far the host at to is from the host at from, within
// maxDepth hops, against a single snapshot of the graph.
func (s *GraphStore) Distance(
	ctx context.Context,
	from, to string,
	maxDepth int,
	opts traverse.Options,
) (models.CloseHost, bool, error) {
	tx, err := s.beginSnapshotTx(ctx)
	if err != nil {
		return models.CloseHost{}, false, fmt.Errorf("computing distance: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	host, found, err := traverse.Distance(ctx, newTxGraph(tx), from, to, maxDepth, opts)
	if err != nil {
		return models.CloseHost{}, false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return models.CloseHost{}, false, fmt.Errorf("committing distance: %w", err)
	}

	return host, found, nil
}
