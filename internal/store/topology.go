package store

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/hostgraph/hostgraph/internal/models"
)

// maxBulkBatchSize limits the number of rows per INSERT statement to avoid
// exceeding PostgreSQL's parameter limit (65535 params).
const maxBulkBatchSize = 500

// TopologyStore loads and dumps whole topology documents.
type TopologyStore struct {
	Base
}

// NewTopologyStore creates a TopologyStore with the given shared base.
func NewTopologyStore(base Base) *TopologyStore {
	return &TopologyStore{Base: base}
}

// Import upserts every node and relationship of topo in a single transaction
// using multi-row INSERT ... ON CONFLICT. With opts.Replace the existing
// graph is deleted first. The document must already be validated.
func (s *TopologyStore) Import(ctx context.Context, topo *models.Topology, opts models.ImportOptions) (*models.ImportResult, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("importing topology: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	if opts.Replace {
		// Relationships go with their nodes through the cascade.
		if _, err := tx.Exec(ctx, "DELETE FROM hg_nodes"); err != nil {
			return nil, fmt.Errorf("clearing graph: %w", err)
		}
	}

	nodes, err := upsertNodes(ctx, tx, topo.Nodes)
	if err != nil {
		return nil, err
	}

	rels, err := upsertRelationships(ctx, tx, topo.Relationships)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing topology import: %w", err)
	}

	return &models.ImportResult{NodesUpserted: nodes, RelationshipsUpserted: rels, Replaced: opts.Replace}, nil
}

func upsertNodes(ctx context.Context, tx pgx.Tx, nodes []models.CreateNodeRequest) (int, error) {
	total := 0

	for batch := range slices.Chunk(nodes, maxBulkBatchSize) {
		valueParts := make([]string, 0, len(batch))
		args := make([]any, 0, len(batch)*3)

		for j, n := range batch {
			propsJSON, err := marshalProperties(n.Properties)
			if err != nil {
				return 0, fmt.Errorf("preparing node %s properties: %w", n.ID, err)
			}

			base := j*3 + 1
			valueParts = append(valueParts, fmt.Sprintf("($%d, $%d, $%d)", base, base+1, base+2))
			args = append(args, n.ID, n.Labels, propsJSON)
		}

		sql := `INSERT INTO hg_nodes (id, labels, properties)
			VALUES ` + strings.Join(valueParts, ", ") + `
			ON CONFLICT (id) DO UPDATE
			SET labels = EXCLUDED.labels,
				properties = EXCLUDED.properties,
				updated_at = NOW()`

		tag, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			return 0, fmt.Errorf("bulk upserting nodes batch: %w", err)
		}

		total += int(tag.RowsAffected())
	}

	return total, nil
}

func upsertRelationships(ctx context.Context, tx pgx.Tx, rels []models.CreateRelationshipRequest) (int, error) {
	total := 0

	for batch := range slices.Chunk(rels, maxBulkBatchSize) {
		valueParts := make([]string, 0, len(batch))
		args := make([]any, 0, len(batch)*4)

		for j, r := range batch {
			propsJSON, err := marshalProperties(r.Properties)
			if err != nil {
				return 0, fmt.Errorf("preparing relationship %s->%s properties: %w", r.Source, r.Target, err)
			}

			base := j*4 + 1
			valueParts = append(valueParts, fmt.Sprintf("($%d, $%d, $%d, $%d)", base, base+1, base+2, base+3))
			args = append(args, r.Source, r.Target, r.Type, propsJSON)
		}

		sql := `INSERT INTO hg_relationships (source, target, type, properties)
			VALUES ` + strings.Join(valueParts, ", ") + `
			ON CONFLICT (source, target, type) DO UPDATE
			SET properties = EXCLUDED.properties`

		tag, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			if pgErrorCode(err) == pgForeignKeyViolation {
				return 0, fmt.Errorf("bulk upserting relationships: %w", models.ErrNodeNotFound)
			}

			return 0, fmt.Errorf("bulk upserting relationships batch: %w", err)
		}

		total += int(tag.RowsAffected())
	}

	return total, nil
}

// Export reads the whole graph as a topology document, nodes ordered by ID
// and relationships by source, target and type.
func (s *TopologyStore) Export(ctx context.Context) (*models.Topology, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginSnapshotTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("exporting topology: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	nodeRows, err := tx.Query(ctx, `SELECT `+nodeColumns+` FROM hg_nodes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying nodes for export: %w", err)
	}

	nodes, err := collectNodes(nodeRows)
	nodeRows.Close()
	if err != nil {
		return nil, err
	}

	relRows, err := tx.Query(ctx, `SELECT `+relationshipColumns+` FROM hg_relationships ORDER BY source, target, type`)
	if err != nil {
		return nil, fmt.Errorf("querying relationships for export: %w", err)
	}

	rels, err := collectRelationships(relRows)
	relRows.Close()
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing topology export: %w", err)
	}

	topo := &models.Topology{
		Nodes:         make([]models.CreateNodeRequest, len(nodes)),
		Relationships: make([]models.CreateRelationshipRequest, len(rels)),
	}

	for i, n := range nodes {
		topo.Nodes[i] = models.CreateNodeRequest{ID: n.ID, Labels: n.Labels, Properties: n.Properties}
	}

	for i, r := range rels {
		topo.Relationships[i] = models.CreateRelationshipRequest{Source: r.Source, Target: r.Target, Type: r.Type, Properties: r.Properties}
	}

	return topo, nil
}
