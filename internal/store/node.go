package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/hostgraph/hostgraph/internal/models"
)

// NodeStore handles node CRUD operations.
type NodeStore struct {
	Base
}

// NewNodeStore creates a new NodeStore.
func NewNodeStore(base Base) *NodeStore {
	return &NodeStore{Base: base}
}

// CreateNode inserts a new node and returns the created record.
func (s *NodeStore) CreateNode(ctx context.Context, req models.CreateNodeRequest) (*models.Node, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	propsJSON, err := marshalProperties(req.Properties)
	if err != nil {
		return nil, fmt.Errorf("preparing node properties: %w", err)
	}

	query := `INSERT INTO hg_nodes (id, labels, properties)
		VALUES ($1, $2, $3)
		RETURNING ` + nodeColumns

	n, err := scanNode(s.Pool.QueryRow(ctx, query, req.ID, req.Labels, propsJSON).Scan)
	if err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return nil, models.ErrDuplicateKey
		}

		return nil, fmt.Errorf("scanning created node: %w", err)
	}

	return n, nil
}

// GetNode retrieves a single node by ID.
func (s *NodeStore) GetNode(ctx context.Context, nodeID string) (*models.Node, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + nodeColumns + ` FROM hg_nodes WHERE id = $1`

	n, err := scanNode(s.Pool.QueryRow(ctx, query, nodeID).Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNodeNotFound
		}

		return nil, fmt.Errorf("scanning node: %w", err)
	}

	return n, nil
}

// ListNodes returns nodes ordered by ID, optionally restricted to one label.
// The boolean result reports whether more rows follow the returned page.
func (s *NodeStore) ListNodes(ctx context.Context, label string, limit, offset int) ([]models.Node, bool, error) {
	limit, offset = clampPage(limit, offset)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + nodeColumns + ` FROM hg_nodes`
	args := make([]any, 0, 3)

	if label != "" {
		query += ` WHERE labels @> ARRAY[$1]::text[]`
		args = append(args, label)
	}

	query += fmt.Sprintf(" ORDER BY id LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit+1, offset)

	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, false, fmt.Errorf("querying nodes: %w", err)
	}
	defer rows.Close()

	nodes, err := collectNodes(rows)
	if err != nil {
		return nil, false, err
	}

	hasMore := len(nodes) > limit
	if hasMore {
		nodes = nodes[:limit]
	}

	return nodes, hasMore, nil
}

// DeleteNode removes a node by ID. Its relationships are removed by the
// foreign-key cascade in the same statement.
func (s *NodeStore) DeleteNode(ctx context.Context, nodeID string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tag, err := s.Pool.Exec(ctx, "DELETE FROM hg_nodes WHERE id = $1", nodeID)
	if err != nil {
		return fmt.Errorf("executing node delete: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return models.ErrNodeNotFound
	}

	return nil
}
