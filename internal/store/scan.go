package store

import (
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/hostgraph/hostgraph/internal/models"
)

// nodeColumns lists the columns selected for node queries.
const nodeColumns = `id, labels, properties, created_at, updated_at`

// relationshipColumns lists the columns selected for relationship queries.
const relationshipColumns = `source, target, type, properties, created_at`

// scanNode scans a single row into a models.Node.
func scanNode(scan func(dest ...any) error) (*models.Node, error) {
	var n models.Node
	var props []byte

	if err := scan(&n.ID, &n.Labels, &props, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(props, &n.Properties); err != nil {
		return nil, fmt.Errorf("unmarshalling node properties: %w", err)
	}

	return &n, nil
}

// scanRelationship scans a single row into a models.Relationship.
func scanRelationship(scan func(dest ...any) error) (*models.Relationship, error) {
	var r models.Relationship
	var props []byte

	if err := scan(&r.Source, &r.Target, &r.Type, &props, &r.CreatedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(props, &r.Properties); err != nil {
		return nil, fmt.Errorf("unmarshalling relationship properties: %w", err)
	}

	return &r, nil
}

// collectNodes scans all rows into a node slice.
func collectNodes(rows pgx.Rows) ([]models.Node, error) {
	nodes := make([]models.Node, 0, 16)

	for rows.Next() {
		n, err := scanNode(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning node row: %w", err)
		}

		nodes = append(nodes, *n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating node rows: %w", err)
	}

	return nodes, nil
}

// collectRelationships scans all rows into a relationship slice.
func collectRelationships(rows pgx.Rows) ([]models.Relationship, error) {
	rels := make([]models.Relationship, 0, 16)

	for rows.Next() {
		r, err := scanRelationship(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning relationship row: %w", err)
		}

		rels = append(rels, *r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating relationship rows: %w", err)
	}

	return rels, nil
}

// marshalProperties encodes props for a JSONB column, mapping nil to {}.
func marshalProperties(props map[string]any) ([]byte, error) {
	if props == nil {
		props = map[string]any{}
	}

	data, err := json.Marshal(props)
	if err != nil {
		return nil, fmt.Errorf("marshalling properties: %w", err)
	}

	return data, nil
}
