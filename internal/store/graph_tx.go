package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/hostgraph/hostgraph/internal/models"
	"github.com/hostgraph/hostgraph/internal/traverse"
)

// neighborSQL enumerates, for a whole BFS level, every relationship of the
// requested types that touches one of the anchor IDs, in either direction,
// joined to the node at the far end. A self-loop matches only the outgoing
// branch and is returned once.
const neighborSQL = `SELECT anchor, source, target, type, properties, created_at,
		n_id, n_labels, n_properties, n_created_at, n_updated_at
	FROM (
		SELECT r.source AS anchor, r.source, r.target, r.type, r.properties, r.created_at,
			n.id AS n_id, n.labels AS n_labels, n.properties AS n_properties,
			n.created_at AS n_created_at, n.updated_at AS n_updated_at
		FROM hg_relationships r JOIN hg_nodes n ON n.id = r.target
		WHERE r.source = ANY($1) AND r.type = ANY($2)
		UNION ALL
		SELECT r.target AS anchor, r.source, r.target, r.type, r.properties, r.created_at,
			n.id, n.labels, n.properties, n.created_at, n.updated_at
		FROM hg_relationships r JOIN hg_nodes n ON n.id = r.source
		WHERE r.target = ANY($1) AND r.type = ANY($2) AND r.source <> r.target
	) hop
	ORDER BY anchor, type, n_id`

// txGraph serves traversal reads from one transaction. Nodes are cached by
// ID so every path refers to a single instance of each node.
type txGraph struct {
	tx    pgx.Tx
	nodes map[string]*models.Node
}

var _ traverse.Graph = (*txGraph)(nil)

func newTxGraph(tx pgx.Tx) *txGraph {
	return &txGraph{tx: tx, nodes: make(map[string]*models.Node)}
}

func (g *txGraph) intern(n *models.Node) *models.Node {
	if cached, ok := g.nodes[n.ID]; ok {
		return cached
	}

	g.nodes[n.ID] = n

	return n
}

// FindNodes returns the nodes carrying label whose string property key equals value.
func (g *txGraph) FindNodes(ctx context.Context, label, key, value string) ([]*models.Node, error) {
	query := `SELECT ` + nodeColumns + ` FROM hg_nodes
		WHERE labels @> ARRAY[$1]::text[] AND properties @> jsonb_build_object($2::text, $3::text)
		ORDER BY id`

	rows, err := g.tx.Query(ctx, query, label, key, value)
	if err != nil {
		return nil, fmt.Errorf("querying nodes by %s: %w", key, err)
	}
	defer rows.Close()

	nodes, err := collectNodes(rows)
	if err != nil {
		return nil, err
	}

	out := make([]*models.Node, len(nodes))
	for i := range nodes {
		out[i] = g.intern(&nodes[i])
	}

	return out, nil
}

// Neighbors returns the relationships of relTypes touching each of ids.
func (g *txGraph) Neighbors(ctx context.Context, ids []string, relTypes []string) (map[string][]models.Neighbor, error) {
	rows, err := g.tx.Query(ctx, neighborSQL, ids, relTypes)
	if err != nil {
		return nil, fmt.Errorf("querying neighbors of %d nodes: %w", len(ids), err)
	}
	defer rows.Close()

	out := make(map[string][]models.Neighbor, len(ids))

	for rows.Next() {
		var (
			anchor    string
			r         models.Relationship
			n         models.Node
			relProps  []byte
			nodeProps []byte
		)

		if err := rows.Scan(
			&anchor, &r.Source, &r.Target, &r.Type, &relProps, &r.CreatedAt,
			&n.ID, &n.Labels, &nodeProps, &n.CreatedAt, &n.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning neighbor row: %w", err)
		}

		if err := json.Unmarshal(relProps, &r.Properties); err != nil {
			return nil, fmt.Errorf("unmarshalling relationship properties: %w", err)
		}

		node := g.nodes[n.ID]
		if node == nil {
			if err := json.Unmarshal(nodeProps, &n.Properties); err != nil {
				return nil, fmt.Errorf("unmarshalling node properties: %w", err)
			}

			node = g.intern(&n)
		}

		out[anchor] = append(out[anchor], models.Neighbor{Relationship: r, Node: node})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating neighbor rows: %w", err)
	}

	return out, nil
}
