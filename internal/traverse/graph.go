// Package traverse finds IP hosts that are structurally close to a source host.
//
// It walks HAS and PART_OF relationships in both directions, breadth first,
// keeping every distinct path up to a depth limit. Each accepted path is
// classified by the kind of nodes it passes through, and paths are then
// folded into one record per destination node.
package traverse

import (
	"context"

	"github.com/hostgraph/hostgraph/internal/models"
)

// Graph is the read-only view of the topology the traversal runs against.
// Implementations must return a consistent snapshot for the duration of one traversal.
type Graph interface {
	// FindNodes returns every node carrying label whose property key equals value.
	FindNodes(ctx context.Context, label, key, value string) ([]*models.Node, error)

	// Neighbors returns, for each requested node ID, the relationships of the
	// given types that touch it in either direction, paired with the node at
	// the other end. IDs with no matching relationships may be absent from the map.
	Neighbors(ctx context.Context, ids []string, relTypes []string) (map[string][]models.Neighbor, error)
}

// RelationshipTypes are the relationship types the close-hosts traversal follows.
var RelationshipTypes = []string{models.RelHas, models.RelPartOf}
