package traverse

import "github.com/hostgraph/hostgraph/internal/models"

// Path is an ordered sequence of nodes starting at the source node.
// Paths are never modified once built; Extend always copies.
type Path struct {
	nodes []*models.Node
}

// NewPath returns the zero-length path holding only start.
func NewPath(start *models.Node) Path {
	return Path{nodes: []*models.Node{start}}
}

// Length returns the number of edges in the path.
func (p Path) Length() int { return len(p.nodes) - 1 }

// Start returns the first node of the path.
func (p Path) Start() *models.Node { return p.nodes[0] }

// End returns the last node of the path.
func (p Path) End() *models.Node { return p.nodes[len(p.nodes)-1] }

// Nodes returns the nodes of the path. The caller must not modify the slice.
func (p Path) Nodes() []*models.Node { return p.nodes }

// Extend returns a new path with n appended.
func (p Path) Extend(n *models.Node) Path {
	nodes := make([]*models.Node, len(p.nodes), len(p.nodes)+1)
	copy(nodes, p.nodes)

	return Path{nodes: append(nodes, n)}
}

// IDs returns the node IDs along the path.
func (p Path) IDs() []string {
	ids := make([]string, len(p.nodes))
	for i, n := range p.nodes {
		ids[i] = n.ID
	}

	return ids
}
