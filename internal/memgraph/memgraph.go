// Package memgraph holds a topology in memory and serves it to the traversal.
package memgraph

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/hostgraph/hostgraph/internal/models"
	"github.com/hostgraph/hostgraph/internal/traverse"
)

var _ traverse.Graph = (*Graph)(nil)

type relKey struct {
	source, target, typ string
}

// Graph is an in-memory labelled property graph. It is safe for concurrent use.
type Graph struct {
	mu    sync.RWMutex
	nodes map[string]*models.Node
	rels  []models.Relationship
	index map[relKey]int
	adj   map[string][]int
}

// New returns an empty Graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]*models.Node),
		index: make(map[relKey]int),
		adj:   make(map[string][]int),
	}
}

// FromTopology validates t and loads it into a new Graph.
func FromTopology(t *models.Topology) (*Graph, error) {
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("validating topology: %w", err)
	}

	g := New()

	for i := range t.Nodes {
		if _, err := g.AddNode(t.Nodes[i]); err != nil {
			return nil, err
		}
	}

	for i := range t.Relationships {
		if _, err := g.AddRelationship(t.Relationships[i]); err != nil {
			return nil, err
		}
	}

	return g, nil
}

// AddNode inserts a node or replaces an existing one with the same ID. Nodes
// already handed out are never modified.
func (g *Graph) AddNode(req models.CreateNodeRequest) (*models.Node, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now().UTC()

	created := now
	if prev, ok := g.nodes[req.ID]; ok {
		created = prev.CreatedAt
	}

	// Replacement swaps in a new Node; paths from running traversals keep
	// reading the old one.
	n := &models.Node{
		ID:         req.ID,
		Labels:     slices.Clone(req.Labels),
		Properties: maps.Clone(req.Properties),
		CreatedAt:  created,
		UpdatedAt:  now,
	}
	g.nodes[n.ID] = n

	return n, nil
}

// AddRelationship inserts a relationship between two existing nodes, or
// replaces the properties of an identical one.
func (g *Graph) AddRelationship(req models.CreateRelationshipRequest) (*models.Relationship, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.nodes[req.Source]; !ok {
		return nil, fmt.Errorf("source %s: %w", req.Source, models.ErrNodeNotFound)
	}

	if _, ok := g.nodes[req.Target]; !ok {
		return nil, fmt.Errorf("target %s: %w", req.Target, models.ErrNodeNotFound)
	}

	key := relKey{req.Source, req.Target, req.Type}
	if i, ok := g.index[key]; ok {
		g.rels[i].Properties = req.Properties
		r := g.rels[i]

		return &r, nil
	}

	g.rels = append(g.rels, models.Relationship{
		Source:     req.Source,
		Target:     req.Target,
		Type:       req.Type,
		Properties: req.Properties,
		CreatedAt:  time.Now().UTC(),
	})
	i := len(g.rels) - 1
	g.index[key] = i

	g.adj[req.Source] = append(g.adj[req.Source], i)
	if req.Target != req.Source {
		g.adj[req.Target] = append(g.adj[req.Target], i)
	}

	r := g.rels[i]

	return &r, nil
}

// Node returns the node with the given ID.
func (g *Graph) Node(id string) (*models.Node, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	n, ok := g.nodes[id]
	if !ok {
		return nil, models.ErrNodeNotFound
	}

	return n, nil
}

// Stats returns node and relationship counts.
func (g *Graph) Stats() models.GraphStats {
	g.mu.RLock()
	defer g.mu.RUnlock()

	labels := make(map[string]int)
	for _, n := range g.nodes {
		for _, l := range n.Labels {
			labels[l]++
		}
	}

	return models.GraphStats{Nodes: len(g.nodes), Relationships: len(g.rels), Labels: labels}
}

// FindNodes returns the nodes carrying label whose string property key equals
// value. Results are ordered by ID.
func (g *Graph) FindNodes(_ context.Context, label, key, value string) ([]*models.Node, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var out []*models.Node

	for _, n := range g.nodes {
		if !n.HasLabel(label) {
			continue
		}

		if v, ok := n.Property(key).(string); ok && v == value {
			out = append(out, n)
		}
	}

	slices.SortFunc(out, func(a, b *models.Node) int { return strings.Compare(a.ID, b.ID) })

	return out, nil
}

// Neighbors returns the relationships of relTypes touching each of ids, in
// insertion order, paired with the node at the other end. A self-loop is
// returned once.
func (g *Graph) Neighbors(ctx context.Context, ids []string, relTypes []string) (map[string][]models.Neighbor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make(map[string][]models.Neighbor, len(ids))

	for _, id := range ids {
		for _, i := range g.adj[id] {
			r := g.rels[i]
			if !slices.Contains(relTypes, r.Type) {
				continue
			}

			other := r.Target
			if other == id {
				other = r.Source
			}

			out[id] = append(out[id], models.Neighbor{Relationship: r, Node: g.nodes[other]})
		}
	}

	return out, nil
}

// CloseHosts runs the close-hosts query against g. Writes made while the
// query runs may be observed by later levels.
func (g *Graph) CloseHosts(ctx context.Context, address string, maxDepth int, opts traverse.Options) ([]models.CloseHost, traverse.Stats, error) {
	return traverse.FindCloseHosts(ctx, g, address, maxDepth, opts)
}

// Distance runs the host-to-host distance query against g.
func (g *Graph) Distance(ctx context.Context, from, to string, maxDepth int, opts traverse.Options) (models.CloseHost, bool, error) {
	return traverse.Distance(ctx, g, from, to, maxDepth, opts)
}
