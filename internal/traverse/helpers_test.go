package traverse_test

import (
	"context"
	"testing"

	"github.com/hostgraph/hostgraph/internal/memgraph"
	"github.com/hostgraph/hostgraph/internal/models"
	"github.com/hostgraph/hostgraph/internal/traverse"
)

func ip(id, addr string) models.CreateNodeRequest {
	return models.CreateNodeRequest{
		ID:         id,
		Labels:     []string{models.LabelIP},
		Properties: map[string]any{models.PropAddress: addr},
	}
}

func node(id string, labels ...string) models.CreateNodeRequest {
	return models.CreateNodeRequest{ID: id, Labels: labels}
}

func has(source, target string) models.CreateRelationshipRequest {
	return models.CreateRelationshipRequest{Source: source, Target: target, Type: models.RelHas}
}

func partOf(source, target string) models.CreateRelationshipRequest {
	return models.CreateRelationshipRequest{Source: source, Target: target, Type: models.RelPartOf}
}

func newGraph(t *testing.T, nodes []models.CreateNodeRequest, rels ...models.CreateRelationshipRequest) *memgraph.Graph {
	t.Helper()

	g, err := memgraph.FromTopology(&models.Topology{Nodes: nodes, Relationships: rels})
	if err != nil {
		t.Fatalf("building graph: %v", err)
	}

	return g
}

func mustNode(t *testing.T, g *memgraph.Graph, id string) *models.Node {
	t.Helper()

	n, err := g.Node(id)
	if err != nil {
		t.Fatalf("node %s: %v", id, err)
	}

	return n
}

func closeHosts(t *testing.T, g traverse.Graph, source string, maxDepth int) []models.CloseHost {
	t.Helper()

	hosts, _, err := traverse.FindCloseHosts(context.Background(), g, source, maxDepth, traverse.Options{})
	if err != nil {
		t.Fatalf("FindCloseHosts(%s, %d): %v", source, maxDepth, err)
	}

	return hosts
}

// faultyGraph fails the n-th Neighbors call.
type faultyGraph struct {
	traverse.Graph
	failAt int
	calls  int
	err    error
}

func (f *faultyGraph) Neighbors(ctx context.Context, ids []string, relTypes []string) (map[string][]models.Neighbor, error) {
	f.calls++
	if f.calls == f.failAt {
		return nil, f.err
	}

	return f.Graph.Neighbors(ctx, ids, relTypes)
}

// countingGraph records how many Neighbors calls were made.
type countingGraph struct {
	traverse.Graph
	calls int
}

func (c *countingGraph) Neighbors(ctx context.Context, ids []string, relTypes []string) (map[string][]models.Neighbor, error) {
	c.calls++
	return c.Graph.Neighbors(ctx, ids, relTypes)
}
