package api_test

import (
	"context"

	"github.com/hostgraph/hostgraph/internal/models"
)

// mockNodeService implements api.NodeService for testing.
type mockNodeService struct {
	listFn   func(ctx context.Context, label string, limit, offset int) ([]models.Node, bool, error)
	getFn    func(ctx context.Context, nodeID string) (*models.Node, error)
	createFn func(ctx context.Context, req models.CreateNodeRequest) (*models.Node, error)
	deleteFn func(ctx context.Context, nodeID string) error
}

func (m *mockNodeService) ListNodes(ctx context.Context, label string, limit, offset int) ([]models.Node, bool, error) {
	return m.listFn(ctx, label, limit, offset)
}

func (m *mockNodeService) GetNode(ctx context.Context, nodeID string) (*models.Node, error) {
	return m.getFn(ctx, nodeID)
}

func (m *mockNodeService) CreateNode(ctx context.Context, req models.CreateNodeRequest) (*models.Node, error) {
	return m.createFn(ctx, req)
}

func (m *mockNodeService) DeleteNode(ctx context.Context, nodeID string) error {
	return m.deleteFn(ctx, nodeID)
}

// mockRelationshipService implements api.RelationshipService for testing.
type mockRelationshipService struct {
	listFn   func(ctx context.Context, source, target, relType string, limit, offset int) ([]models.Relationship, bool, error)
	createFn func(ctx context.Context, req models.CreateRelationshipRequest) (*models.Relationship, error)
	deleteFn func(ctx context.Context, source, target, relType string) error
}

func (m *mockRelationshipService) ListRelationships(ctx context.Context, source, target, relType string, limit, offset int) ([]models.Relationship, bool, error) {
	return m.listFn(ctx, source, target, relType, limit, offset)
}

func (m *mockRelationshipService) CreateRelationship(ctx context.Context, req models.CreateRelationshipRequest) (*models.Relationship, error) {
	return m.createFn(ctx, req)
}

func (m *mockRelationshipService) DeleteRelationship(ctx context.Context, source, target, relType string) error {
	return m.deleteFn(ctx, source, target, relType)
}

// mockTopologyService implements api.TopologyService for testing.
type mockTopologyService struct {
	importFn func(ctx context.Context, topo *models.Topology, opts models.ImportOptions) (*models.ImportResult, error)
	exportFn func(ctx context.Context) (*models.Topology, error)
}

func (m *mockTopologyService) Import(ctx context.Context, topo *models.Topology, opts models.ImportOptions) (*models.ImportResult, error) {
	return m.importFn(ctx, topo, opts)
}

func (m *mockTopologyService) Export(ctx context.Context) (*models.Topology, error) {
	return m.exportFn(ctx)
}

// mockGraphService implements api.GraphService for testing.
type mockGraphService struct {
	neighborsFn func(ctx context.Context, nodeID string, limit int) (*models.NeighborResult, error)
	statsFn     func(ctx context.Context) (*models.GraphStats, error)
}

func (m *mockGraphService) Neighbors(ctx context.Context, nodeID string, limit int) (*models.NeighborResult, error) {
	return m.neighborsFn(ctx, nodeID, limit)
}

func (m *mockGraphService) Stats(ctx context.Context) (*models.GraphStats, error) {
	return m.statsFn(ctx)
}

// mockHostService implements api.HostService for testing.
type mockHostService struct {
	closeFn    func(ctx context.Context, address string, depth int) (*models.CloseHostsResult, error)
	distanceFn func(ctx context.Context, from, to string, depth int) (*models.DistanceResult, error)
}

func (m *mockHostService) CloseHosts(ctx context.Context, address string, depth int) (*models.CloseHostsResult, error) {
	return m.closeFn(ctx, address, depth)
}

func (m *mockHostService) Distance(ctx context.Context, from, to string, depth int) (*models.DistanceResult, error) {
	return m.distanceFn(ctx, from, to, depth)
}

// mockPinger implements api.Pinger.
type mockPinger struct{ err error }

func (m mockPinger) HealthCheck(context.Context) error { return m.err }
