package service

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/hostgraph/hostgraph/internal/models"
	"github.com/hostgraph/hostgraph/internal/traverse"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	return log
}

// mockNodeStore records calls and returns configured responses.
type mockNodeStore struct {
	mu    sync.Mutex
	calls []string

	listNodes  func(ctx context.Context, label string, limit, offset int) ([]models.Node, bool, error)
	getNode    func(ctx context.Context, nodeID string) (*models.Node, error)
	createNode func(ctx context.Context, req models.CreateNodeRequest) (*models.Node, error)
	deleteNode func(ctx context.Context, nodeID string) error
}

func (m *mockNodeStore) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, name)
}

func (m *mockNodeStore) ListNodes(ctx context.Context, label string, limit, offset int) ([]models.Node, bool, error) {
	m.record("ListNodes")
	return m.listNodes(ctx, label, limit, offset)
}

func (m *mockNodeStore) GetNode(ctx context.Context, nodeID string) (*models.Node, error) {
	m.record("GetNode")
	return m.getNode(ctx, nodeID)
}

func (m *mockNodeStore) CreateNode(ctx context.Context, req models.CreateNodeRequest) (*models.Node, error) {
	m.record("CreateNode")
	return m.createNode(ctx, req)
}

func (m *mockNodeStore) DeleteNode(ctx context.Context, nodeID string) error {
	m.record("DeleteNode")
	return m.deleteNode(ctx, nodeID)
}

// mockRelationshipStore returns configured responses.
type mockRelationshipStore struct {
	listRelationships  func(ctx context.Context, source, target, relType string, limit, offset int) ([]models.Relationship, bool, error)
	createRelationship func(ctx context.Context, req models.CreateRelationshipRequest) (*models.Relationship, error)
	deleteRelationship func(ctx context.Context, source, target, relType string) error
}

func (m *mockRelationshipStore) ListRelationships(ctx context.Context, source, target, relType string, limit, offset int) ([]models.Relationship, bool, error) {
	return m.listRelationships(ctx, source, target, relType, limit, offset)
}

func (m *mockRelationshipStore) CreateRelationship(ctx context.Context, req models.CreateRelationshipRequest) (*models.Relationship, error) {
	return m.createRelationship(ctx, req)
}

func (m *mockRelationshipStore) DeleteRelationship(ctx context.Context, source, target, relType string) error {
	return m.deleteRelationship(ctx, source, target, relType)
}

// mockTopologyStore returns configured responses.
type mockTopologyStore struct {
	importFn func(ctx context.Context, topo *models.Topology, opts models.ImportOptions) (*models.ImportResult, error)
	exportFn func(ctx context.Context) (*models.Topology, error)
}

func (m *mockTopologyStore) Import(ctx context.Context, topo *models.Topology, opts models.ImportOptions) (*models.ImportResult, error) {
	return m.importFn(ctx, topo, opts)
}

func (m *mockTopologyStore) Export(ctx context.Context) (*models.Topology, error) {
	return m.exportFn(ctx)
}

// mockHostStore returns configured responses.
type mockHostStore struct {
	closeHosts func(ctx context.Context, address string, maxDepth int, opts traverse.Options) ([]models.CloseHost, traverse.Stats, error)
	distance   func(ctx context.Context, from, to string, maxDepth int, opts traverse.Options) (models.CloseHost, bool, error)
}

func (m *mockHostStore) CloseHosts(ctx context.Context, address string, maxDepth int, opts traverse.Options) ([]models.CloseHost, traverse.Stats, error) {
	return m.closeHosts(ctx, address, maxDepth, opts)
}

func (m *mockHostStore) Distance(ctx context.Context, from, to string, maxDepth int, opts traverse.Options) (models.CloseHost, bool, error) {
	return m.distance(ctx, from, to, maxDepth, opts)
}

// mockStatsSource counts Stats calls.
type mockStatsSource struct {
	mu    sync.Mutex
	calls int
	stats *models.GraphStats
	err   error
}

func (m *mockStatsSource) Stats(_ context.Context) (*models.GraphStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	if m.err != nil {
		return nil, m.err
	}

	if m.stats == nil {
		return &models.GraphStats{}, nil
	}

	return m.stats, nil
}

func (m *mockStatsSource) getCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.calls
}

// mockEnqueuer records refresh requests.
type mockEnqueuer struct {
	mu      sync.Mutex
	reasons []string
}

func (m *mockEnqueuer) Enqueue(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reasons = append(m.reasons, reason)
}

func (m *mockEnqueuer) getReasons() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]string(nil), m.reasons...)
}
