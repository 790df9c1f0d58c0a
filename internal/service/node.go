// Package service provides business logic between API handlers and data stores.
package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/hostgraph/hostgraph/internal/domain"
	"github.com/hostgraph/hostgraph/internal/models"
)

// NodeStore is the data-access interface NodeService depends on.
// It reuses domain.NodeService since the method sets are identical.
type NodeStore = domain.NodeService

// Compile-time check: *NodeService must satisfy domain.NodeService.
var _ domain.NodeService = (*NodeService)(nil)

// NodeService wraps NodeStore and keeps the graph size gauges current.
type NodeService struct {
	store NodeStore
	stats StatsEnqueuer
	log   *logrus.Logger
}

// NewNodeService creates a NodeService.
func NewNodeService(store NodeStore, stats StatsEnqueuer, log *logrus.Logger) *NodeService {
	return &NodeService{store: store, stats: stats, log: log}
}

// ListNodes returns a paginated list of nodes (pass-through).
func (s *NodeService) ListNodes(ctx context.Context, label string, limit, offset int) ([]models.Node, bool, error) {
	return s.store.ListNodes(ctx, label, limit, offset)
}

// GetNode returns a single node by ID (pass-through).
func (s *NodeService) GetNode(ctx context.Context, nodeID string) (*models.Node, error) {
	return s.store.GetNode(ctx, nodeID)
}

// CreateNode creates a node.
func (s *NodeService) CreateNode(ctx context.Context, req models.CreateNodeRequest) (*models.Node, error) {
	node, err := s.store.CreateNode(ctx, req)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"node_id": node.ID, "labels": node.Labels}).Debug("node.create")
	refreshAsync(s.stats, "node.create")

	return node, nil
}

// DeleteNode removes a node and, by cascade, its relationships.
func (s *NodeService) DeleteNode(ctx context.Context, nodeID string) error {
	if err := s.store.DeleteNode(ctx, nodeID); err != nil {
		return err
	}

	s.log.WithField("node_id", nodeID).Debug("node.delete")
	refreshAsync(s.stats, "node.delete")

	return nil
}
