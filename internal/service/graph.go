package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/hostgraph/hostgraph/internal/domain"
	"github.com/hostgraph/hostgraph/internal/models"
)

// GraphStore is the data-access interface GraphService depends on.
type GraphStore = domain.GraphService

var _ domain.GraphService = (*GraphService)(nil)

// GraphService wraps GraphStore with context-aware logging.
type GraphService struct {
	store GraphStore
	log   *logrus.Logger
}

// NewGraphService creates a GraphService.
func NewGraphService(store GraphStore, log *logrus.Logger) *GraphService {
	return &GraphService{store: store, log: log}
}

// Neighbors returns all nodes directly connected to nodeID.
func (s *GraphService) Neighbors(ctx context.Context, nodeID string, limit int) (*models.NeighborResult, error) {
	s.log.WithFields(logrus.Fields{
		"node_id": nodeID,
		"limit":   limit,
	}).Debug("graph.neighbors")

	return s.store.Neighbors(ctx, nodeID, limit)
}

// Stats returns node and relationship counts.
func (s *GraphService) Stats(ctx context.Context) (*models.GraphStats, error) {
	return s.store.Stats(ctx)
}
