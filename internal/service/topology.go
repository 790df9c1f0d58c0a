package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/hostgraph/hostgraph/internal/domain"
	"github.com/hostgraph/hostgraph/internal/models"
)

// TopologyStore is the data-access interface TopologyService depends on.
type TopologyStore = domain.TopologyService

var _ domain.TopologyService = (*TopologyService)(nil)

// TopologyService validates topology documents before loading them.
type TopologyService struct {
	store TopologyStore
	stats StatsEnqueuer
	log   *logrus.Logger
}

// NewTopologyService creates a TopologyService.
func NewTopologyService(store TopologyStore, stats StatsEnqueuer, log *logrus.Logger) *TopologyService {
	return &TopologyService{store: store, stats: stats, log: log}
}

// Import validates topo as a whole and then upserts it in one transaction.
// Nothing is written when validation fails.
func (s *TopologyService) Import(
	ctx context.Context, topo *models.Topology, opts models.ImportOptions,
) (*models.ImportResult, error) {
	if topo == nil {
		return nil, models.ErrEmptyTopology
	}

	if err := topo.Validate(); err != nil {
		return nil, fmt.Errorf("validating topology: %w", err)
	}

	result, err := s.store.Import(ctx, topo, opts)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"nodes":         result.NodesUpserted,
		"relationships": result.RelationshipsUpserted,
		"replaced":      result.Replaced,
	}).Info("topology.import")
	refreshAsync(s.stats, "topology.import")

	return result, nil
}

// Export returns the whole stored graph as a topology document (pass-through).
func (s *TopologyService) Export(ctx context.Context) (*models.Topology, error) {
	return s.store.Export(ctx)
}
