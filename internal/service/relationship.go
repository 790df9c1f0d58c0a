package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/hostgraph/hostgraph/internal/domain"
	"github.com/hostgraph/hostgraph/internal/models"
)

// RelationshipStore is the data-access interface RelationshipService depends on.
type RelationshipStore = domain.RelationshipService

var _ domain.RelationshipService = (*RelationshipService)(nil)

// RelationshipService wraps RelationshipStore and keeps the graph size gauges current.
type RelationshipService struct {
	store RelationshipStore
	stats StatsEnqueuer
	log   *logrus.Logger
}

// NewRelationshipService creates a RelationshipService.
func NewRelationshipService(store RelationshipStore, stats StatsEnqueuer, log *logrus.Logger) *RelationshipService {
	return &RelationshipService{store: store, stats: stats, log: log}
}

// ListRelationships returns a filtered, paginated list of relationships (pass-through).
func (s *RelationshipService) ListRelationships(
	ctx context.Context, source, target, relType string, limit, offset int,
) ([]models.Relationship, bool, error) {
	return s.store.ListRelationships(ctx, source, target, relType, limit, offset)
}

// CreateRelationship creates a relationship between two existing nodes.
func (s *RelationshipService) CreateRelationship(
	ctx context.Context, req models.CreateRelationshipRequest,
) (*models.Relationship, error) {
	rel, err := s.store.CreateRelationship(ctx, req)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"source": rel.Source,
		"target": rel.Target,
		"type":   rel.Type,
	}).Debug("relationship.create")
	refreshAsync(s.stats, "relationship.create")

	return rel, nil
}

// DeleteRelationship removes the relationship identified by its endpoints and type.
func (s *RelationshipService) DeleteRelationship(ctx context.Context, source, target, relType string) error {
	if err := s.store.DeleteRelationship(ctx, source, target, relType); err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{
		"source": source,
		"target": target,
		"type":   relType,
	}).Debug("relationship.delete")
	refreshAsync(s.stats, "relationship.delete")

	return nil
}
