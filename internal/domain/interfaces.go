// Package domain defines the canonical service interfaces shared by the API
// layer and the service implementations. Consumers should depend on these
// interfaces rather than re-declaring equivalent ones.
package domain

import (
	"context"

	"github.com/hostgraph/hostgraph/internal/models"
)

// NodeService defines all node operations.
type NodeService interface {
	ListNodes(ctx context.Context, label string, limit, offset int) ([]models.Node, bool, error)
	GetNode(ctx context.Context, nodeID string) (*models.Node, error)
	CreateNode(ctx context.Context, req models.CreateNodeRequest) (*models.Node, error)
	DeleteNode(ctx context.Context, nodeID string) error
}

// RelationshipService defines all relationship operations.
type RelationshipService interface {
	ListRelationships(ctx context.Context, source, target, relType string, limit, offset int) ([]models.Relationship, bool, error)
	CreateRelationship(ctx context.Context, req models.CreateRelationshipRequest) (*models.Relationship, error)
	DeleteRelationship(ctx context.Context, source, target, relType string) error
}

// TopologyService defines whole-graph import and export.
type TopologyService interface {
	Import(ctx context.Context, topo *models.Topology, opts models.ImportOptions) (*models.ImportResult, error)
	Export(ctx context.Context) (*models.Topology, error)
}

// GraphService defines neighborhood and statistics queries.
type GraphService interface {
	Neighbors(ctx context.Context, nodeID string, limit int) (*models.NeighborResult, error)
	Stats(ctx context.Context) (*models.GraphStats, error)
}

// HostService defines the close-host queries. A negative depth selects the
// configured default.
type HostService interface {
	CloseHosts(ctx context.Context, address string, depth int) (*models.CloseHostsResult, error)
	Distance(ctx context.Context, from, to string, depth int) (*models.DistanceResult, error)
}
