package api

import "github.com/hostgraph/hostgraph/internal/domain"

// Service interfaces consumed by the handlers. They alias the canonical
// definitions in domain so the api and service packages agree on one set.
type (
	NodeService         = domain.NodeService
	RelationshipService = domain.RelationshipService
	TopologyService     = domain.TopologyService
	GraphService        = domain.GraphService
	HostService         = domain.HostService
)
