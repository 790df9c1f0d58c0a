package client

import (
	"context"
	"net/url"
)

// TopologyService handles whole-graph import and export.
type TopologyService struct {
	c *Client
}

// Import upserts a topology document. With replace set, the stored graph is
// cleared first.
func (s *TopologyService) Import(ctx context.Context, topo *Topology, replace bool) (*ImportResult, error) {
	params := url.Values{}
	if replace {
		params.Set("replace", "true")
	}
	var resp ImportResult
	if err := s.c.post(ctx, "/api/v1/topology", params, topo, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Export returns the stored graph as a topology document.
func (s *TopologyService) Export(ctx context.Context) (*Topology, error) {
	var resp Topology
	if err := s.c.get(ctx, "/api/v1/topology", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
