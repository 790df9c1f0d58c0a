package client

import (
	"context"
	"net/url"
	"strconv"
)

// NodeService handles node operations.
type NodeService struct {
	c *Client
}

type nodeListResponse struct {
	Nodes   []Node `json:"nodes"`
	HasMore bool   `json:"has_more"`
}

// List returns nodes with optional label filtering and pagination.
func (s *NodeService) List(ctx context.Context, opts *NodeListOptions) ([]Node, bool, error) {
	params := url.Values{}
	if opts != nil {
		if opts.Label != "" {
			params.Set("label", opts.Label)
		}
		if opts.Limit > 0 {
			params.Set("limit", strconv.Itoa(opts.Limit))
		}
		if opts.Offset > 0 {
			params.Set("offset", strconv.Itoa(opts.Offset))
		}
	}
	var resp nodeListResponse
	if err := s.c.get(ctx, "/api/v1/nodes", params, &resp); err != nil {
		return nil, false, err
	}
	return resp.Nodes, resp.HasMore, nil
}

// Get returns a single node by ID.
func (s *NodeService) Get(ctx context.Context, id string) (*Node, error) {
	var node Node
	if err := s.c.get(ctx, "/api/v1/nodes/"+url.PathEscape(id), nil, &node); err != nil {
		return nil, err
	}
	return &node, nil
}

// Create creates a new node.
func (s *NodeService) Create(ctx context.Context, req *CreateNodeRequest) (*Node, error) {
	var node Node
	if err := s.c.post(ctx, "/api/v1/nodes", nil, req, &node); err != nil {
		return nil, err
	}
	return &node, nil
}

// Delete removes a node and its relationships.
func (s *NodeService) Delete(ctx context.Context, id string) error {
	return s.c.del(ctx, "/api/v1/nodes/"+url.PathEscape(id))
}

// Neighbors returns the nodes directly connected to id.
func (s *NodeService) Neighbors(ctx context.Context, id string, limit int) (*NeighborResult, error) {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	var resp NeighborResult
	if err := s.c.get(ctx, "/api/v1/nodes/"+url.PathEscape(id)+"/neighbors", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
