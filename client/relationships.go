package client

import (
	"context"
	"net/url"
	"strconv"
)

// RelationshipService handles relationship operations.
type RelationshipService struct {
	c *Client
}

type relationshipListResponse struct {
	Relationships []Relationship `json:"relationships"`
	HasMore       bool           `json:"has_more"`
}

// List returns relationships with optional filtering and pagination.
func (s *RelationshipService) List(ctx context.Context, opts *RelationshipListOptions) ([]Relationship, bool, error) {
	params := url.Values{}
	if opts != nil {
		if opts.Source != "" {
			params.Set("source", opts.Source)
		}
		if opts.Target != "" {
			params.Set("target", opts.Target)
		}
		if opts.Type != "" {
			params.Set("type", opts.Type)
		}
		if opts.Limit > 0 {
			params.Set("limit", strconv.Itoa(opts.Limit))
		}
		if opts.Offset > 0 {
			params.Set("offset", strconv.Itoa(opts.Offset))
		}
	}
	var resp relationshipListResponse
	if err := s.c.get(ctx, "/api/v1/relationships", params, &resp); err != nil {
		return nil, false, err
	}
	return resp.Relationships, resp.HasMore, nil
}

// Create creates a relationship between two existing nodes.
func (s *RelationshipService) Create(ctx context.Context, req *CreateRelationshipRequest) (*Relationship, error) {
	var rel Relationship
	if err := s.c.post(ctx, "/api/v1/relationships", nil, req, &rel); err != nil {
		return nil, err
	}
	return &rel, nil
}

// Delete removes the relationship identified by its endpoints and type.
func (s *RelationshipService) Delete(ctx context.Context, source, target, relType string) error {
	path := "/api/v1/relationships/" + url.PathEscape(source) + "/" + url.PathEscape(target) + "/" + url.PathEscape(relType)
	return s.c.del(ctx, path)
}
