package client

import (
	"context"
	"net/url"
	"strconv"
)

// DefaultDepth asks the server to apply its configured depth.
const DefaultDepth = -1

// HostService runs close-host queries.
type HostService struct {
	c *Client
}

func depthParams(depth int) url.Values {
	params := url.Values{}
	if depth >= 0 {
		params.Set("depth", strconv.Itoa(depth))
	}
	return params
}

// Close returns the hosts within depth hops of address. Pass DefaultDepth to
// use the server default.
func (s *HostService) Close(ctx context.Context, address string, depth int) (*CloseHostsResult, error) {
	var resp CloseHostsResult
	if err := s.c.get(ctx, "/api/v1/hosts/"+url.PathEscape(address)+"/close", depthParams(depth), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Distance reports how many hops separate two hosts, searching up to depth.
func (s *HostService) Distance(ctx context.Context, from, to string, depth int) (*DistanceResult, error) {
	path := "/api/v1/hosts/" + url.PathEscape(from) + "/distance/" + url.PathEscape(to)

	var resp DistanceResult
	if err := s.c.get(ctx, path, depthParams(depth), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
