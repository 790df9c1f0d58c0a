package traverse

import (
	"context"
	"fmt"

	"github.com/hostgraph/hostgraph/internal/models"
)

// ResolveHost returns the single IP node whose address is address.
func ResolveHost(ctx context.Context, g Graph, address string) (*models.Node, error) {
	nodes, err := g.FindNodes(ctx, models.LabelIP, models.PropAddress, address)
	if err != nil {
		return nil, fmt.Errorf("resolving host %s: %w", address, err)
	}

	switch len(nodes) {
	case 0:
		return nil, models.ErrSourceNotFound
	case 1:
		return nodes[0], nil
	default:
		return nil, models.ErrAmbiguousSource
	}
}

// FindCloseHosts returns the IP nodes reachable from the host at
// sourceAddress within maxDepth hops, with their shortest distance and the
// kinds of paths that connect them. A maxDepth below 1 yields no hosts.
func FindCloseHosts(ctx context.Context, g Graph, sourceAddress string, maxDepth int, opts Options) ([]models.CloseHost, Stats, error) {
	source, err := ResolveHost(ctx, g, sourceAddress)
	if err != nil {
		return nil, Stats{}, err
	}

	return closeHosts(ctx, g, source, maxDepth, opts)
}

func closeHosts(ctx context.Context, g Graph, source *models.Node, maxDepth int, opts Options) ([]models.CloseHost, Stats, error) {
	if maxDepth < 1 {
		return []models.CloseHost{}, Stats{}, nil
	}

	paths, stats, err := NewEngine(g, opts).Traverse(ctx, source, maxDepth, CloseHostEvaluator(source.Address(), maxDepth))
	if err != nil {
		return nil, stats, err
	}

	hosts, err := Aggregate(ctx, paths, opts.workers())
	if err != nil {
		return nil, stats, &models.TraversalError{Depth: stats.Levels, Err: err}
	}

	return hosts, stats, nil
}

// Distance reports how far the host at toAddress is from the host at
// fromAddress, searching up to maxDepth hops. found is false when the target
// exists but is not reachable within maxDepth. A host is at distance 0 from
// itself.
func Distance(ctx context.Context, g Graph, fromAddress, toAddress string, maxDepth int, opts Options) (host models.CloseHost, found bool, err error) {
	source, err := ResolveHost(ctx, g, fromAddress)
	if err != nil {
		return models.CloseHost{}, false, err
	}

	targets, err := g.FindNodes(ctx, models.LabelIP, models.PropAddress, toAddress)
	if err != nil {
		return models.CloseHost{}, false, fmt.Errorf("resolving host %s: %w", toAddress, err)
	}

	if len(targets) == 0 {
		return models.CloseHost{}, false, models.ErrTargetNotFound
	}

	if toAddress == source.Address() {
		return models.CloseHost{ID: source.ID, Address: toAddress, PathTypes: []models.PathType{}}, true, nil
	}

	hosts, _, err := closeHosts(ctx, g, source, maxDepth, opts)
	if err != nil {
		return models.CloseHost{}, false, err
	}

	// Hosts are sorted by distance, so the first match is the closest.
	for _, h := range hosts {
		if h.Address == toAddress {
			return h, true, nil
		}
	}

	return models.CloseHost{}, false, nil
}
