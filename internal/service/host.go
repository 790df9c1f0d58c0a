package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hostgraph/hostgraph/internal/domain"
	"github.com/hostgraph/hostgraph/internal/metrics"
	"github.com/hostgraph/hostgraph/internal/models"
	"github.com/hostgraph/hostgraph/internal/traverse"
)

// HostStore runs close-host queries against a consistent view of the graph.
type HostStore interface {
	CloseHosts(ctx context.Context, address string, maxDepth int, opts traverse.Options) ([]models.CloseHost, traverse.Stats, error)
	Distance(ctx context.Context, from, to string, maxDepth int, opts traverse.Options) (models.CloseHost, bool, error)
}

var _ domain.HostService = (*HostService)(nil)

// HostLimits bounds the cost of a single close-host query.
type HostLimits struct {
	DefaultDepth int
	MaxDepth     int
	PathBudget   int
	Workers      int
	Timeout      time.Duration
}

// HostService applies depth limits, a query deadline and metrics around HostStore.
type HostService struct {
	store  HostStore
	limits HostLimits
	log    *logrus.Logger
}

// NewHostService creates a HostService.
func NewHostService(store HostStore, limits HostLimits, log *logrus.Logger) *HostService {
	return &HostService{store: store, limits: limits, log: log}
}

// resolveDepth maps a requested depth onto the configured limits. A negative
// depth selects the default.
func (s *HostService) resolveDepth(depth int) (int, error) {
	if depth < 0 {
		return s.limits.DefaultDepth, nil
	}

	if s.limits.MaxDepth > 0 && depth > s.limits.MaxDepth {
		return 0, fmt.Errorf("%w (%d > %d)", models.ErrDepthOutOfRange, depth, s.limits.MaxDepth)
	}

	return depth, nil
}

func (s *HostService) options() traverse.Options {
	return traverse.Options{MaxPaths: s.limits.PathBudget, Workers: s.limits.Workers}
}

func (s *HostService) withDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.limits.Timeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, s.limits.Timeout)
}

// CloseHosts returns the hosts near address, at most depth hops away.
func (s *HostService) CloseHosts(ctx context.Context, address string, depth int) (*models.CloseHostsResult, error) {
	maxDepth, err := s.resolveDepth(depth)
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.withDeadline(ctx)
	defer cancel()

	start := time.Now()
	hosts, stats, err := s.store.CloseHosts(ctx, address, maxDepth, s.options())
	elapsed := time.Since(start)

	metrics.TraversalDuration.WithLabelValues("close_hosts", traversalOutcome(err)).Observe(elapsed.Seconds())
	metrics.TraversalPaths.Observe(float64(stats.Explored))

	fields := logrus.Fields{
		"address":   address,
		"max_depth": maxDepth,
		"explored":  stats.Explored,
		"levels":    stats.Levels,
		"duration":  elapsed.String(),
	}

	if err != nil {
		s.log.WithFields(fields).WithError(err).Debug("hosts.close failed")
		return nil, err
	}

	metrics.CloseHostsReturned.Observe(float64(len(hosts)))

	fields["hosts"] = len(hosts)
	s.log.WithFields(fields).Debug("hosts.close")

	return &models.CloseHostsResult{Source: address, MaxDepth: maxDepth, Hosts: hosts}, nil
}

// Distance reports how many hops separate the hosts at from and to.
func (s *HostService) Distance(ctx context.Context, from, to string, depth int) (*models.DistanceResult, error) {
	maxDepth, err := s.resolveDepth(depth)
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.withDeadline(ctx)
	defer cancel()

	start := time.Now()
	host, found, err := s.store.Distance(ctx, from, to, maxDepth, s.options())

	metrics.TraversalDuration.WithLabelValues("distance", traversalOutcome(err)).Observe(time.Since(start).Seconds())

	s.log.WithFields(logrus.Fields{
		"from":      from,
		"to":        to,
		"max_depth": maxDepth,
		"found":     found,
	}).Debug("hosts.distance")

	if err != nil {
		return nil, err
	}

	result := &models.DistanceResult{Source: from, Target: to, MaxDepth: maxDepth, Found: found}
	if found {
		result.Distance = host.Distance
		result.PathTypes = host.PathTypes
	}

	return result, nil
}

// traversalOutcome labels a query result for the duration histogram.
func traversalOutcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, models.ErrSourceNotFound),
		errors.Is(err, models.ErrAmbiguousSource),
		errors.Is(err, models.ErrTargetNotFound):
		return "invalid_input"
	case errors.Is(err, models.ErrPathBudgetExceeded):
		return "budget_exceeded"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "error"
	}
}
