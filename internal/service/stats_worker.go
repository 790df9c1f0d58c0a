package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hostgraph/hostgraph/internal/metrics"
	"github.com/hostgraph/hostgraph/internal/models"
)

const statsRefreshTimeout = 10 * time.Second

// StatsSource reports the current size of the stored graph.
type StatsSource interface {
	Stats(ctx context.Context) (*models.GraphStats, error)
}

// StatsEnqueuer requests an asynchronous refresh of the graph size gauges.
type StatsEnqueuer interface {
	Enqueue(reason string)
}

// StatsWorker refreshes the node and relationship gauges after writes via a
// single worker goroutine. Requests that arrive while a refresh is pending are
// coalesced into it.
type StatsWorker struct {
	source StatsSource
	log    *logrus.Logger
	jobs   chan string
}

// NewStatsWorker creates a StatsWorker with the given queue capacity.
func NewStatsWorker(source StatsSource, log *logrus.Logger, queueSize int) *StatsWorker {
	if queueSize <= 0 {
		queueSize = 64
	}

	return &StatsWorker{
		source: source,
		log:    log,
		jobs:   make(chan string, queueSize),
	}
}

// Enqueue requests a refresh. Non-blocking; a full queue already holds a
// pending refresh, so the request is dropped.
func (w *StatsWorker) Enqueue(reason string) {
	select {
	case w.jobs <- reason:
	default:
		w.log.WithField("reason", reason).Debug("stats queue full, refresh already pending")
	}
}

// Run refreshes once at startup, then on every request until the context is
// cancelled. Pending requests are folded into one final refresh on shutdown.
func (w *StatsWorker) Run(ctx context.Context) {
	w.refresh("startup")

	for {
		select {
		case <-ctx.Done():
			if w.drain() > 0 {
				w.refresh("shutdown")
			}

			return
		case reason := <-w.jobs:
			w.drain()
			w.refresh(reason)
		}
	}
}

// drain empties the queue and returns how many requests it discarded.
func (w *StatsWorker) drain() int {
	n := 0

	for {
		select {
		case <-w.jobs:
			n++
		default:
			return n
		}
	}
}

func (w *StatsWorker) refresh(reason string) {
	ctx, cancel := context.WithTimeout(context.Background(), statsRefreshTimeout)
	defer cancel()

	stats, err := w.source.Stats(ctx)
	if err != nil {
		w.log.WithError(err).WithField("reason", reason).Warn("stats refresh failed")
		return
	}

	metrics.NodeCount.Set(float64(stats.Nodes))
	metrics.RelationshipCount.Set(float64(stats.Relationships))
}

// refreshAsync is a nil-safe helper for services that may run without a worker.
func refreshAsync(w StatsEnqueuer, reason string) {
	if w == nil {
		return
	}

	w.Enqueue(reason)
}
