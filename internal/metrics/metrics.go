// Package metrics defines Prometheus metrics for hostgraph.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hostgraph_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hostgraph_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hostgraph_errors_total",
			Help: "Total errors by type",
		},
		[]string{"type"},
	)

	TraversalDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hostgraph_traversal_duration_seconds",
			Help:    "Close-host traversal duration in seconds",
			Buckets: []float64{.001, .005, .01, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"operation", "outcome"},
	)

	TraversalPaths = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hostgraph_traversal_paths_explored",
			Help:    "Paths generated per traversal",
			Buckets: prometheus.ExponentialBuckets(10, 4, 9),
		},
	)

	CloseHostsReturned = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hostgraph_close_hosts_returned",
			Help:    "Close hosts returned per query",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		},
	)

	NodeCount = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "hostgraph_nodes_total",
			Help: "Total node count",
		},
	)

	RelationshipCount = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "hostgraph_relationships_total",
			Help: "Total relationship count",
		},
	)

	DBConnections = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "hostgraph_db_connections",
			Help: "Database pool connections by state",
		},
		[]string{"state"},
	)
)

func init() {
	prometheus.MustRegister(
		RequestDuration, RequestsTotal, ErrorsTotal,
		TraversalDuration, TraversalPaths, CloseHostsReturned,
		NodeCount, RelationshipCount, DBConnections,
	)
}
