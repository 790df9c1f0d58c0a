package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	gql "github.com/hostgraph/hostgraph/internal/graphql"
	"github.com/hostgraph/hostgraph/internal/middleware"
)

// RouterDeps holds all dependencies needed by the router. A nil Keys
// disables authentication.
type RouterDeps struct {
	Log           *logrus.Logger
	DB            Pinger
	Schema        SchemaCheck
	Nodes         NodeService
	Relationships RelationshipService
	Topology      TopologyService
	Graph         GraphService
	Hosts         HostService
	Keys          middleware.KeyAuthenticator
	CORSOrigins   []string
	Version       string
	SchemaVersion int
}

// Router-level limits.
const (
	maxBodySize = 32 << 20 // topology imports can be large
	rateLimit   = 100      // requests per second per IP
	rateBurst   = 200      // token bucket burst size
)

// setupMiddleware configures all middleware on the Gin engine.
func setupMiddleware(ctx context.Context, r *gin.Engine, deps *RouterDeps) {
	r.SetTrustedProxies(nil) //nolint:errcheck // nil always succeeds.
	r.Use(middleware.RequestID(deps.Log))
	r.Use(ginLogger(deps.Log))
	r.Use(gin.Recovery())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.MaxBodySize(maxBodySize))

	if len(deps.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     deps.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Content-Type", "Authorization"},
			ExposeHeaders:    []string{middleware.RequestIDHeader},
			MaxAge:           1 * time.Hour,
			AllowCredentials: false,
		}))
	}

	r.Use(middleware.NewRateLimiter(ctx, rateLimit, rateBurst).Handler())
	r.Use(middleware.PrometheusMiddleware())
}

// registerRoutes sets up all API route handlers on the given router group.
func registerRoutes(ctx context.Context, api *gin.RouterGroup, deps *RouterDeps) {
	log := deps.Log

	health := NewHealthHandler(deps.DB, deps.Schema, log, deps.Version, deps.SchemaVersion)
	nodes := NewNodeHandler(deps.Nodes, log)
	rels := NewRelationshipHandler(deps.Relationships, log)
	topo := NewTopologyHandler(deps.Topology, log)
	graph := NewGraphHandler(deps.Graph, log)
	hosts := NewHostHandler(deps.Hosts, log)
	stats := NewStatsHandler(deps.Graph, log)

	// Health and readiness are unauthenticated.
	api.GET("/health", health.Liveness)
	api.GET("/ready", health.Readiness)

	// All other API routes require authentication.
	if deps.Keys != nil {
		guard := middleware.NewBruteForceGuard(ctx, middleware.DefaultBruteForceConfig, log)
		api.Use(middleware.BruteForceMiddleware(guard))
		api.Use(middleware.AuthMiddleware(deps.Keys, log, guard))
	} else {
		api.Use(middleware.NoAuth())
	}

	// Nodes.
	api.GET("/nodes", nodes.List)
	api.POST("/nodes", nodes.Create)
	api.GET("/nodes/:id", nodes.Get)
	api.DELETE("/nodes/:id", nodes.Delete)
	api.GET("/nodes/:id/neighbors", graph.Neighbors)

	// Relationships.
	api.GET("/relationships", rels.List)
	api.POST("/relationships", rels.Create)
	api.DELETE("/relationships/:source/:target/:type", rels.Delete)

	// Topology documents.
	api.GET("/topology", topo.Export)
	api.POST("/topology", topo.Import)

	// Close-host queries.
	api.GET("/hosts/:address/close", hosts.Close)
	api.GET("/hosts/:address/distance/:target", hosts.Distance)

	// Stats.
	api.GET("/stats", stats.GetStats)

	registerGraphQL(api, deps)
}

// registerGraphQL mounts the read-only GraphQL endpoint.
func registerGraphQL(api *gin.RouterGroup, deps *RouterDeps) {
	srv := gin.WrapH(gql.NewHandler(&gql.Resolver{
		NodeSvc:  deps.Nodes,
		GraphSvc: deps.Graph,
		HostSvc:  deps.Hosts,
		Log:      deps.Log,
	}))

	group := api.Group("/graphql", gql.ClientIDMiddleware())
	group.GET("", srv)
	group.POST("", srv)
}

// NewRouter creates and configures the Gin engine with all middleware and routes.
func NewRouter(ctx context.Context, deps *RouterDeps) http.Handler {
	r := gin.New()
	setupMiddleware(ctx, r, deps)
	registerRoutes(ctx, r.Group("/api/v1"), deps)

	return r
}

// NewMetricsHandler serves the Prometheus registry on its own listener so
// metrics stay reachable without API credentials.
func NewMetricsHandler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	return mux
}
