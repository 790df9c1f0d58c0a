// Package graphql serves a read-only GraphQL view of the host topology next
// to the REST API.
package graphql

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/99designs/gqlgen/graphql/handler"
	"github.com/99designs/gqlgen/graphql/handler/extension"
	"github.com/99designs/gqlgen/graphql/handler/transport"
	"github.com/sirupsen/logrus"

	"github.com/hostgraph/hostgraph/internal/domain"
)

// Resolver is the root resolver. All services come from the domain package.
type Resolver struct {
	NodeSvc  domain.NodeService
	GraphSvc domain.GraphService
	HostSvc  domain.HostService
	Log      *logrus.Logger
}

// NewHandler returns the HTTP handler for the GraphQL endpoint.
func NewHandler(r *Resolver) http.Handler {
	srv := handler.New(NewExecutableSchema(Config{Resolvers: r}))
	srv.AddTransport(transport.GET{})
	srv.AddTransport(transport.POST{})
	srv.Use(extension.FixedComplexityLimit(maxComplexity))

	return srv
}

// Pagination bounds, matching the REST endpoints.
const (
	maxPageLimit  = 1000
	maxPageOffset = 100000
)

func (r *Resolver) query() *object {
	return &object{typeName: "Query", fields: map[string]any{
		"node": fieldResolver(func(ctx context.Context, args map[string]any) (any, error) {
			n, err := r.NodeSvc.GetNode(ctx, stringArg(args, "id"))
			if err != nil {
				return nil, err
			}

			return r.nodeObject(n), nil
		}),
		"nodes": fieldResolver(func(ctx context.Context, args map[string]any) (any, error) {
			limit := min(max(intArg(args, "limit", 50), 1), maxPageLimit)
			offset := min(max(intArg(args, "offset", 0), 0), maxPageOffset)

			nodes, more, err := r.NodeSvc.ListNodes(ctx, stringArg(args, "label"), limit, offset)
			if err != nil {
				return nil, err
			}

			return &object{typeName: "NodePage", fields: map[string]any{
				"nodes":   r.nodeObjects(nodes),
				"hasMore": more,
			}}, nil
		}),
		"closeHosts": fieldResolver(func(ctx context.Context, args map[string]any) (any, error) {
			res, err := r.HostSvc.CloseHosts(ctx, stringArg(args, "address"), depthArg(args))
			if err != nil {
				return nil, err
			}

			r.Log.WithFields(logrus.Fields{
				"address":   res.Source,
				"max_depth": res.MaxDepth,
				"hosts":     len(res.Hosts),
				"client_id": ClientIDFromContext(ctx),
			}).Debug("graphql close hosts")

			return r.closeHostsObject(res), nil
		}),
		"distance": fieldResolver(func(ctx context.Context, args map[string]any) (any, error) {
			res, err := r.HostSvc.Distance(ctx, stringArg(args, "from"), stringArg(args, "to"), depthArg(args))
			if err != nil {
				return nil, err
			}

			return distanceObject(res), nil
		}),
		"stats": fieldResolver(func(ctx context.Context, _ map[string]any) (any, error) {
			st, err := r.GraphSvc.Stats(ctx)
			if err != nil {
				return nil, err
			}

			return statsObject(st), nil
		}),
	}}
}

// stringArg returns a string argument, or "" when it is absent or null.
func stringArg(args map[string]any, name string) string {
	switch v := args[name].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// intArg returns an integer argument, or def when it is absent or null.
func intArg(args map[string]any, name string, def int) int {
	switch v := args[name].(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float64:
		return int(v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}

	return def
}

// depthArg maps an omitted or negative depth to -1, the service default.
func depthArg(args map[string]any) int {
	return max(intArg(args, "depth", -1), -1)
}
