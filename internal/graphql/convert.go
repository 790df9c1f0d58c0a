package graphql

import (
	"context"
	"maps"
	"slices"
	"time"

	"github.com/hostgraph/hostgraph/internal/models"
)

func formatTime(t time.Time) string { return t.UTC().Format(time.RFC3339Nano) }

// nullable maps "" to a GraphQL null.
func nullable(s string) any {
	if s == "" {
		return nil
	}

	return s
}

func pathTypes(types []models.PathType) []models.PathType {
	if types == nil {
		return []models.PathType{}
	}

	return types
}

func (r *Resolver) nodeObject(n *models.Node) *object {
	if n == nil {
		return nil
	}

	labels := n.Labels
	if labels == nil {
		labels = []string{}
	}

	id := n.ID

	return &object{typeName: "Node", fields: map[string]any{
		"id":         id,
		"labels":     labels,
		"address":    nullable(n.Address()),
		"properties": n.Properties,
		"createdAt":  formatTime(n.CreatedAt),
		"updatedAt":  formatTime(n.UpdatedAt),
		"neighbors": fieldResolver(func(ctx context.Context, args map[string]any) (any, error) {
			limit := min(max(intArg(args, "limit", 100), 1), maxPageLimit)

			res, err := r.GraphSvc.Neighbors(ctx, id, limit)
			if err != nil {
				return nil, err
			}

			out := make([]*object, len(res.Neighbors))
			for i := range res.Neighbors {
				nb := &res.Neighbors[i]
				out[i] = &object{typeName: "Neighbor", fields: map[string]any{
					"relationship": relationshipObject(&nb.Relationship),
					"node":         r.nodeObject(nb.Node),
				}}
			}

			return out, nil
		}),
	}}
}

func (r *Resolver) nodeObjects(nodes []models.Node) []*object {
	out := make([]*object, len(nodes))
	for i := range nodes {
		out[i] = r.nodeObject(&nodes[i])
	}

	return out
}

func relationshipObject(rel *models.Relationship) *object {
	return &object{typeName: "Relationship", fields: map[string]any{
		"source":     rel.Source,
		"target":     rel.Target,
		"type":       rel.Type,
		"properties": rel.Properties,
		"createdAt":  formatTime(rel.CreatedAt),
	}}
}

func (r *Resolver) closeHostsObject(res *models.CloseHostsResult) *object {
	hosts := make([]*object, len(res.Hosts))

	for i, h := range res.Hosts {
		hosts[i] = &object{typeName: "CloseHost", fields: map[string]any{
			"id":        h.ID,
			"address":   h.Address,
			"distance":  h.Distance,
			"pathTypes": pathTypes(h.PathTypes),
			"node": fieldResolver(func(ctx context.Context, _ map[string]any) (any, error) {
				n, err := r.NodeSvc.GetNode(ctx, h.ID)
				if err != nil {
					return nil, err
				}

				return r.nodeObject(n), nil
			}),
		}}
	}

	return &object{typeName: "CloseHostsResult", fields: map[string]any{
		"source":   res.Source,
		"maxDepth": res.MaxDepth,
		"hosts":    hosts,
	}}
}

func distanceObject(res *models.DistanceResult) *object {
	var distance any
	if res.Found {
		distance = res.Distance
	}

	return &object{typeName: "DistanceResult", fields: map[string]any{
		"source":    res.Source,
		"target":    res.Target,
		"maxDepth":  res.MaxDepth,
		"found":     res.Found,
		"distance":  distance,
		"pathTypes": pathTypes(res.PathTypes),
	}}
}

func statsObject(st *models.GraphStats) *object {
	labels := make([]*object, 0, len(st.Labels))

	for _, name := range slices.Sorted(maps.Keys(st.Labels)) {
		labels = append(labels, &object{typeName: "LabelCount", fields: map[string]any{
			"label": name,
			"count": st.Labels[name],
		}})
	}

	return &object{typeName: "Stats", fields: map[string]any{
		"nodes":         st.Nodes,
		"relationships": st.Relationships,
		"labels":        labels,
	}}
}
