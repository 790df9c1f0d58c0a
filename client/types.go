package client

import "time"

// Node represents a vertex in the topology graph.
type Node struct {
	ID         string         `json:"id"`
	Labels     []string       `json:"labels"`
	Properties map[string]any `json:"properties"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// Address returns the node's address property, or "" when it has none.
func (n *Node) Address() string {
	s, _ := n.Properties["address"].(string)
	return s
}

// Relationship represents a directed, typed edge between two nodes.
type Relationship struct {
	Source     string         `json:"source"`
	Target     string         `json:"target"`
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
	CreatedAt  time.Time      `json:"created_at"`
}

// CreateNodeRequest is the payload for creating a node. IP nodes need an
// "address" property.
type CreateNodeRequest struct {
	ID         string         `json:"id,omitempty" yaml:"id,omitempty"`
	Labels     []string       `json:"labels" yaml:"labels"`
	Properties map[string]any `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// CreateRelationshipRequest is the payload for creating a relationship.
type CreateRelationshipRequest struct {
	Source     string         `json:"source" yaml:"source"`
	Target     string         `json:"target" yaml:"target"`
	Type       string         `json:"type" yaml:"type"`
	Properties map[string]any `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// NodeListOptions filters and paginates node listings.
type NodeListOptions struct {
	Label  string
	Limit  int
	Offset int
}

// RelationshipListOptions filters and paginates relationship listings.
type RelationshipListOptions struct {
	Source string
	Target string
	Type   string
	Limit  int
	Offset int
}

// Neighbor is one relationship hop seen from a node.
type Neighbor struct {
	Relationship Relationship `json:"relationship"`
	Node         *Node        `json:"node"`
}

// NeighborResult holds a node and everything directly connected to it.
type NeighborResult struct {
	Node      Node       `json:"node"`
	Neighbors []Neighbor `json:"neighbors"`
}

// Topology is a whole-graph document for import and export.
type Topology struct {
	Nodes         []CreateNodeRequest         `json:"nodes" yaml:"nodes"`
	Relationships []CreateRelationshipRequest `json:"relationships" yaml:"relationships"`
}

// ImportResult summarises a topology import.
type ImportResult struct {
	NodesUpserted         int  `json:"nodes_upserted"`
	RelationshipsUpserted int  `json:"relationships_upserted"`
	Replaced              bool `json:"replaced"`
}

// CloseHost is one host near the queried source.
type CloseHost struct {
	ID        string   `json:"id"`
	Address   string   `json:"address"`
	Distance  int      `json:"distance"`
	PathTypes []string `json:"path_types"`
}

// CloseHostsResult is the response of a close-hosts query.
type CloseHostsResult struct {
	Source   string      `json:"source"`
	MaxDepth int         `json:"max_depth"`
	Hosts    []CloseHost `json:"hosts"`
}

// DistanceResult is the response of a host-to-host distance query.
type DistanceResult struct {
	Source    string   `json:"source"`
	Target    string   `json:"target"`
	MaxDepth  int      `json:"max_depth"`
	Found     bool     `json:"found"`
	Distance  int      `json:"distance,omitempty"`
	PathTypes []string `json:"path_types,omitempty"`
}

// HealthResponse is the liveness check payload.
type HealthResponse struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	SchemaVersion int     `json:"schema_version"`
	Database      string  `json:"database"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// ReadinessResponse is the readiness check payload.
type ReadinessResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// StatsResponse holds node and relationship counts.
type StatsResponse struct {
	Nodes         int            `json:"nodes"`
	Relationships int            `json:"relationships"`
	Labels        map[string]int `json:"labels"`
}
