package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Relationship types traversed by the close-hosts query.
const (
	RelHas    = "HAS"
	RelPartOf = "PART_OF"
)

// Relationship represents a directed, typed edge between two nodes.
type Relationship struct {
	Source     string         `json:"source"`
	Target     string         `json:"target"`
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
	CreatedAt  time.Time      `json:"created_at"`
}

// CreateRelationshipRequest is the payload for creating a new relationship.
type CreateRelationshipRequest struct {
	Source     string         `json:"source" yaml:"source"`
	Target     string         `json:"target" yaml:"target"`
	Type       string         `json:"type" yaml:"type"`
	Properties map[string]any `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// Validate checks that required fields are present and within limits on CreateRelationshipRequest.
func (r *CreateRelationshipRequest) Validate() error {
	if r.Source == "" {
		return ErrMissingSource
	}

	if len(r.Source) > 255 {
		return ErrFieldTooLong("source", 255)
	}

	if r.Target == "" {
		return ErrMissingTarget
	}

	if len(r.Target) > 255 {
		return ErrFieldTooLong("target", 255)
	}

	if r.Type == "" {
		return ErrMissingType
	}

	if len(r.Type) > 100 {
		return ErrFieldTooLong("type", 100)
	}

	if r.Properties != nil {
		data, err := json.Marshal(r.Properties)
		if err != nil {
			return fmt.Errorf("invalid properties: %w", err)
		}
		if len(data) > 65536 {
			return ErrFieldTooLong("properties", 65536)
		}
	}

	return nil
}

// Neighbor is one relationship hop seen from a given node, in either direction.
type Neighbor struct {
	Relationship Relationship `json:"relationship"`
	Node         *Node        `json:"node"`
}

// NeighborResult holds nodes directly connected to a given node plus the relationships used.
type NeighborResult struct {
	Node      Node       `json:"node"`
	Neighbors []Neighbor `json:"neighbors"`
}
