// Package models defines data types for the host topology graph.
package models

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
)

// Node labels used by the close-hosts query.
const (
	LabelIP               = "IP"
	LabelSubnet           = "Subnet"
	LabelOrganizationUnit = "OrganizationUnit"
	LabelContact          = "Contact"
)

// PropAddress is the property that identifies an IP node.
const PropAddress = "address"

// Node represents a vertex in the topology graph.
type Node struct {
	ID         string         `json:"id"`
	Labels     []string       `json:"labels"`
	Properties map[string]any `json:"properties"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// HasLabel reports whether the node carries label.
func (n *Node) HasLabel(label string) bool {
	return slices.Contains(n.Labels, label)
}

// Property returns the value stored under key, or nil.
func (n *Node) Property(key string) any {
	if n.Properties == nil {
		return nil
	}

	return n.Properties[key]
}

// Address returns the node's address property as a string.
// Non-string values are formatted with %v; a missing property yields "".
func (n *Node) Address() string {
	switch v := n.Property(PropAddress).(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

// CreateNodeRequest is the payload for creating a new node.
type CreateNodeRequest struct {
	ID         string         `json:"id" yaml:"id"`
	Labels     []string       `json:"labels" yaml:"labels"`
	Properties map[string]any `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// Validate checks that required fields are present and within limits on CreateNodeRequest.
// If ID is empty, a UUID is auto-generated.
func (r *CreateNodeRequest) Validate() error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}

	if len(r.ID) > 255 {
		return ErrFieldTooLong("id", 255)
	}

	if len(r.Labels) == 0 {
		return ErrMissingLabels
	}

	if len(r.Labels) > 16 {
		return fmt.Errorf("labels must not exceed 16 entries")
	}

	for _, l := range r.Labels {
		if l == "" {
			return fmt.Errorf("labels must not contain empty values")
		}

		if len(l) > 100 {
			return ErrFieldTooLong("label", 100)
		}
	}

	if slices.Contains(r.Labels, LabelIP) {
		addr, ok := r.Properties[PropAddress].(string)
		if !ok || addr == "" {
			return ErrMissingAddress
		}
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
