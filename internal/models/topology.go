package models

// Topology is a portable graph document: the nodes and relationships of a
// network inventory, as produced by an inventory export or written by hand.
type Topology struct {
	Nodes         []CreateNodeRequest         `json:"nodes" yaml:"nodes"`
	Relationships []CreateRelationshipRequest `json:"relationships" yaml:"relationships"`
}

// TopologyStats summarises the contents of a topology document.
type TopologyStats struct {
	NodeCount         int `json:"node_count"`
	RelationshipCount int `json:"relationship_count"`
}

// Stats counts the nodes and relationships in t.
func (t *Topology) Stats() TopologyStats {
	return TopologyStats{NodeCount: len(t.Nodes), RelationshipCount: len(t.Relationships)}
}

// Validate checks every node and relationship and that relationship
// endpoints refer to nodes declared in the document. Node IDs are generated
// for nodes that do not carry one.
func (t *Topology) Validate() error {
	if len(t.Nodes) == 0 {
		return ErrEmptyTopology
	}

	ids := make(map[string]struct{}, len(t.Nodes))

	for i := range t.Nodes {
		if err := t.Nodes[i].Validate(); err != nil {
			return &TopologyError{Kind: "node", Index: i, Err: err}
		}

		if _, dup := ids[t.Nodes[i].ID]; dup {
			return &TopologyError{Kind: "node", Index: i, Err: ErrDuplicateKey}
		}

		ids[t.Nodes[i].ID] = struct{}{}
	}

	rels := make(map[[3]string]struct{}, len(t.Relationships))

	for i := range t.Relationships {
		r := &t.Relationships[i]
		if err := r.Validate(); err != nil {
			return &TopologyError{Kind: "relationship", Index: i, Err: err}
		}

		key := [3]string{r.Source, r.Target, r.Type}
		if _, dup := rels[key]; dup {
			return &TopologyError{Kind: "relationship", Index: i, Err: ErrDuplicateKey}
		}

		rels[key] = struct{}{}

		if _, ok := ids[r.Source]; !ok {
			return &TopologyError{Kind: "relationship", Index: i, Err: ErrNodeNotFound}
		}

		if _, ok := ids[r.Target]; !ok {
			return &TopologyError{Kind: "relationship", Index: i, Err: ErrNodeNotFound}
		}
	}

	return nil
}

// ImportResult summarises the outcome of a topology import.
type ImportResult struct {
	NodesUpserted         int  `json:"nodes_upserted"`
	RelationshipsUpserted int  `json:"relationships_upserted"`
	Replaced              bool `json:"replaced"`
}

// ImportOptions controls the behaviour of a topology import.
type ImportOptions struct {
	// Replace deletes every existing node and relationship before loading.
	Replace bool `json:"replace"`
}
