package models

// PathType describes what kind of entity chain connects two hosts.
type PathType string

// Path types, listed in canonical output order.
const (
	PathTypeSubnet       PathType = "subnet"
	PathTypeOrganization PathType = "organization"
	PathTypeContact      PathType = "contact"
)

// PathTypes is the canonical ordering of all path types.
var PathTypes = []PathType{PathTypeSubnet, PathTypeOrganization, PathTypeContact}

// CloseHost is one IP node reachable from a source host within the requested depth.
type CloseHost struct {
	ID        string     `json:"id"`
	Address   string     `json:"address"`
	Distance  int        `json:"distance"`
	PathTypes []PathType `json:"path_types"`
}

// CloseHostsResult is the response body of a close-hosts query.
type CloseHostsResult struct {
	Source   string      `json:"source"`
	MaxDepth int         `json:"max_depth"`
	Hosts    []CloseHost `json:"hosts"`
}

// DistanceResult is the response body of a host-to-host distance query.
type DistanceResult struct {
	Source    string     `json:"source"`
	Target    string     `json:"target"`
	MaxDepth  int        `json:"max_depth"`
	Found     bool       `json:"found"`
	Distance  int        `json:"distance,omitempty"`
	PathTypes []PathType `json:"path_types,omitempty"`
}

// GraphStats holds node and relationship counts for the stored topology.
type GraphStats struct {
	Nodes         int            `json:"nodes"`
	Relationships int            `json:"relationships"`
	Labels        map[string]int `json:"labels"`
}
