package traverse

import "github.com/hostgraph/hostgraph/internal/models"

// PathTypeSet is a set of path types.
type PathTypeSet uint8

const (
	setSubnet PathTypeSet = 1 << iota
	setOrganization
	setContact
)

var pathTypeBits = map[models.PathType]PathTypeSet{
	models.PathTypeSubnet:       setSubnet,
	models.PathTypeOrganization: setOrganization,
	models.PathTypeContact:      setContact,
}

// NewPathTypeSet returns the set holding types.
func NewPathTypeSet(types ...models.PathType) PathTypeSet {
	var s PathTypeSet
	for _, t := range types {
		s |= pathTypeBits[t]
	}

	return s
}

// Has reports whether t is in the set.
func (s PathTypeSet) Has(t models.PathType) bool {
	return s&pathTypeBits[t] != 0
}

// Union returns the union of s and o.
func (s PathTypeSet) Union(o PathTypeSet) PathTypeSet { return s | o }

// Types returns the members of the set in canonical order.
func (s PathTypeSet) Types() []models.PathType {
	out := make([]models.PathType, 0, len(models.PathTypes))
	for _, t := range models.PathTypes {
		if s.Has(t) {
			out = append(out, t)
		}
	}

	return out
}

// Classify returns the path types of p.
//
// A two-hop path is always a subnet path, whatever its middle node is.
// Otherwise every node is scanned: an OrganizationUnit node marks the path
// organization and a Contact node marks it contact. A path with neither is
// plain network adjacency and is classified subnet.
func Classify(p Path) PathTypeSet {
	if p.Length() == 2 {
		return setSubnet
	}

	var s PathTypeSet

	for _, n := range p.Nodes() {
		if n.HasLabel(models.LabelOrganizationUnit) {
			s |= setOrganization
		}

		if n.HasLabel(models.LabelContact) {
			s |= setContact
		}
	}

	if s == 0 {
		return setSubnet
	}

	return s
}
