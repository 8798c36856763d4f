// Package territory defines the immutable hierarchy of countries and
// administrative subdivisions together with the alias resolution used to map
// free-form territory identifiers onto canonical ISO-3166 codes.
package territory

// Kind identifies the class of a territory node.
type Kind string

// Supported territory kinds. KindAny widens alias resolution to both classes.
const (
	// KindCountry identifies an ISO 3166-1 alpha-2 country.
	KindCountry Kind = "country"
	// KindSubdivision identifies an ISO 3166-2 style subdivision.
	KindSubdivision Kind = "subdivision"
	// KindAny matches either class during alias resolution.
	KindAny Kind = "any"
)

// maxDepth bounds the number of subdivision levels below a country.
// Real-world administrative hierarchies never exceed three levels; the cap
// keeps traversal terminating on malformed datasets.
const maxDepth = 3

// Territory is a node in the hierarchy: a country or one of its
// administrative subdivisions.
type Territory struct {
	// Code is the canonical identifier: ISO 3166-1 alpha-2 for countries,
	// ISO 3166-2 compound form for subdivisions. Unique across the graph.
	Code string
	// Name is the canonical display name.
	Name string
	// Kind classifies the node.
	Kind Kind
	// SubdivisionType carries the administrative flavor (state, province,
	// prefecture, ...) for display only. Empty for countries.
	SubdivisionType string

	parent *Territory
}

// IsCountry reports whether the territory is a root country node.
func (t *Territory) IsCountry() bool { return t.Kind == KindCountry }

// Parent returns the containing territory: a country for top-level
// subdivisions, a subdivision for nested ones. Countries have no parent.
func (t *Territory) Parent() (*Territory, bool) {
	if t.parent == nil {
		return nil, false
	}
	return t.parent, true
}

// Country walks the parent chain up to the root country. The walk is capped
// at the maximum administrative depth, so it terminates even on a dataset
// that slipped past construction checks.
func (t *Territory) Country() *Territory {
	node := t
	for i := 0; i <= maxDepth; i++ {
		if node.parent == nil {
			if node.Kind == KindCountry {
				return node
			}
			return nil
		}
		node = node.parent
	}
	return nil
}

// Ancestors returns the parent chain from the immediate parent up to and
// including the root country. Empty for countries.
func (t *Territory) Ancestors() []*Territory {
	var chain []*Territory
	node := t.parent
	for i := 0; node != nil && i <= maxDepth; i++ {
		chain = append(chain, node)
		node = node.parent
	}
	return chain
}

// Node is the flat construction input for a graph. Parent references the
// containing territory by code and must be empty for countries.
type Node struct {
	Code            string
	Name            string
	Kind            Kind
	SubdivisionType string
	Parent          string
}
