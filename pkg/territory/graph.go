package territory

import (
	"fmt"
	"sort"
)

// Graph is the immutable territory hierarchy. It is built once from the
// reference catalog and safe for unlocked concurrent reads afterwards.
type Graph struct {
	nodes    map[string]*Territory
	children map[string][]string

	// Full enumerations are derived once at construction since the backing
	// dataset is static and validation consults them repeatedly.
	countryCodes     []string
	subdivisionCodes []string
}

// NewGraph indexes the supplied nodes into a hierarchy. Construction is
// deterministic: the same input always yields an identical graph. It fails
// on duplicate codes, dangling or cyclic parent chains, chains that do not
// terminate at a country, and hierarchies deeper than the administrative cap.
func NewGraph(nodes []Node) (*Graph, error) {
	g := &Graph{
		nodes:    make(map[string]*Territory, len(nodes)),
		children: make(map[string][]string),
	}
	for _, n := range nodes {
		if n.Code == "" {
			return nil, fmt.Errorf("territory with empty code (name %q)", n.Name)
		}
		if _, dup := g.nodes[n.Code]; dup {
			return nil, fmt.Errorf("duplicate territory code %q", n.Code)
		}
		switch n.Kind {
		case KindCountry:
			if n.Parent != "" {
				return nil, fmt.Errorf("country %q must not declare parent %q", n.Code, n.Parent)
			}
		case KindSubdivision:
			if n.Parent == "" {
				return nil, fmt.Errorf("subdivision %q missing parent", n.Code)
			}
		default:
			return nil, fmt.Errorf("territory %q has unknown kind %q", n.Code, n.Kind)
		}
		g.nodes[n.Code] = &Territory{
			Code:            n.Code,
			Name:            n.Name,
			Kind:            n.Kind,
			SubdivisionType: n.SubdivisionType,
		}
	}

	// Second pass links parents now that every node exists.
	for _, n := range nodes {
		if n.Parent == "" {
			continue
		}
		parent, ok := g.nodes[n.Parent]
		if !ok {
			return nil, fmt.Errorf("subdivision %q references unknown parent %q", n.Code, n.Parent)
		}
		g.nodes[n.Code].parent = parent
		g.children[n.Parent] = append(g.children[n.Parent], n.Code)
	}

	for code, node := range g.nodes {
		if node.Kind != KindSubdivision {
			continue
		}
		if node.Country() == nil {
			return nil, fmt.Errorf("subdivision %q: parent chain does not terminate at a country within %d levels", code, maxDepth)
		}
	}

	for _, kids := range g.children {
		sort.Strings(kids)
	}
	for code, node := range g.nodes {
		switch node.Kind {
		case KindCountry:
			g.countryCodes = append(g.countryCodes, code)
		case KindSubdivision:
			g.subdivisionCodes = append(g.subdivisionCodes, code)
		}
	}
	sort.Strings(g.countryCodes)
	sort.Strings(g.subdivisionCodes)
	return g, nil
}

// Lookup resolves an exact canonical code, case-sensitively.
func (g *Graph) Lookup(code string) (*Territory, error) {
	node, ok := g.nodes[code]
	if !ok {
		return nil, ErrNotFound{Code: code}
	}
	return node, nil
}

// Contains reports whether the exact code is present in the graph.
func (g *Graph) Contains(code string) bool {
	_, ok := g.nodes[code]
	return ok
}

// ChildrenOf returns the direct children of a territory in stable sorted
// order. Unknown codes and leaves both yield an empty slice, never an error.
func (g *Graph) ChildrenOf(code string) []string {
	kids := g.children[code]
	out := make([]string, len(kids))
	copy(out, kids)
	return out
}

// DescendantsOf returns the transitive closure of ChildrenOf in stable
// sorted order. Traversal depth is capped, so it terminates even if the
// dataset is malformed.
func (g *Graph) DescendantsOf(code string) []string {
	var out []string
	frontier := g.children[code]
	for depth := 0; depth < maxDepth && len(frontier) > 0; depth++ {
		out = append(out, frontier...)
		var next []string
		for _, c := range frontier {
			next = append(next, g.children[c]...)
		}
		frontier = next
	}
	sort.Strings(out)
	return out
}

// CountryCodes returns the full sorted enumeration of country codes. The
// enumeration is computed once at construction; callers receive a copy.
func (g *Graph) CountryCodes() []string {
	out := make([]string, len(g.countryCodes))
	copy(out, g.countryCodes)
	return out
}

// SubdivisionCodes returns the full sorted enumeration of subdivision codes,
// computed once at construction.
func (g *Graph) SubdivisionCodes() []string {
	out := make([]string, len(g.subdivisionCodes))
	copy(out, g.subdivisionCodes)
	return out
}

// CountryOf resolves the root country code of any territory code: the code
// itself for countries, the terminal ancestor for subdivisions.
func (g *Graph) CountryOf(code string) (string, error) {
	node, err := g.Lookup(code)
	if err != nil {
		return "", err
	}
	country := node.Country()
	if country == nil {
		return "", ErrNotFound{Code: code}
	}
	return country.Code, nil
}
