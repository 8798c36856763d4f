package catalog

import (
	"fmt"

	"postalcore/pkg/territory"
)

// Nodes flattens a dataset into graph construction input. Top-level
// subdivisions parent to their country; nested ones keep their declared
// subdivision parent.
func Nodes(ds Dataset) []territory.Node {
	var nodes []territory.Node
	for _, c := range ds.Countries {
		nodes = append(nodes, territory.Node{
			Code: c.Code,
			Name: c.Name,
			Kind: territory.KindCountry,
		})
		for _, s := range c.Subdivisions {
			parent := s.Parent
			if parent == "" {
				parent = c.Code
			}
			nodes = append(nodes, territory.Node{
				Code:            s.Code,
				Name:            s.Name,
				Kind:            territory.KindSubdivision,
				SubdivisionType: s.Type,
				Parent:          parent,
			})
		}
	}
	return nodes
}

// Build constructs the immutable graph and resolver pair from a dataset.
func Build(ds Dataset) (*territory.Graph, *territory.Resolver, error) {
	graph, err := territory.NewGraph(Nodes(ds))
	if err != nil {
		return nil, nil, fmt.Errorf("build territory graph: %w", err)
	}
	return graph, territory.NewResolver(graph, Aliases()), nil
}
