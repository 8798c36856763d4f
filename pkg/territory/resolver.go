package territory

import (
	"regexp"
	"sort"
	"strings"
)

// Alias binds one non-canonical spelling to a canonical code. Kind describes
// the shape of the spelling (what a caller would pass it as), not the class
// of the target: a subdivision spelling may legitimately resolve to a
// country code when the subdivision has been promoted to its own country.
type Alias struct {
	Name string
	Code string
	Kind Kind
}

type aliasKey struct {
	name string
	kind Kind
}

// Resolver maps free-form or legacy territory identifiers to canonical
// codes, with the graph as ground truth. Read-only after construction.
type Resolver struct {
	graph *Graph
	table map[aliasKey][]string
}

var (
	countryCodeShape     = regexp.MustCompile(`^[A-Z]{2}$`)
	subdivisionCodeShape = regexp.MustCompile(`^[A-Z]{2}-[A-Z0-9]{1,3}$`)
)

// NewResolver builds the alias table from the static alias data plus
// self-aliases derived from every graph node's code and display name.
func NewResolver(graph *Graph, aliases []Alias) *Resolver {
	r := &Resolver{graph: graph, table: make(map[aliasKey][]string)}
	for _, code := range graph.CountryCodes() {
		node, _ := graph.Lookup(code)
		r.add(code, code, KindCountry)
		r.add(node.Name, code, KindCountry)
	}
	for _, code := range graph.SubdivisionCodes() {
		node, _ := graph.Lookup(code)
		r.add(code, code, KindSubdivision)
		r.add(node.Name, code, KindSubdivision)
	}
	for _, a := range aliases {
		r.add(a.Name, a.Code, a.Kind)
	}
	for key := range r.table {
		sort.Strings(r.table[key])
	}
	return r
}

func (r *Resolver) add(name, code string, kind Kind) {
	key := aliasKey{name: NormalizeAlias(name), kind: kind}
	if key.name == "" {
		return
	}
	for _, existing := range r.table[key] {
		if existing == code {
			return
		}
	}
	r.table[key] = append(r.table[key], code)
}

// Graph exposes the ground-truth hierarchy backing the resolver.
func (r *Resolver) Graph() *Graph { return r.graph }

// Resolve maps a raw identifier to a canonical code. kind narrows the lookup
// so a subdivision alias cannot collide with a country alias of the same
// spelling; KindAny searches both classes. A well-formed but unlisted code
// is accepted verbatim, since the alias table cannot be exhaustive.
// Resolution is deterministic: the same input yields the same code or the
// same failure regardless of call order.
func (r *Resolver) Resolve(raw string, kind Kind) (string, error) {
	normalized := NormalizeAlias(raw)
	if normalized == "" {
		return "", ErrUnresolvable{Input: raw, Kind: kind}
	}

	candidates := r.candidates(normalized, kind)
	switch len(candidates) {
	case 1:
		return candidates[0], nil
	case 0:
		if code, ok := r.verbatimCode(raw, kind); ok {
			return code, nil
		}
		return "", ErrUnresolvable{Input: raw, Kind: kind}
	default:
		return "", ErrUnresolvable{Input: raw, Kind: kind, Candidates: candidates}
	}
}

func (r *Resolver) candidates(normalized string, kind Kind) []string {
	if kind != KindAny {
		return r.table[aliasKey{name: normalized, kind: kind}]
	}
	merged := append([]string(nil), r.table[aliasKey{name: normalized, kind: KindCountry}]...)
	for _, code := range r.table[aliasKey{name: normalized, kind: KindSubdivision}] {
		dup := false
		for _, existing := range merged {
			if existing == code {
				dup = true
				break
			}
		}
		if !dup {
			merged = append(merged, code)
		}
	}
	sort.Strings(merged)
	return merged
}

// verbatimCode accepts input that already matches the canonical code syntax
// for the expected kind, uppercased, even when the graph does not list it.
// Validation remains the gate that rejects codes with no backing territory.
func (r *Resolver) verbatimCode(raw string, kind Kind) (string, bool) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	switch kind {
	case KindCountry:
		return code, countryCodeShape.MatchString(code)
	case KindSubdivision:
		return code, subdivisionCodeShape.MatchString(code)
	case KindAny:
		return code, countryCodeShape.MatchString(code) || subdivisionCodeShape.MatchString(code)
	}
	return "", false
}
