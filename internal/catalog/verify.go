package catalog

import (
	"fmt"
	"regexp"
	"sort"
)

// Finding is one integrity problem detected in a dataset.
type Finding struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (f Finding) String() string {
	return fmt.Sprintf("%s: %s", f.Code, f.Message)
}

var (
	countryShape     = regexp.MustCompile(`^[A-Z]{2}$`)
	subdivisionShape = regexp.MustCompile(`^[A-Z]{2}-[A-Z0-9]{1,3}$`)
)

// maxNesting bounds subdivision nesting below a country.
const maxNesting = 3

// Verify runs the full integrity check over a dataset and returns every
// finding in stable order: duplicate or malformed codes, empty names,
// dangling or cyclic subdivision parents, nesting beyond the administrative
// cap, and static alias data that contradicts the dataset.
func Verify(ds Dataset) []Finding {
	var findings []Finding
	report := func(code, format string, args ...any) {
		findings = append(findings, Finding{Code: code, Message: fmt.Sprintf(format, args...)})
	}

	seen := make(map[string]struct{})
	countrySet := make(map[string]struct{})
	subParents := make(map[string]string)

	for _, c := range ds.Countries {
		if !countryShape.MatchString(c.Code) {
			report(c.Code, "malformed country code")
		}
		if c.Name == "" {
			report(c.Code, "country has empty name")
		}
		if _, dup := seen[c.Code]; dup {
			report(c.Code, "duplicate territory code")
		}
		seen[c.Code] = struct{}{}
		countrySet[c.Code] = struct{}{}

		for _, s := range c.Subdivisions {
			if !subdivisionShape.MatchString(s.Code) {
				report(s.Code, "malformed subdivision code")
			} else if s.Code[:2] != c.Code {
				report(s.Code, "subdivision code not namespaced under country %s", c.Code)
			}
			if s.Name == "" {
				report(s.Code, "subdivision has empty name")
			}
			if _, dup := seen[s.Code]; dup {
				report(s.Code, "duplicate territory code")
			}
			seen[s.Code] = struct{}{}
			subParents[s.Code] = s.Parent
		}
	}

	for code, parent := range subParents {
		depth := 1
		for parent != "" {
			next, ok := subParents[parent]
			if !ok {
				report(code, "parent %q is not a subdivision in the dataset", parent)
				break
			}
			depth++
			if depth > maxNesting {
				report(code, "parent chain exceeds %d levels or cycles", maxNesting)
				break
			}
			parent = next
		}
	}

	// Static alias spellings must stay out of the dataset: a code that is
	// both a node and an alias key would resolve ambiguously.
	aliasTargets := make(map[string]string)
	for _, m := range []map[string]string{countryAliases, reservedCountryCodes, countryAliasToSubdivision, subdivisionCountries, subdivisionAliases} {
		for name, target := range m {
			if _, clash := seen[name]; clash {
				report(name, "alias spelling shadows a dataset territory")
			}
			aliasTargets[name] = target
		}
	}
	for name, target := range aliasTargets {
		if _, ok := seen[target]; !ok {
			report(name, "alias target %q missing from dataset", target)
		}
	}
	for code, top := range foreignTerritories {
		if _, ok := countrySet[code]; !ok {
			report(code, "foreign territory missing from dataset")
		}
		if _, ok := countrySet[top]; !ok {
			report(code, "attachment country %q missing from dataset", top)
		}
	}

	sort.Slice(findings, func(i, j int) bool {
		if findings[i].Code != findings[j].Code {
			return findings[i].Code < findings[j].Code
		}
		return findings[i].Message < findings[j].Message
	})
	return findings
}
