package address

import "fmt"

// CountryRule checks that the country field is present and backed by a
// country node in the graph.
func CountryRule() Rule { return countryRule{} }

type countryRule struct{}

func (countryRule) Name() string { return "country" }

func (countryRule) Evaluate(a *Address) Result {
	code := a.CountryCode()
	if code == "" {
		return Result{Violations: []Violation{{
			Rule:    "country",
			Field:   FieldCountryCode,
			Kind:    KindRequired,
			Message: "country code is required",
		}}}
	}
	node, err := a.resolver.Graph().Lookup(code)
	if err != nil || !node.IsCountry() {
		return Result{Violations: []Violation{{
			Rule:    "country",
			Field:   FieldCountryCode,
			Kind:    KindInvalid,
			Message: fmt.Sprintf("unknown country code %q", code),
		}}}
	}
	return Result{}
}
