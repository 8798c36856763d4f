package address

import "fmt"

// SubdivisionRule checks that a set subdivision is backed by the graph,
// attaches to a resolvable country, and agrees with the country field.
// A subdivision whose parent chain yields no country fails outright: the
// record is treated as broken rather than "country unknown but consistent".
func SubdivisionRule() Rule { return subdivisionRule{} }

type subdivisionRule struct{}

func (subdivisionRule) Name() string { return "subdivision" }

func (subdivisionRule) Evaluate(a *Address) Result {
	code := a.SubdivisionCode()
	if code == "" {
		return Result{}
	}
	node, err := a.resolver.Graph().Lookup(code)
	if err != nil || node.IsCountry() {
		return Result{Violations: []Violation{{
			Rule:    "subdivision",
			Field:   FieldSubdivisionCode,
			Kind:    KindInvalid,
			Message: fmt.Sprintf("unknown subdivision code %q", code),
		}}}
	}
	country := node.Country()
	if country == nil {
		return Result{Violations: []Violation{{
			Rule:    "subdivision",
			Field:   FieldSubdivisionCode,
			Kind:    KindInvalid,
			Message: fmt.Sprintf("subdivision %q has no resolvable country", code),
		}}}
	}
	if country.Code != a.CountryCode() {
		return Result{Violations: []Violation{{
			Rule:    "subdivision",
			Field:   FieldSubdivisionCode,
			Kind:    KindInconsistent,
			Message: fmt.Sprintf("subdivision %q belongs to %s, not %s", code, country.Code, a.CountryCode()),
		}}}
	}
	return Result{}
}
