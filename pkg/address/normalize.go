package address

import (
	"strings"

	"postalcore/pkg/territory"
)

// Normalize cleans the record in place. It never fails: fields it cannot
// make sense of are cleared to empty instead. Normalizing an already
// normalized address is a no-op.
//
// The pass trims and collapses whitespace, canonicalizes the postal code,
// resolves territory aliases to canonical codes, and cross-derives the
// country from the subdivision hierarchy. When the two territory fields
// contradict each other the country wins and the subdivision is cleared.
func (a *Address) Normalize() {
	f := &a.fields
	f.Line1 = collapseSpace(f.Line1)
	f.Line2 = collapseSpace(f.Line2)
	f.CityName = collapseSpace(f.CityName)
	f.PostalCode = normalizePostalCode(f.PostalCode)
	f.CountryCode = collapseSpace(f.CountryCode)
	f.SubdivisionCode = collapseSpace(f.SubdivisionCode)

	// A lone second line is promoted to the first.
	if f.Line1 == "" && f.Line2 != "" {
		f.Line1, f.Line2 = f.Line2, ""
	}

	a.resolveCountry()
	a.resolveSubdivision()
	a.deriveCountryFromSubdivision()
}

// resolveCountry canonicalizes the country field. Aliases that designate a
// subdivision (e.g. the exceptional reservation "IC" for the Canary
// Islands) shift the value into the subdivision field so the country can be
// re-derived from the hierarchy.
func (a *Address) resolveCountry() {
	f := &a.fields
	if f.CountryCode == "" {
		return
	}
	code, err := a.resolver.Resolve(f.CountryCode, territory.KindCountry)
	if err != nil {
		f.CountryCode = ""
		return
	}
	if node, lookupErr := a.resolver.Graph().Lookup(code); lookupErr == nil && !node.IsCountry() {
		if f.SubdivisionCode == "" {
			f.SubdivisionCode = code
		}
		f.CountryCode = ""
		return
	}
	f.CountryCode = code
}

// resolveSubdivision canonicalizes the subdivision field. Subdivision
// spellings promoted to their own ISO country (e.g. "US-PR") shift into the
// country field.
func (a *Address) resolveSubdivision() {
	f := &a.fields
	if f.SubdivisionCode == "" {
		return
	}
	code, err := a.resolver.Resolve(f.SubdivisionCode, territory.KindSubdivision)
	if err != nil {
		f.SubdivisionCode = ""
		return
	}
	if node, lookupErr := a.resolver.Graph().Lookup(code); lookupErr == nil && node.IsCountry() {
		if f.CountryCode == "" {
			f.CountryCode = code
		}
		f.SubdivisionCode = ""
		return
	}
	f.SubdivisionCode = code
}

// deriveCountryFromSubdivision fills the country from the subdivision's
// root ancestor, or clears the subdivision when the two contradict each
// other. Provisional subdivision codes with no graph backing are left for
// validation to flag.
func (a *Address) deriveCountryFromSubdivision() {
	f := &a.fields
	if f.SubdivisionCode == "" {
		return
	}
	country, err := a.resolver.Graph().CountryOf(f.SubdivisionCode)
	if err != nil {
		return
	}
	switch f.CountryCode {
	case "":
		f.CountryCode = country
	case country:
	default:
		f.SubdivisionCode = ""
	}
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// normalizePostalCode uppercases and strips everything but alphanumerics,
// spaces, and hyphens, then reduces mixed hyphen/space runs to a single
// hyphen and trims separators from both ends.
func normalizePostalCode(s string) string {
	s = strings.ToUpper(collapseSpace(s))
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == ' ', r == '-':
			b.WriteRune(r)
		}
	}
	s = b.String()
	for strings.Contains(s, "- ") || strings.Contains(s, " -") || strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "- ", "-")
		s = strings.ReplaceAll(s, " -", "-")
		s = strings.ReplaceAll(s, "--", "-")
	}
	return strings.Trim(s, "- ")
}
