package address

import "strings"

// Render produces the display block for a validation-clean address using
// the country's line-ordering template. It fails fast with
// *NotRenderableError when the address has not passed validation.
func (a *Address) Render() (string, error) {
	if err := a.Validate(); err != nil {
		return "", &NotRenderableError{Cause: err}
	}
	tpl := templateFor(a.CountryCode())

	var lines []string
	for _, lineSlots := range tpl.Lines {
		var parts []string
		for _, s := range lineSlots {
			if v := a.renderSlot(s); v != "" {
				parts = append(parts, v)
			}
		}
		if len(parts) > 0 {
			lines = append(lines, strings.Join(parts, " "))
		}
	}
	return strings.Join(lines, "\n"), nil
}

func (a *Address) renderSlot(s slot) string {
	switch s {
	case slotLine1:
		return a.Line1()
	case slotLine2:
		return a.Line2()
	case slotPostal:
		return a.PostalCode()
	case slotCity:
		return a.CityName()
	case slotSubdivisionAbbr:
		if a.SubdivisionCode() == "" {
			return ""
		}
		return subdivisionAbbr(a.SubdivisionCode())
	case slotSubdivisionName:
		name := a.SubdivisionName()
		// Drop the subdivision line when it repeats information already
		// carried by the city or country lines.
		if name == "" || name == a.CityName() || name == a.CountryName() {
			return ""
		}
		return name
	case slotCountry:
		return a.CountryName()
	}
	return ""
}
