package address

import "strings"

// slot identifies one renderable component of an address line.
type slot int

const (
	slotLine1 slot = iota
	slotLine2
	slotPostal
	slotCity
	// slotSubdivisionAbbr renders the short subdivision code without its
	// country prefix ("CA" for "US-CA"), the North American locality style.
	slotSubdivisionAbbr
	// slotSubdivisionName renders the full subdivision display name on its
	// own line; it is suppressed when redundant with city or country.
	slotSubdivisionName
	slotCountry
)

// Template is an ordered list of lines, each an ordered list of slots.
// Empty slots are omitted; a line with no surviving slots is dropped.
type Template struct {
	Lines [][]slot
}

// genericTemplate is the international fallback: postal code before city,
// subdivision on its own line, country last.
var genericTemplate = Template{Lines: [][]slot{
	{slotLine1},
	{slotLine2},
	{slotPostal, slotCity},
	{slotSubdivisionName},
	{slotCountry},
}}

// localityFirstTemplate puts city, short subdivision, and postal code on a
// single locality line (US, CA, AU style).
var localityFirstTemplate = Template{Lines: [][]slot{
	{slotLine1},
	{slotLine2},
	{slotCity, slotSubdivisionAbbr, slotPostal},
	{slotCountry},
}}

// townThenPostalTemplate renders the post town and the postal code on
// separate lines (GB, IE style).
var townThenPostalTemplate = Template{Lines: [][]slot{
	{slotLine1},
	{slotLine2},
	{slotCity},
	{slotPostal},
	{slotCountry},
}}

// countryTemplates holds bespoke per-country orderings. Any country not
// listed falls back to the generic international template.
var countryTemplates = map[string]Template{
	"US": localityFirstTemplate,
	"CA": localityFirstTemplate,
	"AU": localityFirstTemplate,
	"NZ": localityFirstTemplate,
	"GB": townThenPostalTemplate,
	"IE": townThenPostalTemplate,
}

func templateFor(countryCode string) Template {
	if tpl, ok := countryTemplates[countryCode]; ok {
		return tpl
	}
	return genericTemplate
}

// noPostalCodeCountries lists jurisdictions that do not use postal codes;
// validation treats the postal field as optional for them.
var noPostalCodeCountries = map[string]struct{}{
	"AE": {}, "AG": {}, "AO": {}, "AW": {}, "BF": {}, "BI": {}, "BJ": {},
	"BO": {}, "BQ": {}, "BS": {}, "BW": {}, "BZ": {}, "CD": {}, "CF": {},
	"CG": {}, "CI": {}, "CK": {}, "CM": {}, "CW": {}, "DJ": {}, "DM": {},
	"ER": {}, "FJ": {}, "GA": {}, "GD": {}, "GH": {}, "GM": {}, "GN": {},
	"GQ": {}, "GY": {}, "HK": {}, "KI": {}, "KM": {}, "KN": {}, "KP": {},
	"LC": {}, "ML": {}, "MO": {}, "MR": {}, "MS": {}, "MU": {}, "MW": {},
	"NR": {}, "NU": {}, "QA": {}, "RW": {}, "SB": {}, "SC": {}, "SL": {},
	"SO": {}, "SR": {}, "ST": {}, "SX": {}, "SY": {}, "TF": {}, "TG": {},
	"TK": {}, "TL": {}, "TO": {}, "TT": {}, "TV": {}, "UG": {}, "VU": {},
	"YE": {}, "ZW": {},
}

func postalCodeOptional(countryCode string) bool {
	_, ok := noPostalCodeCountries[countryCode]
	return ok
}

// subdivisionAbbr strips the country prefix from a compound subdivision
// code: "US-CA" becomes "CA".
func subdivisionAbbr(code string) string {
	if i := strings.IndexByte(code, '-'); i >= 0 {
		return code[i+1:]
	}
	return code
}
