package catalog

import (
	"sort"

	"postalcore/pkg/territory"
)

// countryAliases binds country codes that are invalid in the ISO-3166 sense
// but common in the wild (European Commission usage) to their ISO
// counterparts.
var countryAliases = map[string]string{
	"UK": "GB", // United Kingdom is 'GB' in ISO-3166
	"EL": "GR", // European Commission spelling of Greece
}

// reservedCountryCodes binds exceptionally reserved ISO-3166 codes to the
// country administering the territory.
var reservedCountryCodes = map[string]string{
	"DG": "IO", // Diego Garcia, part of the British Indian Ocean Territory
	"FX": "FR", // France, Metropolitan
	"EA": "ES", // Ceuta and Melilla
}

// subdivisionCountries maps subdivision codes to the ISO 3166-1 country the
// territory was promoted to. These spellings stay out of the graph: the
// country node is the canonical form.
var subdivisionCountries = map[string]string{
	"CN-TW": "TW",
	"CN-HK": "HK",
	"CN-MO": "MO",
	"FI-01": "AX",
	"FR-BL": "BL",
	"FR-GF": "GF",
	"FR-GP": "GP",
	"FR-MF": "MF",
	"FR-MQ": "MQ",
	"FR-NC": "NC",
	"FR-PF": "PF",
	"FR-PM": "PM",
	"FR-RE": "RE",
	"FR-TF": "TF",
	"FR-WF": "WF",
	"FR-YT": "YT",
	"NL-AW": "AW",
	"NL-CW": "CW",
	"NL-SX": "SX",
	"NO-21": "SJ",
	"NO-22": "SJ",
	"US-AS": "AS",
	"US-GU": "GU",
	"US-MP": "MP",
	"US-PR": "PR",
	"US-UM": "UM",
	"US-VI": "VI",
}

// subdivisionAliases maps legacy subdivision spellings defined under a
// different country onto the canonical subdivision.
var subdivisionAliases = map[string]string{
	"NL-BQ1": "BQ-BO", // Bonaire
	"NL-BQ2": "BQ-SA", // Saba
	"NL-BQ3": "BQ-SE", // Sint Eustatius
}

// countryAliasToSubdivision binds invalid country codes to the subdivision
// actually designating the territory.
var countryAliasToSubdivision = map[string]string{
	"AC": "SH-AC", // Ascension Island
	"CP": "FR-CP", // Clipperton Island
	"IC": "ES-CN", // Canary Islands
	"TA": "SH-TA", // Tristan da Cunha
}

// foreignTerritories maps countries that are foreign territories of another
// country to the administering country. This is attachment metadata for
// locality determination, not aliasing: both sides are valid ISO countries.
var foreignTerritories = map[string]string{
	"CC": "AU", "HM": "AU",
	"HK": "CN", "MO": "CN",
	"FO": "DK",
	"AX": "FI",
	"AQ": "FR", "BL": "FR", "GF": "FR", "GP": "FR", "MF": "FR", "MQ": "FR",
	"NC": "FR", "PF": "FR", "PM": "FR", "RE": "FR", "TF": "FR", "WF": "FR", "YT": "FR",
	"GI": "GB", "IM": "GB", "IO": "GB", "PN": "GB", "SH": "GB", "VG": "GB",
	"BQ": "NL", "SX": "NL",
	"BV": "NO", "SJ": "NO",
	"AS": "US", "GU": "US", "MP": "US", "VI": "US",
}

// Aliases returns the static alias seed for the resolver, sorted for
// deterministic construction. The Kind on each entry describes the spelling
// shape, so a subdivision spelling may target a country code and vice versa.
func Aliases() []territory.Alias {
	var out []territory.Alias
	for name, code := range countryAliases {
		out = append(out, territory.Alias{Name: name, Code: code, Kind: territory.KindCountry})
	}
	for name, code := range reservedCountryCodes {
		out = append(out, territory.Alias{Name: name, Code: code, Kind: territory.KindCountry})
	}
	for name, code := range countryAliasToSubdivision {
		out = append(out, territory.Alias{Name: name, Code: code, Kind: territory.KindCountry})
	}
	for name, code := range subdivisionCountries {
		out = append(out, territory.Alias{Name: name, Code: code, Kind: territory.KindSubdivision})
	}
	for name, code := range subdivisionAliases {
		out = append(out, territory.Alias{Name: name, Code: code, Kind: territory.KindSubdivision})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Kind < out[j].Kind
	})
	return out
}

// AttachmentCountry returns the administering country of a foreign
// territory, or the input code when the territory stands on its own.
func AttachmentCountry(countryCode string) string {
	if top, ok := foreignTerritories[countryCode]; ok {
		return top
	}
	return countryCode
}
