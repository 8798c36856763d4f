// Package address defines the mutable postal address record together with
// the normalization, validation, and rendering logic that keeps it
// internally consistent against the territory hierarchy.
package address

import (
	"postalcore/pkg/territory"
)

// Field identifiers used in validation reports and rendering templates.
const (
	FieldLine1           = "line1"
	FieldLine2           = "line2"
	FieldPostalCode      = "postal_code"
	FieldCityName        = "city_name"
	FieldCountryCode     = "country_code"
	FieldSubdivisionCode = "subdivision_code"
)

// Fields is the plain value snapshot of an address. Every field is optional
// at construction; validation decides what a complete address requires.
type Fields struct {
	Line1           string `json:"line1,omitempty"`
	Line2           string `json:"line2,omitempty"`
	PostalCode      string `json:"postal_code,omitempty"`
	CityName        string `json:"city_name,omitempty"`
	CountryCode     string `json:"country_code,omitempty"`
	SubdivisionCode string `json:"subdivision_code,omitempty"`
}

// Address is a mutable address record bound to a territory resolver. In
// strict mode (the default) every mutation re-normalizes the record; in lax
// mode normalization only happens on an explicit Normalize call.
//
// An Address carries no internal locking: it is owned by a single caller,
// and sharing across concurrent writers requires external synchronization.
type Address struct {
	resolver *territory.Resolver
	fields   Fields
	strict   bool
}

// Option adjusts address construction.
type Option func(*Address)

// Lax defers normalization until Normalize is called explicitly.
func Lax() Option {
	return func(a *Address) { a.strict = false }
}

// New constructs an address from an arbitrary subset of fields. Strict mode
// normalizes immediately; lax mode stores the fields verbatim.
func New(resolver *territory.Resolver, fields Fields, opts ...Option) *Address {
	a := &Address{resolver: resolver, fields: fields, strict: true}
	for _, opt := range opts {
		opt(a)
	}
	if a.strict {
		a.Normalize()
	}
	return a
}

// Fields returns a copy of the current field values.
func (a *Address) Fields() Fields { return a.fields }

// Line1 returns the first street line.
func (a *Address) Line1() string { return a.fields.Line1 }

// Line2 returns the second street line.
func (a *Address) Line2() string { return a.fields.Line2 }

// PostalCode returns the postal code.
func (a *Address) PostalCode() string { return a.fields.PostalCode }

// CityName returns the city name.
func (a *Address) CityName() string { return a.fields.CityName }

// CountryCode returns the canonical country code, empty when unknown.
func (a *Address) CountryCode() string { return a.fields.CountryCode }

// SubdivisionCode returns the canonical subdivision code, empty when unknown.
func (a *Address) SubdivisionCode() string { return a.fields.SubdivisionCode }

// SetLine1 updates the first street line.
func (a *Address) SetLine1(v string) { a.fields.Line1 = v; a.renormalize() }

// SetLine2 updates the second street line.
func (a *Address) SetLine2(v string) { a.fields.Line2 = v; a.renormalize() }

// SetPostalCode updates the postal code.
func (a *Address) SetPostalCode(v string) { a.fields.PostalCode = v; a.renormalize() }

// SetCityName updates the city name.
func (a *Address) SetCityName(v string) { a.fields.CityName = v; a.renormalize() }

// SetCountryCode updates the country code; raw aliases are accepted and
// canonicalized by normalization.
func (a *Address) SetCountryCode(v string) { a.fields.CountryCode = v; a.renormalize() }

// SetSubdivisionCode updates the subdivision code; raw aliases are accepted
// and canonicalized by normalization.
func (a *Address) SetSubdivisionCode(v string) { a.fields.SubdivisionCode = v; a.renormalize() }

func (a *Address) renormalize() {
	if a.strict {
		a.Normalize()
	}
}

// Country returns the resolved country territory, nil when the code is
// empty or no longer backed by the graph.
func (a *Address) Country() *territory.Territory {
	if a.fields.CountryCode == "" {
		return nil
	}
	node, err := a.resolver.Graph().Lookup(a.fields.CountryCode)
	if err != nil || !node.IsCountry() {
		return nil
	}
	return node
}

// CountryName returns the country display name, empty when unresolved.
func (a *Address) CountryName() string {
	if c := a.Country(); c != nil {
		return c.Name
	}
	return ""
}

// Subdivision returns the resolved subdivision territory, nil when the code
// is empty or no longer backed by the graph.
func (a *Address) Subdivision() *territory.Territory {
	if a.fields.SubdivisionCode == "" {
		return nil
	}
	node, err := a.resolver.Graph().Lookup(a.fields.SubdivisionCode)
	if err != nil || node.IsCountry() {
		return nil
	}
	return node
}

// SubdivisionName returns the subdivision display name, empty when
// unresolved.
func (a *Address) SubdivisionName() string {
	if s := a.Subdivision(); s != nil {
		return s.Name
	}
	return ""
}

// Empty reports whether every field is blank.
func (a *Address) Empty() bool {
	return a.fields == Fields{}
}
