package address

import (
	"testing"

	"postalcore/pkg/territory"
)

func testResolver(t *testing.T) *territory.Resolver {
	t.Helper()
	g, err := territory.NewGraph([]territory.Node{
		{Code: "US", Name: "United States", Kind: territory.KindCountry},
		{Code: "US-CA", Name: "California", Kind: territory.KindSubdivision, SubdivisionType: "state", Parent: "US"},
		{Code: "US-NY", Name: "New York", Kind: territory.KindSubdivision, SubdivisionType: "state", Parent: "US"},
		{Code: "FR", Name: "France", Kind: territory.KindCountry},
		{Code: "FR-IDF", Name: "Île-de-France", Kind: territory.KindSubdivision, SubdivisionType: "region", Parent: "FR"},
		{Code: "GB", Name: "United Kingdom", Kind: territory.KindCountry},
		{Code: "DE", Name: "Germany", Kind: territory.KindCountry},
		{Code: "DE-BE", Name: "Berlin", Kind: territory.KindSubdivision, SubdivisionType: "state", Parent: "DE"},
		{Code: "PR", Name: "Puerto Rico", Kind: territory.KindCountry},
		{Code: "ES", Name: "Spain", Kind: territory.KindCountry},
		{Code: "ES-CN", Name: "Canarias", Kind: territory.KindSubdivision, SubdivisionType: "community", Parent: "ES"},
		{Code: "QA", Name: "Qatar", Kind: territory.KindCountry},
	})
	if err != nil {
		t.Fatalf("NewGraph: %v", err)
	}
	return territory.NewResolver(g, []territory.Alias{
		{Name: "UK", Code: "GB", Kind: territory.KindCountry},
		{Name: "US-PR", Code: "PR", Kind: territory.KindSubdivision},
		{Name: "IC", Code: "ES-CN", Kind: territory.KindCountry},
	})
}

func TestNormalizeDerivesCountryFromSubdivision(t *testing.T) {
	a := New(testResolver(t), Fields{SubdivisionCode: "us-ca"})
	if a.CountryCode() != "US" {
		t.Fatalf("expected derived country US, got %q", a.CountryCode())
	}
	if a.SubdivisionCode() != "US-CA" {
		t.Fatalf("expected canonical US-CA, got %q", a.SubdivisionCode())
	}
}

func TestNormalizeResolvesCountryNameAndPostalCode(t *testing.T) {
	a := New(testResolver(t), Fields{
		CountryCode: "France",
		PostalCode:  "75001 ",
	})
	if a.CountryCode() != "FR" {
		t.Fatalf("expected FR, got %q", a.CountryCode())
	}
	if a.PostalCode() != "75001" {
		t.Fatalf("expected 75001, got %q", a.PostalCode())
	}
}

func TestNormalizeCountryWinsOverSubdivision(t *testing.T) {
	a := New(testResolver(t), Fields{
		CountryCode:     "FR",
		SubdivisionCode: "US-CA",
	})
	if a.CountryCode() != "FR" {
		t.Fatalf("expected FR retained, got %q", a.CountryCode())
	}
	if a.SubdivisionCode() != "" {
		t.Fatalf("expected contradictory subdivision cleared, got %q", a.SubdivisionCode())
	}
}

func TestNormalizeClearsUnresolvableTerritories(t *testing.T) {
	a := New(testResolver(t), Fields{
		CountryCode:     "Atlantis",
		SubdivisionCode: "Middle Earth",
	})
	if a.CountryCode() != "" || a.SubdivisionCode() != "" {
		t.Fatalf("expected both fields cleared, got %q / %q", a.CountryCode(), a.SubdivisionCode())
	}
}

func TestNormalizeKeepsProvisionalCodes(t *testing.T) {
	// Well-formed codes without graph backing survive normalization; the
	// validation report flags them.
	a := New(testResolver(t), Fields{CountryCode: "ZQ"})
	if a.CountryCode() != "ZQ" {
		t.Fatalf("expected provisional ZQ retained, got %q", a.CountryCode())
	}
	if a.Valid() {
		t.Fatalf("provisional code must fail validation")
	}
}

func TestNormalizePromotedSubdivisionBecomesCountry(t *testing.T) {
	a := New(testResolver(t), Fields{SubdivisionCode: "US-PR"})
	if a.CountryCode() != "PR" {
		t.Fatalf("expected promoted country PR, got %q", a.CountryCode())
	}
	if a.SubdivisionCode() != "" {
		t.Fatalf("expected subdivision cleared after promotion, got %q", a.SubdivisionCode())
	}
}

func TestNormalizeCountryAliasDesignatingSubdivision(t *testing.T) {
	// "IC" is an exceptionally reserved country spelling for the Canary
	// Islands; it shifts into the subdivision field and re-derives Spain.
	a := New(testResolver(t), Fields{CountryCode: "IC"})
	if a.CountryCode() != "ES" {
		t.Fatalf("expected ES, got %q", a.CountryCode())
	}
	if a.SubdivisionCode() != "ES-CN" {
		t.Fatalf("expected ES-CN, got %q", a.SubdivisionCode())
	}
}

func TestNormalizePromotesLoneSecondLine(t *testing.T) {
	a := New(testResolver(t), Fields{Line2: "  42   Main St "})
	if a.Line1() != "42 Main St" || a.Line2() != "" {
		t.Fatalf("expected line promotion, got %q / %q", a.Line1(), a.Line2())
	}
}

func TestNormalizePostalCodeCleanup(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"75001 ", "75001"},
		{"  sw1a 1aa ", "SW1A 1AA"},
		{"12345-  6789", "12345-6789"},
		{"12345 - 6789", "12345-6789"},
		{"--12345--", "12345"},
		{"#!@", ""},
	}
	r := testResolver(t)
	for _, tc := range cases {
		a := New(r, Fields{PostalCode: tc.in})
		if got := a.PostalCode(); got != tc.want {
			t.Errorf("postal %q -> %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	a := New(testResolver(t), Fields{
		Line1:           " 10   Downing St ",
		CityName:        "London",
		PostalCode:      "sw1a 2aa",
		CountryCode:     "UK",
		SubdivisionCode: "",
	})
	first := a.Fields()
	a.Normalize()
	if a.Fields() != first {
		t.Fatalf("normalization not idempotent: %+v vs %+v", a.Fields(), first)
	}
}

func TestLaxModeDefersNormalization(t *testing.T) {
	a := New(testResolver(t), Fields{CountryCode: "France"}, Lax())
	if a.CountryCode() != "France" {
		t.Fatalf("lax mode must store fields verbatim, got %q", a.CountryCode())
	}
	a.Normalize()
	if a.CountryCode() != "FR" {
		t.Fatalf("explicit Normalize must canonicalize, got %q", a.CountryCode())
	}
}

func TestSettersRenormalize(t *testing.T) {
	a := New(testResolver(t), Fields{})
	a.SetCountryCode("germany")
	if a.CountryCode() != "DE" {
		t.Fatalf("setter must renormalize, got %q", a.CountryCode())
	}
	a.SetSubdivisionCode("berlin")
	if a.SubdivisionCode() != "DE-BE" {
		t.Fatalf("expected DE-BE, got %q", a.SubdivisionCode())
	}
}

func TestDerivedAccessors(t *testing.T) {
	a := New(testResolver(t), Fields{SubdivisionCode: "FR-IDF"})
	if a.CountryName() != "France" {
		t.Fatalf("CountryName = %q", a.CountryName())
	}
	if a.SubdivisionName() != "Île-de-France" {
		t.Fatalf("SubdivisionName = %q", a.SubdivisionName())
	}
	if sub := a.Subdivision(); sub == nil || sub.SubdivisionType != "region" {
		t.Fatalf("Subdivision = %+v", sub)
	}

	empty := New(testResolver(t), Fields{})
	if !empty.Empty() {
		t.Fatalf("expected Empty")
	}
	if empty.Country() != nil || empty.Subdivision() != nil {
		t.Fatalf("expected nil derived territories on empty address")
	}
}
