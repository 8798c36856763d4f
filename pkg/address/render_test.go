package address

import (
	"errors"
	"strings"
	"testing"
)

func TestRenderLocalityFirstCountry(t *testing.T) {
	a := New(testResolver(t), Fields{
		Line1:           "1 Infinite Loop",
		CityName:        "Cupertino",
		PostalCode:      "95014",
		CountryCode:     "US",
		SubdivisionCode: "US-CA",
	})
	got, err := a.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := strings.Join([]string{
		"1 Infinite Loop",
		"Cupertino CA 95014",
		"United States",
	}, "\n")
	if got != want {
		t.Fatalf("rendered:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderGenericTemplate(t *testing.T) {
	a := New(testResolver(t), Fields{
		Line1:           "1 Rue de Rivoli",
		Line2:           "Appartement 4",
		CityName:        "Paris",
		PostalCode:      "75001",
		CountryCode:     "FR",
		SubdivisionCode: "FR-IDF",
	})
	got, err := a.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := strings.Join([]string{
		"1 Rue de Rivoli",
		"Appartement 4",
		"75001 Paris",
		"Île-de-France",
		"France",
	}, "\n")
	if got != want {
		t.Fatalf("rendered:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderTownThenPostal(t *testing.T) {
	a := New(testResolver(t), Fields{
		Line1:       "10 Downing Street",
		CityName:    "London",
		PostalCode:  "SW1A 2AA",
		CountryCode: "GB",
	})
	got, err := a.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := strings.Join([]string{
		"10 Downing Street",
		"London",
		"SW1A 2AA",
		"United Kingdom",
	}, "\n")
	if got != want {
		t.Fatalf("rendered:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderSuppressesRedundantSubdivision(t *testing.T) {
	a := New(testResolver(t), Fields{
		Line1:           "Unter den Linden 1",
		CityName:        "Berlin",
		PostalCode:      "10117",
		CountryCode:     "DE",
		SubdivisionCode: "DE-BE",
	})
	got, err := a.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Count(got, "Berlin") != 1 {
		t.Fatalf("subdivision repeating the city must be suppressed:\n%s", got)
	}
}

func TestRenderRejectsInvalidAddress(t *testing.T) {
	a := New(testResolver(t), Fields{Line1: "somewhere"})
	_, err := a.Render()
	var notRenderable *NotRenderableError
	if !errors.As(err, &notRenderable) {
		t.Fatalf("expected NotRenderableError, got %v", err)
	}
	var invalid *InvalidAddressError
	if !errors.As(err, &invalid) {
		t.Fatalf("cause must carry the validation report, got %v", notRenderable.Cause)
	}
}
