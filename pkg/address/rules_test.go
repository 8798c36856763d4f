package address

import (
	"errors"
	"reflect"
	"testing"
)

func TestValidateEmptyAddressReportsOnlyCountry(t *testing.T) {
	a := New(testResolver(t), Fields{})
	err := a.Validate()
	var invalid *InvalidAddressError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidAddressError, got %v", err)
	}
	report := invalid.Report
	if report.Len() != 1 {
		t.Fatalf("expected exactly one violation, got %s", report.String())
	}
	v, ok := report.ByField(FieldCountryCode)
	if !ok {
		t.Fatalf("expected country_code violation")
	}
	if v.Kind != KindRequired {
		t.Fatalf("expected required, got %s", v.Kind)
	}
}

func TestValidateCompleteAddressPasses(t *testing.T) {
	a := New(testResolver(t), Fields{
		Line1:           "1 Infinite Loop",
		CityName:        "Cupertino",
		PostalCode:      "95014",
		CountryCode:     "US",
		SubdivisionCode: "US-CA",
	})
	if err := a.Validate(); err != nil {
		t.Fatalf("expected valid address, got %v", err)
	}
	if !a.Valid() {
		t.Fatalf("Valid() disagreed with Validate()")
	}
}

func TestValidateMissingRequiredFields(t *testing.T) {
	a := New(testResolver(t), Fields{CountryCode: "US"})
	err := a.Validate()
	var invalid *InvalidAddressError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidAddressError, got %v", err)
	}
	want := []string{FieldCityName, FieldLine1, FieldPostalCode}
	if got := invalid.Report.Fields(); !reflect.DeepEqual(got, want) {
		t.Fatalf("violated fields = %v, want %v", got, want)
	}
	for _, f := range want {
		if v, _ := invalid.Report.ByField(f); v.Kind != KindRequired {
			t.Fatalf("field %s: expected required, got %s", f, v.Kind)
		}
	}
}

func TestValidatePostalCodeOptionalCountries(t *testing.T) {
	a := New(testResolver(t), Fields{
		Line1:       "PO Box 22",
		CityName:    "Doha",
		CountryCode: "QA",
	})
	if err := a.Validate(); err != nil {
		t.Fatalf("postal code must be optional for QA, got %v", err)
	}
}

func TestValidateUnknownCountryCode(t *testing.T) {
	a := New(testResolver(t), Fields{
		Line1:       "somewhere",
		CityName:    "nowhere",
		PostalCode:  "123",
		CountryCode: "ZQ",
	})
	err := a.Validate()
	var invalid *InvalidAddressError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidAddressError, got %v", err)
	}
	v, ok := invalid.Report.ByField(FieldCountryCode)
	if !ok || v.Kind != KindInvalid {
		t.Fatalf("expected invalid country_code, got %s", invalid.Report.String())
	}
	// Without a resolvable country the required-fields rule stays silent.
	if invalid.Report.Len() != 1 {
		t.Fatalf("expected single violation, got %s", invalid.Report.String())
	}
}

func TestValidateProvisionalSubdivision(t *testing.T) {
	// A well-formed subdivision code with no graph backing survives
	// normalization and is flagged as invalid here.
	a := New(testResolver(t), Fields{
		Line1:           "somewhere",
		CityName:        "nowhere",
		PostalCode:      "123",
		CountryCode:     "US",
		SubdivisionCode: "US-ZZ",
	})
	err := a.Validate()
	var invalid *InvalidAddressError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidAddressError, got %v", err)
	}
	v, ok := invalid.Report.ByField(FieldSubdivisionCode)
	if !ok || v.Kind != KindInvalid {
		t.Fatalf("expected invalid subdivision_code, got %s", invalid.Report.String())
	}
}

func TestValidateInconsistentSubdivisionInLaxMode(t *testing.T) {
	// Strict normalization resolves the contradiction in the country's favor;
	// lax mode lets validation surface it instead.
	a := New(testResolver(t), Fields{
		Line1:           "1 Rue de Rivoli",
		CityName:        "Paris",
		PostalCode:      "75001",
		CountryCode:     "FR",
		SubdivisionCode: "US-CA",
	}, Lax())
	err := a.Validate()
	var invalid *InvalidAddressError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidAddressError, got %v", err)
	}
	v, ok := invalid.Report.ByField(FieldSubdivisionCode)
	if !ok || v.Kind != KindInconsistent {
		t.Fatalf("expected inconsistent subdivision_code, got %s", invalid.Report.String())
	}
}

func TestValidateReportDeterministic(t *testing.T) {
	fields := Fields{CountryCode: "US"}
	r := testResolver(t)
	first := New(r, fields).Validate()
	for i := 0; i < 5; i++ {
		again := New(r, fields).Validate()
		if again.Error() != first.Error() {
			t.Fatalf("validation output changed on run %d:\n%v\n%v", i, again, first)
		}
	}
}

func TestRulesEngineRegistrationOrderWins(t *testing.T) {
	engine := NewRulesEngine()
	engine.Register(stubRule{field: FieldLine1, message: "first"})
	engine.Register(stubRule{field: FieldLine1, message: "second"})

	a := New(testResolver(t), Fields{})
	report := newReport(engine.Evaluate(a))
	v, ok := report.ByField(FieldLine1)
	if !ok || v.Message != "first" {
		t.Fatalf("expected first-registered rule to win, got %+v", v)
	}
}

type stubRule struct {
	field   string
	message string
}

func (s stubRule) Name() string { return "stub" }

func (s stubRule) Evaluate(*Address) Result {
	return Result{Violations: []Violation{{Rule: "stub", Field: s.field, Kind: KindInvalid, Message: s.message}}}
}

func TestReportAccessors(t *testing.T) {
	report := newReport(Result{Violations: []Violation{
		{Rule: "b", Field: "zeta", Kind: KindInvalid, Message: "z"},
		{Rule: "a", Field: "alpha", Kind: KindRequired, Message: "a"},
		{Rule: "c", Field: "zeta", Kind: KindInconsistent, Message: "dup"},
	}})
	if report.Len() != 2 {
		t.Fatalf("expected dedup to 2, got %d", report.Len())
	}
	if got := report.Fields(); !reflect.DeepEqual(got, []string{"alpha", "zeta"}) {
		t.Fatalf("Fields = %v", got)
	}
	if v, _ := report.ByField("zeta"); v.Message != "z" {
		t.Fatalf("first violation per field must win, got %+v", v)
	}
	if report.Empty() {
		t.Fatalf("report should not be empty")
	}
	if report.String() == "" {
		t.Fatalf("expected printable report")
	}
	if _, ok := report.ByField("missing"); ok {
		t.Fatalf("ByField on absent field must miss")
	}
}
