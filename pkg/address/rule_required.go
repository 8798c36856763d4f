package address

// RequiredFieldsRule checks the non-territory fields the selected country's
// rendering template needs. Without a resolvable country no template is
// selected and the rule stays silent; the country rule already reports the
// root problem in that case.
func RequiredFieldsRule() Rule { return requiredFieldsRule{} }

type requiredFieldsRule struct{}

func (requiredFieldsRule) Name() string { return "required_fields" }

func (requiredFieldsRule) Evaluate(a *Address) Result {
	country := a.Country()
	if country == nil {
		return Result{}
	}
	var res Result
	if a.Line1() == "" {
		res.Violations = append(res.Violations, Violation{
			Rule:    "required_fields",
			Field:   FieldLine1,
			Kind:    KindRequired,
			Message: "street line is required",
		})
	}
	if a.CityName() == "" {
		res.Violations = append(res.Violations, Violation{
			Rule:    "required_fields",
			Field:   FieldCityName,
			Kind:    KindRequired,
			Message: "city name is required",
		})
	}
	if a.PostalCode() == "" && !postalCodeOptional(country.Code) {
		res.Violations = append(res.Violations, Violation{
			Rule:    "required_fields",
			Field:   FieldPostalCode,
			Kind:    KindRequired,
			Message: "postal code is required for " + country.Code,
		})
	}
	return res
}
