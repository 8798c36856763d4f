package address

// Rule is a single validation check over a normalized address. Rules report
// every violation they find instead of stopping at the first.
type Rule interface {
	Name() string
	Evaluate(a *Address) Result
}

// RulesEngine runs an ordered rule set and aggregates their results.
// Registration order decides which rule wins when several flag the same
// field.
type RulesEngine struct {
	rules []Rule
}

// NewRulesEngine constructs an empty engine.
func NewRulesEngine() *RulesEngine {
	return &RulesEngine{}
}

// NewDefaultRulesEngine builds an engine with the built-in address checks.
func NewDefaultRulesEngine() *RulesEngine {
	engine := NewRulesEngine()
	engine.Register(CountryRule())
	engine.Register(SubdivisionRule())
	engine.Register(RequiredFieldsRule())
	return engine
}

// Register appends a rule to the engine.
func (e *RulesEngine) Register(rule Rule) {
	e.rules = append(e.rules, rule)
}

// Evaluate executes all registered rules and merges their results.
func (e *RulesEngine) Evaluate(a *Address) Result {
	var combined Result
	for _, rule := range e.rules {
		combined.Merge(rule.Evaluate(a))
	}
	return combined
}

var defaultEngine = NewDefaultRulesEngine()

// Validate checks the address as currently normalized and returns an
// *InvalidAddressError carrying the itemized report when anything fails.
// Success means the record is structurally and referentially sound, not
// that the address is deliverable.
func (a *Address) Validate() error {
	result := defaultEngine.Evaluate(a)
	report := newReport(result)
	if report.Empty() {
		return nil
	}
	return &InvalidAddressError{Report: report}
}

// Valid reports whether Validate passes.
func (a *Address) Valid() bool { return a.Validate() == nil }
