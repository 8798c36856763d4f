package address

import (
	"fmt"
	"sort"
	"strings"
)

// ViolationKind classifies why a field failed validation, mirroring the
// required / invalid / inconsistent split surfaced to billing callers.
type ViolationKind string

const (
	// KindRequired marks a field that must be set but is empty.
	KindRequired ViolationKind = "required"
	// KindInvalid marks a field whose value has no backing territory.
	KindInvalid ViolationKind = "invalid"
	// KindInconsistent marks a field that contradicts another field.
	KindInconsistent ViolationKind = "inconsistent"
)

// Violation reports a single failed validation check.
type Violation struct {
	Rule    string        `json:"rule"`
	Field   string        `json:"field"`
	Kind    ViolationKind `json:"kind"`
	Message string        `json:"message"`
}

// Result aggregates violations from the validation rules.
type Result struct {
	Violations []Violation
}

// Merge appends violations from another result.
func (r *Result) Merge(other Result) {
	if len(other.Violations) == 0 {
		return
	}
	r.Violations = append(r.Violations, other.Violations...)
}

// Report is the itemized outcome of validation: at most one violation per
// field, in stable field-name order, so two runs over the same invalid
// input always report identically.
type Report struct {
	violations []Violation
}

// newReport deduplicates to the first violation per field (rule registration
// order decides precedence) and sorts by field name.
func newReport(res Result) Report {
	seen := make(map[string]struct{}, len(res.Violations))
	var kept []Violation
	for _, v := range res.Violations {
		if _, dup := seen[v.Field]; dup {
			continue
		}
		seen[v.Field] = struct{}{}
		kept = append(kept, v)
	}
	sort.Slice(kept, func(i, j int) bool { return kept[i].Field < kept[j].Field })
	return Report{violations: kept}
}

// Empty reports whether the validation run found no violations.
func (r Report) Empty() bool { return len(r.violations) == 0 }

// Len returns the number of violated fields.
func (r Report) Len() int { return len(r.violations) }

// Violations returns the violations in stable field order.
func (r Report) Violations() []Violation {
	out := make([]Violation, len(r.violations))
	copy(out, r.violations)
	return out
}

// Fields returns the violated field names in stable sorted order.
func (r Report) Fields() []string {
	out := make([]string, len(r.violations))
	for i, v := range r.violations {
		out[i] = v.Field
	}
	return out
}

// ByField returns the violation recorded for the given field.
func (r Report) ByField(field string) (Violation, bool) {
	for _, v := range r.violations {
		if v.Field == field {
			return v, true
		}
	}
	return Violation{}, false
}

func (r Report) String() string {
	parts := make([]string, len(r.violations))
	for i, v := range r.violations {
		parts[i] = fmt.Sprintf("%s: %s (%s)", v.Field, v.Message, v.Kind)
	}
	return strings.Join(parts, "; ")
}
