package territory

import (
	"fmt"
	"strings"
)

// ErrNotFound reports a failed exact canonical-code lookup.
type ErrNotFound struct {
	Code string
}

func (e ErrNotFound) Error() string {
	return fmt.Sprintf("territory %q not found", e.Code)
}

// ErrUnresolvable reports an alias that could not be mapped to a canonical
// code. Candidates is populated when the alias is ambiguous; ambiguity is
// surfaced to the caller instead of being resolved by guesswork.
type ErrUnresolvable struct {
	Input      string
	Kind       Kind
	Candidates []string
}

func (e ErrUnresolvable) Error() string {
	if len(e.Candidates) > 1 {
		return fmt.Sprintf("ambiguous %s alias %q: candidates %s", e.Kind, e.Input, strings.Join(e.Candidates, ", "))
	}
	return fmt.Sprintf("unresolvable %s alias %q", e.Kind, e.Input)
}
