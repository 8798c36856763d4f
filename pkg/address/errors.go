package address

import "fmt"

// InvalidAddressError carries the full field-indexed validation report. It
// is the only error a typical caller sees after a normalize-then-validate
// flow: normalization absorbs resolution failures internally.
type InvalidAddressError struct {
	Report Report
}

func (e *InvalidAddressError) Error() string {
	return fmt.Sprintf("invalid address: %s", e.Report)
}

// NotRenderableError reports a render attempt on an address that is not
// validation-clean.
type NotRenderableError struct {
	Cause error
}

func (e *NotRenderableError) Error() string {
	return fmt.Sprintf("address not renderable: %v", e.Cause)
}

func (e *NotRenderableError) Unwrap() error { return e.Cause }
