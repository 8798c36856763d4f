// Command address-check normalizes, validates, or renders a postal address
// supplied as a JSON field document on stdin or from a file.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"postalcore/internal/core"
	"postalcore/pkg/address"
)

var exitFunc = os.Exit

func main() {
	code := cli(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	exitFunc(code)
}

func cli(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("address-check", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		mode string
		path string
		lax  bool
	)
	fs.StringVar(&mode, "mode", "validate", "operation: normalize|validate|render")
	fs.StringVar(&path, "input", "", "path to JSON field document (default stdin)")
	fs.BoolVar(&lax, "lax", false, "skip normalization and inspect the fields as supplied")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	fields, err := readFields(stdin, path)
	if err != nil {
		fmt.Fprintf(stderr, "read address: %v\n", err)
		return 2
	}

	svc, err := core.DefaultService()
	if err != nil {
		fmt.Fprintf(stderr, "initialize service: %v\n", err)
		return 1
	}

	newAddr := svc.NewAddress
	if lax {
		newAddr = svc.NewLaxAddress
	}

	switch mode {
	case "normalize":
		return runNormalize(newAddr, fields, stdout, stderr)
	case "validate":
		return runValidate(newAddr, fields, stdout, stderr)
	case "render":
		return runRender(newAddr, fields, stdout, stderr)
	default:
		fmt.Fprintf(stderr, "unknown mode %q\n", mode)
		return 2
	}
}

func readFields(stdin io.Reader, path string) (address.Fields, error) {
	var raw []byte
	var err error
	if path == "" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(path) // #nosec G304: operator-supplied input path
	}
	if err != nil {
		return address.Fields{}, err
	}
	var fields address.Fields
	if err := json.Unmarshal(raw, &fields); err != nil {
		return address.Fields{}, fmt.Errorf("decode fields: %w", err)
	}
	return fields, nil
}

func runNormalize(newAddr func(address.Fields) *address.Address, fields address.Fields, stdout, stderr io.Writer) int {
	return writeJSON(stdout, stderr, newAddr(fields).Fields())
}

func runValidate(newAddr func(address.Fields) *address.Address, fields address.Fields, stdout, stderr io.Writer) int {
	var report address.Report
	if err := newAddr(fields).Validate(); err != nil {
		var invalid *address.InvalidAddressError
		if !errors.As(err, &invalid) {
			fmt.Fprintf(stderr, "validate: %v\n", err)
			return 1
		}
		report = invalid.Report
	}
	out := struct {
		Valid      bool                `json:"valid"`
		Violations []address.Violation `json:"violations"`
	}{
		Valid:      report.Empty(),
		Violations: report.Violations(),
	}
	if code := writeJSON(stdout, stderr, out); code != 0 {
		return code
	}
	if !report.Empty() {
		return 1
	}
	return 0
}

func runRender(newAddr func(address.Fields) *address.Address, fields address.Fields, stdout, stderr io.Writer) int {
	rendered, err := newAddr(fields).Render()
	if err != nil {
		var notRenderable *address.NotRenderableError
		if errors.As(err, &notRenderable) {
			fmt.Fprintf(stderr, "address not renderable: %v\n", notRenderable.Cause)
			return 1
		}
		fmt.Fprintf(stderr, "render: %v\n", err)
		return 1
	}
	fmt.Fprintln(stdout, rendered)
	return 0
}

func writeJSON(stdout, stderr io.Writer, v any) int {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(stderr, "write output: %v\n", err)
		return 1
	}
	return 0
}
