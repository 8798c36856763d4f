// Command catalog-check verifies the integrity of a territory catalog
// dataset: code shapes, namespacing, parent chains, and alias consistency.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"postalcore/internal/catalog"
	"postalcore/internal/core"
)

var exitFunc = os.Exit

func main() {
	code := cli(os.Args[1:], os.Stdout, os.Stderr)
	exitFunc(code)
}

func cli(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("catalog-check", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var format string
	fs.StringVar(&format, "format", "text", "output format: text|json")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if format != "text" && format != "json" {
		fmt.Fprintf(stderr, "unknown format %q\n", format)
		return 2
	}

	src, err := core.OpenCatalogSource(context.Background())
	if err != nil {
		fmt.Fprintf(stderr, "open catalog: %v\n", err)
		return 1
	}
	ds, err := src.Load(context.Background())
	if err != nil {
		fmt.Fprintf(stderr, "load catalog: %v\n", err)
		return 1
	}

	findings := catalog.Verify(ds)
	if err := report(stdout, format, src.Driver(), ds, findings); err != nil {
		fmt.Fprintf(stderr, "write report: %v\n", err)
		return 1
	}
	if len(findings) > 0 {
		return 1
	}
	return 0
}

type jsonReport struct {
	Version  string            `json:"version"`
	Driver   string            `json:"driver,omitempty"`
	Findings []catalog.Finding `json:"findings"`
	Clean    bool              `json:"clean"`
}

func report(w io.Writer, format, driver string, ds catalog.Dataset, findings []catalog.Finding) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(jsonReport{
			Version:  ds.Version,
			Driver:   driver,
			Findings: findings,
			Clean:    len(findings) == 0,
		})
	}
	if len(findings) == 0 {
		_, err := fmt.Fprintf(w, "Catalog %s verified: no findings.\n", ds.Version)
		return err
	}
	for _, f := range findings {
		if _, err := fmt.Fprintln(w, f.String()); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Catalog %s: %d findings.\n", ds.Version, len(findings))
	return err
}
