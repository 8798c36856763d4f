package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestCLIVerifiesEmbeddedCatalog(t *testing.T) {
	t.Setenv("POSTALCORE_CATALOG_DRIVER", "embedded")
	var stdout, stderr bytes.Buffer
	code := cli(nil, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit %d, stderr: %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "no findings") {
		t.Fatalf("unexpected output: %s", stdout.String())
	}
}

func TestCLIJSONFormat(t *testing.T) {
	t.Setenv("POSTALCORE_CATALOG_DRIVER", "embedded")
	var stdout, stderr bytes.Buffer
	code := cli([]string{"-format", "json"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit %d, stderr: %s", code, stderr.String())
	}
	var out jsonReport
	if err := json.Unmarshal(stdout.Bytes(), &out); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if !out.Clean || out.Version == "" || out.Driver != "memory" {
		t.Fatalf("unexpected report: %+v", out)
	}
}

func TestCLIUnknownFormat(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := cli([]string{"-format", "yaml"}, &stdout, &stderr); code != 2 {
		t.Fatalf("expected usage exit, got %d", code)
	}
}

func TestCLIUnknownDriver(t *testing.T) {
	t.Setenv("POSTALCORE_CATALOG_DRIVER", "warehouse")
	var stdout, stderr bytes.Buffer
	if code := cli(nil, &stdout, &stderr); code != 1 {
		t.Fatalf("expected failure exit, got %d", code)
	}
}
