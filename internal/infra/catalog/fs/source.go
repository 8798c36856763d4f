// Package fs provides a catalog source reading a JSON dataset document from
// the local filesystem.
package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"postalcore/internal/catalog"
)

// Source reads a dataset from a JSON file on disk.
type Source struct {
	path string
}

// New constructs a file-backed source for the given path.
func New(path string) *Source {
	return &Source{path: path}
}

// Driver identifies the backend.
func (s *Source) Driver() string { return "fs" }

// Load reads and decodes the dataset document.
func (s *Source) Load(_ context.Context) (catalog.Dataset, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return catalog.Dataset{}, fmt.Errorf("read catalog file: %w", err)
	}
	var ds catalog.Dataset
	if err := json.Unmarshal(raw, &ds); err != nil {
		return catalog.Dataset{}, fmt.Errorf("decode catalog file %s: %w", s.path, err)
	}
	return ds, nil
}
