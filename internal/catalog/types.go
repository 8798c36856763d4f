// Package catalog defines the reference dataset of countries and
// subdivisions consumed once at graph construction, the static alias data
// reconciling legacy and exceptional territory codes, and the integrity
// checks run over a dataset before it is trusted.
package catalog

import "context"

// Subdivision is one administrative subdivision record. Parent names the
// containing subdivision code for nested levels and is empty for top-level
// subdivisions, whose parent is the country itself.
type Subdivision struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Type   string `json:"type,omitempty"`
	Parent string `json:"parent,omitempty"`
}

// Country is one country record with its direct and nested subdivisions.
type Country struct {
	Code         string        `json:"code"`
	Name         string        `json:"name"`
	Subdivisions []Subdivision `json:"subdivisions,omitempty"`
}

// Dataset is a versioned reference catalog snapshot.
type Dataset struct {
	Version   string    `json:"version"`
	Countries []Country `json:"countries"`
}

// Source supplies a dataset from some backing medium. Loading happens once
// at service construction; the engine performs no catalog I/O afterwards.
type Source interface {
	Driver() string
	Load(ctx context.Context) (Dataset, error)
}
