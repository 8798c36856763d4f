// Package sqlite provides a catalog source backed by an embedded SQLite
// database, plus a Seed helper that materializes a dataset into it.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"postalcore/internal/catalog"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// Source reads a versioned catalog snapshot from a SQLite database.
type Source struct {
	db *sql.DB
}

// New opens (or creates) the SQLite database at path. Use ":memory:" for an
// ephemeral database in tests.
func New(path string) (*Source, error) {
	if path == "" {
		path = "postalcore.db"
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	return &Source{db: db}, nil
}

// Driver identifies the backend.
func (s *Source) Driver() string { return "sqlite" }

// Close releases the database handle.
func (s *Source) Close() error { return s.db.Close() }

const schemaDDL = `
CREATE TABLE IF NOT EXISTS catalog_meta (
	version TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS countries (
	code TEXT PRIMARY KEY,
	name TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS subdivisions (
	code TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	type TEXT NOT NULL DEFAULT '',
	country TEXT NOT NULL,
	parent TEXT NOT NULL DEFAULT ''
);`

// Seed replaces the stored snapshot with the supplied dataset inside one
// transaction.
func (s *Source) Seed(ctx context.Context, ds catalog.Dataset) (retErr error) {
	if _, err := s.db.ExecContext(ctx, schemaDDL); err != nil {
		return fmt.Errorf("create catalog schema: %w", err)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()
	for _, stmt := range []string{`DELETE FROM catalog_meta`, `DELETE FROM subdivisions`, `DELETE FROM countries`} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("clear catalog tables: %w", err)
		}
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO catalog_meta (version) VALUES (?)`, ds.Version); err != nil {
		return fmt.Errorf("insert version: %w", err)
	}
	for _, c := range ds.Countries {
		if _, err := tx.ExecContext(ctx, `INSERT INTO countries (code, name) VALUES (?, ?)`, c.Code, c.Name); err != nil {
			return fmt.Errorf("insert country %s: %w", c.Code, err)
		}
		for _, sub := range c.Subdivisions {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO subdivisions (code, name, type, country, parent) VALUES (?, ?, ?, ?, ?)`,
				sub.Code, sub.Name, sub.Type, c.Code, sub.Parent); err != nil {
				return fmt.Errorf("insert subdivision %s: %w", sub.Code, err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}
	return nil
}

// Load assembles the dataset from the stored snapshot in stable code order.
func (s *Source) Load(ctx context.Context) (catalog.Dataset, error) {
	var ds catalog.Dataset
	if err := s.db.QueryRowContext(ctx, `SELECT version FROM catalog_meta`).Scan(&ds.Version); err != nil {
		return catalog.Dataset{}, fmt.Errorf("read catalog version: %w", err)
	}

	subsByCountry := make(map[string][]catalog.Subdivision)
	rows, err := s.db.QueryContext(ctx, `SELECT code, name, type, country, parent FROM subdivisions ORDER BY code`)
	if err != nil {
		return catalog.Dataset{}, fmt.Errorf("read subdivisions: %w", err)
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var sub catalog.Subdivision
		var country string
		if err := rows.Scan(&sub.Code, &sub.Name, &sub.Type, &country, &sub.Parent); err != nil {
			return catalog.Dataset{}, fmt.Errorf("scan subdivision: %w", err)
		}
		subsByCountry[country] = append(subsByCountry[country], sub)
	}
	if err := rows.Err(); err != nil {
		return catalog.Dataset{}, fmt.Errorf("iterate subdivisions: %w", err)
	}

	countryRows, err := s.db.QueryContext(ctx, `SELECT code, name FROM countries ORDER BY code`)
	if err != nil {
		return catalog.Dataset{}, fmt.Errorf("read countries: %w", err)
	}
	defer func() { _ = countryRows.Close() }()
	for countryRows.Next() {
		var c catalog.Country
		if err := countryRows.Scan(&c.Code, &c.Name); err != nil {
			return catalog.Dataset{}, fmt.Errorf("scan country: %w", err)
		}
		c.Subdivisions = subsByCountry[c.Code]
		ds.Countries = append(ds.Countries, c)
	}
	if err := countryRows.Err(); err != nil {
		return catalog.Dataset{}, fmt.Errorf("iterate countries: %w", err)
	}
	return ds, nil
}
