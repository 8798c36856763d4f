// Package postgres provides a catalog source backed by a PostgreSQL server,
// mirroring the SQLite snapshot schema.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"postalcore/internal/catalog"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
)

const (
	defaultDriver = "pgx"
	defaultDSN    = "postgres://localhost/postalcore?sslmode=disable"
)

var (
	sqlOpen = sql.Open
	openMu  sync.Mutex
)

// Source reads a versioned catalog snapshot from Postgres.
type Source struct {
	db *sql.DB
}

// New opens a Postgres-backed source using the provided DSN (falls back to
// defaultDSN) and verifies connectivity.
func New(ctx context.Context, dsn string) (*Source, error) {
	if dsn == "" {
		dsn = defaultDSN
	}
	openMu.Lock()
	db, err := sqlOpen(defaultDriver, dsn)
	openMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &Source{db: db}, nil
}

// Driver identifies the backend.
func (s *Source) Driver() string { return "postgres" }

// Close releases the database handle.
func (s *Source) Close() error { return s.db.Close() }

// DB exposes the underlying handle for integration testing hooks.
func (s *Source) DB() *sql.DB { return s.db }

var schemaDDL = []string{
	`CREATE TABLE IF NOT EXISTS catalog_meta (version TEXT NOT NULL)`,
	`CREATE TABLE IF NOT EXISTS countries (code TEXT PRIMARY KEY, name TEXT NOT NULL)`,
	`CREATE TABLE IF NOT EXISTS subdivisions (
		code TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		type TEXT NOT NULL DEFAULT '',
		country TEXT NOT NULL,
		parent TEXT NOT NULL DEFAULT '')`,
}

// Seed replaces the stored snapshot with the supplied dataset inside one
// transaction.
func (s *Source) Seed(ctx context.Context, ds catalog.Dataset) (retErr error) {
	for _, stmt := range schemaDDL {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create catalog schema: %w", err)
		}
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
	if _, err := tx.ExecContext(ctx, `TRUNCATE TABLE catalog_meta, countries, subdivisions`); err != nil {
		return fmt.Errorf("clear catalog tables: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO catalog_meta (version) VALUES ($1)`, ds.Version); err != nil {
		return fmt.Errorf("insert version: %w", err)
	}
	for _, c := range ds.Countries {
		if _, err := tx.ExecContext(ctx, `INSERT INTO countries (code, name) VALUES ($1, $2)`, c.Code, c.Name); err != nil {
			return fmt.Errorf("insert country %s: %w", c.Code, err)
		}
		for _, sub := range c.Subdivisions {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO subdivisions (code, name, type, country, parent) VALUES ($1, $2, $3, $4, $5)`,
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
	if err := s.queryRows(ctx, `SELECT code, name, type, country, parent FROM subdivisions ORDER BY code`, func(rows *sql.Rows) error {
		var sub catalog.Subdivision
		var country string
		if err := rows.Scan(&sub.Code, &sub.Name, &sub.Type, &country, &sub.Parent); err != nil {
			return fmt.Errorf("scan subdivision: %w", err)
		}
		subsByCountry[country] = append(subsByCountry[country], sub)
		return nil
	}); err != nil {
		return catalog.Dataset{}, err
	}

	if err := s.queryRows(ctx, `SELECT code, name FROM countries ORDER BY code`, func(rows *sql.Rows) error {
		var c catalog.Country
		if err := rows.Scan(&c.Code, &c.Name); err != nil {
			return fmt.Errorf("scan country: %w", err)
		}
		c.Subdivisions = subsByCountry[c.Code]
		ds.Countries = append(ds.Countries, c)
		return nil
	}); err != nil {
		return catalog.Dataset{}, err
	}
	return ds, nil
}

func (s *Source) queryRows(ctx context.Context, query string, scan func(*sql.Rows) error) error {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("query catalog: %w", err)
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate catalog rows: %w", err)
	}
	return nil
}
