package core

import (
	"context"
	"fmt"
	"os"

	"postalcore/internal/catalog"
	catfs "postalcore/internal/infra/catalog/fs"
	"postalcore/internal/infra/catalog/memory"
	"postalcore/internal/infra/catalog/postgres"
	cats3 "postalcore/internal/infra/catalog/s3"
	"postalcore/internal/infra/catalog/sqlite"
)

// CatalogDriver identifies a concrete catalog source implementation.
type CatalogDriver string

const (
	CatalogEmbedded CatalogDriver = "embedded" // compiled-in dataset (default)
	CatalogFile     CatalogDriver = "file"     // JSON document on disk
	CatalogSQLite   CatalogDriver = "sqlite"   // embedded sqlite snapshot
	CatalogPostgres CatalogDriver = "postgres" // PostgreSQL server
	CatalogS3       CatalogDriver = "s3"       // S3-compatible object store
)

// OpenCatalogSource selects a catalog backend using environment variables.
// Defaults to the embedded dataset when unset.
//
//	POSTALCORE_CATALOG_DRIVER: embedded|file|sqlite|postgres|s3 (default embedded)
//	POSTALCORE_CATALOG_PATH: path to JSON file when driver=file
//	POSTALCORE_SQLITE_PATH: path to sqlite file (default ./postalcore.db)
//	POSTALCORE_POSTGRES_DSN: postgres DSN when driver=postgres
//	POSTALCORE_CATALOG_S3_*: bucket/key/region/endpoint when driver=s3
func OpenCatalogSource(ctx context.Context) (CatalogSource, error) {
	driver := os.Getenv("POSTALCORE_CATALOG_DRIVER")
	if driver == "" {
		driver = string(CatalogEmbedded)
	}
	switch CatalogDriver(driver) {
	case CatalogEmbedded:
		ds, err := catalog.Embedded()
		if err != nil {
			return nil, err
		}
		return memory.New(ds), nil
	case CatalogFile:
		path := os.Getenv("POSTALCORE_CATALOG_PATH")
		if path == "" {
			return nil, fmt.Errorf("POSTALCORE_CATALOG_PATH required for file driver")
		}
		return catfs.New(path), nil
	case CatalogSQLite:
		return sqlite.New(os.Getenv("POSTALCORE_SQLITE_PATH"))
	case CatalogPostgres:
		return postgres.New(ctx, os.Getenv("POSTALCORE_POSTGRES_DSN"))
	case CatalogS3:
		return cats3.OpenFromEnv(ctx)
	default:
		return nil, fmt.Errorf("unknown catalog driver %s", driver)
	}
}
