package postgres

import (
	"context"
	"database/sql"
	"reflect"
	"testing"

	"postalcore/internal/catalog"
	"postalcore/internal/infra/catalog/postgres/testutil"
)

func withStub(t *testing.T) (*Source, *testutil.StubConn) {
	t.Helper()
	db, conn := testutil.NewStubDB()
	openMu.Lock()
	orig := sqlOpen
	sqlOpen = func(string, string) (*sql.DB, error) { return db, nil }
	openMu.Unlock()
	t.Cleanup(func() {
		openMu.Lock()
		sqlOpen = orig
		openMu.Unlock()
	})
	src, err := New(context.Background(), "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return src, conn
}

func stubDataset() catalog.Dataset {
	// Countries and subdivisions pre-sorted by code: the stub returns rows in
	// insertion order and the source relies on ORDER BY.
	return catalog.Dataset{
		Version: "stub-1",
		Countries: []catalog.Country{
			{Code: "DE", Name: "Germany", Subdivisions: []catalog.Subdivision{
				{Code: "DE-BE", Name: "Berlin", Type: "state"},
				{Code: "DE-BY", Name: "Bayern", Type: "state"},
			}},
			{Code: "FR", Name: "France"},
		},
	}
}

func TestSeedAndLoadRoundTrip(t *testing.T) {
	src, _ := withStub(t)
	ctx := context.Background()

	want := stubDataset()
	if err := src.Seed(ctx, want); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	got, err := src.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestSeedReplacesPreviousSnapshot(t *testing.T) {
	src, conn := withStub(t)
	ctx := context.Background()

	if err := src.Seed(ctx, stubDataset()); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	second := catalog.Dataset{
		Version:   "stub-2",
		Countries: []catalog.Country{{Code: "NL", Name: "Netherlands"}},
	}
	if err := src.Seed(ctx, second); err != nil {
		t.Fatalf("second seed: %v", err)
	}
	got, err := src.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(got, second) {
		t.Fatalf("expected replacement snapshot, got %+v", got)
	}
	if len(conn.Tables["countries"]) != 1 {
		t.Fatalf("expected truncate before reseed, countries=%v", conn.Tables["countries"])
	}
}

func TestNewPingFailure(t *testing.T) {
	db, conn := testutil.NewStubDB()
	conn.FailPing = true
	openMu.Lock()
	orig := sqlOpen
	sqlOpen = func(string, string) (*sql.DB, error) { return db, nil }
	openMu.Unlock()
	defer func() {
		openMu.Lock()
		sqlOpen = orig
		openMu.Unlock()
	}()
	if _, err := New(context.Background(), ""); err == nil {
		t.Fatalf("expected ping failure")
	}
}

func TestSeedSubdivisionInsertFailure(t *testing.T) {
	src, conn := withStub(t)
	conn.FailTables = map[string]bool{"subdivisions": true}
	if err := src.Seed(context.Background(), stubDataset()); err == nil {
		t.Fatalf("expected insert failure to propagate")
	}
}

func TestLoadWithoutSeedFails(t *testing.T) {
	src, _ := withStub(t)
	if _, err := src.Load(context.Background()); err == nil {
		t.Fatalf("expected error when catalog_meta is empty")
	}
}

func TestDriverName(t *testing.T) {
	src, _ := withStub(t)
	if src.Driver() != "postgres" {
		t.Fatalf("unexpected driver %q", src.Driver())
	}
}
