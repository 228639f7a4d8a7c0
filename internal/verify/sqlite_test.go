package verify_test

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/schemadrift/migrate/differ"
	"github.com/schemadrift/migrate/internal/loader"
	"github.com/schemadrift/migrate/internal/verify"
	"github.com/schemadrift/migrate/model"
	"github.com/schemadrift/migrate/sqlgen"
)

// TestApplyCreateSchemaSQLite is the lightest-weight of the three
// verify backends: it needs no embedded server process and no external
// service, so it is the one that runs by default under `go test ./...`.
// SQLite has no dialect of its own in sqlgen (its type and identifier
// rules are close enough to the base generator's ANSI-flavored output to
// apply directly), so this exercises the base dialect end to end.
// Set SQLITE_FILE to a path to inspect the resulting database file
// instead of using a throwaway temp file.
func TestApplyCreateSchemaSQLite(t *testing.T) {
	target, err := loader.Parse(`
		CREATE TABLE public.departments (
			id bigint PRIMARY KEY,
			name text NOT NULL
		);
		CREATE TABLE public.employees (
			id bigint PRIMARY KEY,
			name text NOT NULL,
			department_id bigint REFERENCES public.departments(id)
		);
		CREATE INDEX employees_department_id_idx ON public.employees (department_id);
	`)
	if err != nil {
		t.Fatalf("loader.Parse: %v", err)
	}

	ops := differ.CreateSchema(target)

	gen, err := sqlgen.Create("base", &model.Database{}, target)
	if err != nil {
		t.Fatalf("sqlgen.Create: %v", err)
	}
	stmts, err := gen.GenerateSql(ops)
	if err != nil {
		t.Fatalf("GenerateSql: %v", err)
	}

	path := os.Getenv("SQLITE_FILE")
	if path == "" {
		path = t.TempDir() + "/verify.db"
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	defer db.Close()
	// in-memory and fresh file databases alike need a single connection
	// so every statement lands on the same SQLite session.
	db.SetMaxOpenConns(1)

	ctx := context.Background()
	if err := verify.Apply(ctx, db, stmts); err != nil {
		t.Fatalf("applying generated SQL: %v", err)
	}
}
