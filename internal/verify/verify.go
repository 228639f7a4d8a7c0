// Package verify applies generated SQL to a throwaway database and
// asserts it executes cleanly, closing the loop the core itself never
// closes: spec.md §1 places SQL execution out of the core's scope, but
// a migration generator is only trustworthy if its output actually
// runs. Grounded on the teacher's embedded-Postgres lifecycle
// (internal/postgres/embedded.go, testutil/postgres.go) and its
// testcontainers-based integration-test strategy (ir/parser_test.go).
package verify

import (
	"context"
	"database/sql"

	"github.com/schemadrift/migrate/internal/errs"
	"github.com/schemadrift/migrate/sqlgen"
)

// Apply executes every statement in order against db, stopping at the
// first error. Statement.Parameters is passed through as driver bind
// arguments for dialects/renderers that use them; the base/sqlserver/
// postgres/mysql renderers currently embed every value as literal text,
// so Parameters is empty in practice, but Apply honors it regardless so
// a future renderer can opt into bound parameters without this package
// changing.
func Apply(ctx context.Context, db *sql.DB, stmts []sqlgen.Statement) error {
	for i, stmt := range stmts {
		if stmt.Text == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt.Text, stmt.Parameters...); err != nil {
			return errs.Wrap(errs.InvalidInput, err, "statement %d failed: %s", i, stmt.Text)
		}
	}
	return nil
}
