package matcher

import (
	"github.com/schemadrift/migrate/internal/errs"
	"github.com/schemadrift/migrate/model"
)

// tableNotFoundError reports a matched entity whose mapped table is
// missing from the database snapshot it was loaded from — an invariant
// violation, since entities are always derived from the database they
// describe.
func tableNotFoundError(name model.QualifiedName) error {
	return errs.New(errs.InvariantViolation, "entity maps to table %s, which is not present in its database snapshot", name)
}
