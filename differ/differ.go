// Package differ implements spec.md §4.2's pass sequence: given the
// matcher's pairings, it emits migration operations into an
// operation.Collection, resolves transitive rename chains (§4.4), and
// flattens the result in the canonical order (§4.3).
package differ

import (
	"strings"

	"github.com/schemadrift/migrate/internal/entity"
	"github.com/schemadrift/migrate/internal/errs"
	"github.com/schemadrift/migrate/matcher"
	"github.com/schemadrift/migrate/model"
	"github.com/schemadrift/migrate/operation"
)

// tempNamePrefix is the scratch-name prefix resolveTransitiveRenames uses
// to break rename cycles (spec.md §4.4). A model that already contains an
// identifier with this prefix would make a synthesized name ambiguous
// with a real one, so Diff rejects it up front per spec.md §9.
const tempNamePrefix = "__mig_tmp__"

func containsTempPrefixedName(db *model.Database) bool {
	for _, t := range db.Tables {
		if strings.HasPrefix(t.Name.Name, tempNamePrefix) {
			return true
		}
		for _, c := range t.Columns {
			if strings.HasPrefix(c.Name, tempNamePrefix) {
				return true
			}
		}
		for _, idx := range t.Indexes {
			if strings.HasPrefix(idx.Name, tempNamePrefix) {
				return true
			}
		}
	}
	return false
}

// CreateSchema produces the operations for an empty-to-target build:
// every sequence, then every table (with its primary key inline), then
// every foreign key, then every index, in that order.
func CreateSchema(db *model.Database) []operation.Operation {
	var ops []operation.Operation
	for _, seq := range db.Sequences {
		ops = append(ops, operation.CreateSequence{Sequence: *seq})
	}
	for _, t := range db.Tables {
		ops = append(ops, operation.CreateTable{Table: *t})
	}
	for _, t := range db.Tables {
		for _, fk := range t.ForeignKeys {
			ops = append(ops, operation.AddForeignKey{
				Table: t.Name, Name: fk.Name, Columns: fk.Columns,
				RefTable: fk.RefTable, RefColumns: fk.RefColumns, CascadeDelete: fk.CascadeDelete,
			})
		}
	}
	for _, t := range db.Tables {
		for _, idx := range t.Indexes {
			ops = append(ops, operation.CreateIndex{
				Table: t.Name, Name: idx.Name, Columns: idx.Columns,
				Unique: idx.Unique, Clustered: idx.Clustered,
			})
		}
	}
	return ops
}

// DropSchema produces the reverse: every sequence dropped, then every
// foreign key, then every table.
func DropSchema(db *model.Database) []operation.Operation {
	var ops []operation.Operation
	for _, seq := range db.Sequences {
		ops = append(ops, operation.DropSequence{Name: seq.Name})
	}
	for _, t := range db.Tables {
		for _, fk := range t.ForeignKeys {
			ops = append(ops, operation.DropForeignKey{Table: t.Name, Name: fk.Name})
		}
	}
	for _, t := range db.Tables {
		ops = append(ops, operation.DropTable{Name: t.Name})
	}
	return ops
}

// Diff runs the matcher, walks every pass from spec.md §4.2, resolves
// transitive renames, and returns the operations in canonical order.
func Diff(sourceEntities, targetEntities []entity.Entity, sourceDB, targetDB *model.Database) ([]operation.Operation, error) {
	if containsTempPrefixedName(sourceDB) || containsTempPrefixedName(targetDB) {
		return nil, errs.New(errs.InvalidInput, "identifiers starting with %q are reserved for rename-cycle resolution", tempNamePrefix)
	}

	result, err := matcher.Match(sourceEntities, targetEntities, sourceDB, targetDB)
	if err != nil {
		return nil, err
	}

	c := operation.NewCollection()

	// Pass 1: sequences. No-op, reserved per spec.md §4.2.

	diffTables(c, result)
	diffPrimaryKeys(c, result)
	for _, mt := range result.Tables {
		diffColumns(c, mt)
		diffDefaults(c, mt)
		diffForeignKeys(c, mt)
		diffIndexes(c, mt)
	}

	resolveTransitiveRenames(c)

	return c.Flatten(), nil
}
