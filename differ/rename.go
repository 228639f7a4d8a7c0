package differ

import (
	"fmt"

	"github.com/schemadrift/migrate/model"
	"github.com/schemadrift/migrate/operation"
)

// resolveTransitiveRenames implements spec.md §4.4: within each of the
// table/column/index rename buckets, a rename whose new name collides
// with a later rename's old name (in the same scope) is split into a
// direct rename to a temporary name plus a deferred rename from the
// temporary name to the original target, emitted after every direct
// rename in that bucket. The counter is shared across all three kinds
// to guarantee global uniqueness of the temporary names.
func resolveTransitiveRenames(c *operation.Collection) {
	counter := 0
	resolveTableRenames(c, &counter)
	resolveColumnRenames(c, &counter)
	resolveIndexRenames(c, &counter)
}

func nextTempName(counter *int) string {
	name := fmt.Sprintf("__mig_tmp__%d", *counter)
	*counter++
	return name
}

// resolveTableRenames handles the RenameTable bucket. Scope is global:
// two table renames collide whenever their unqualified names match,
// regardless of schema.
func resolveTableRenames(c *operation.Collection, counter *int) {
	ops := c.Get(operation.KindRenameTable)
	renames := make([]operation.RenameTable, len(ops))
	for i, op := range ops {
		renames[i] = op.(operation.RenameTable)
	}

	direct := make([]operation.RenameTable, len(renames))
	copy(direct, renames)
	var deferred []operation.RenameTable

	for i, r := range direct {
		matches := 0
		for j := i + 1; j < len(direct); j++ {
			if direct[j].Name.Name == r.NewName {
				matches++
			}
		}
		if matches != 1 {
			continue
		}
		tmp := nextTempName(counter)
		deferred = append(deferred, operation.RenameTable{
			Name:    model.QualifiedName{Schema: r.Name.Schema, Name: tmp},
			NewName: r.NewName,
		})
		direct[i] = operation.RenameTable{Name: r.Name, NewName: tmp}
	}

	c.Replace(operation.KindRenameTable, renameTableOps(append(direct, deferred...)))
}

func renameTableOps(rs []operation.RenameTable) []operation.Operation {
	out := make([]operation.Operation, len(rs))
	for i, r := range rs {
		out[i] = r
	}
	return out
}

// resolveColumnRenames handles the RenameColumn bucket. Scope is the
// parent table name.
func resolveColumnRenames(c *operation.Collection, counter *int) {
	ops := c.Get(operation.KindRenameColumn)
	direct := make([]operation.RenameColumn, len(ops))
	for i, op := range ops {
		direct[i] = op.(operation.RenameColumn)
	}
	var deferred []operation.RenameColumn

	for i, r := range direct {
		matches := 0
		for j := i + 1; j < len(direct); j++ {
			if direct[j].Table == r.Table && direct[j].OldName == r.NewName {
				matches++
			}
		}
		if matches != 1 {
			continue
		}
		tmp := nextTempName(counter)
		deferred = append(deferred, operation.RenameColumn{Table: r.Table, OldName: tmp, NewName: r.NewName})
		direct[i] = operation.RenameColumn{Table: r.Table, OldName: r.OldName, NewName: tmp}
	}

	out := make([]operation.Operation, 0, len(direct)+len(deferred))
	for _, r := range direct {
		out = append(out, r)
	}
	for _, r := range deferred {
		out = append(out, r)
	}
	c.Replace(operation.KindRenameColumn, out)
}

// resolveIndexRenames handles the RenameIndex bucket. Scope is the
// parent table name.
func resolveIndexRenames(c *operation.Collection, counter *int) {
	ops := c.Get(operation.KindRenameIndex)
	direct := make([]operation.RenameIndex, len(ops))
	for i, op := range ops {
		direct[i] = op.(operation.RenameIndex)
	}
	var deferred []operation.RenameIndex

	for i, r := range direct {
		matches := 0
		for j := i + 1; j < len(direct); j++ {
			if direct[j].Table == r.Table && direct[j].OldName == r.NewName {
				matches++
			}
		}
		if matches != 1 {
			continue
		}
		tmp := nextTempName(counter)
		deferred = append(deferred, operation.RenameIndex{Table: r.Table, OldName: tmp, NewName: r.NewName})
		direct[i] = operation.RenameIndex{Table: r.Table, OldName: r.OldName, NewName: tmp}
	}

	out := make([]operation.Operation, 0, len(direct)+len(deferred))
	for _, r := range direct {
		out = append(out, r)
	}
	for _, r := range deferred {
		out = append(out, r)
	}
	c.Replace(operation.KindRenameIndex, out)
}
