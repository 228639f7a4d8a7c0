package differ

import (
	"github.com/schemadrift/migrate/matcher"
	"github.com/schemadrift/migrate/operation"
)

// diffForeignKeys implements the foreign-key half of spec.md §4.2 pass 4.
func diffForeignKeys(c *operation.Collection, mt matcher.MatchedTable) {
	for _, fk := range mt.UnmatchedTargetForeignKeys {
		c.Append(operation.AddForeignKey{
			Table: mt.TargetTable.Name, Name: fk.Name, Columns: fk.Columns,
			RefTable: fk.RefTable, RefColumns: fk.RefColumns, CascadeDelete: fk.CascadeDelete,
		})
	}
	for _, fk := range mt.UnmatchedSourceForeignKeys {
		c.Append(operation.DropForeignKey{Table: mt.SourceTable.Name, Name: fk.Name})
	}
}

// diffIndexes implements the index half of spec.md §4.2 pass 4: renames
// for paired indexes whose names differ, creates/drops for the
// asymmetric sides.
func diffIndexes(c *operation.Collection, mt matcher.MatchedTable) {
	for _, ip := range mt.Indexes {
		if ip.Source.Name != ip.Target.Name {
			c.Append(operation.RenameIndex{Table: mt.TargetTable.Name, OldName: ip.Source.Name, NewName: ip.Target.Name})
		}
	}
	for _, idx := range mt.UnmatchedTargetIndexes {
		c.Append(operation.CreateIndex{
			Table: mt.TargetTable.Name, Name: idx.Name, Columns: idx.Columns,
			Unique: idx.Unique, Clustered: idx.Clustered,
		})
	}
	for _, idx := range mt.UnmatchedSourceIndexes {
		c.Append(operation.DropIndex{Table: mt.SourceTable.Name, Name: idx.Name})
	}
}
