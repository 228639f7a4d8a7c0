package differ

import (
	"github.com/schemadrift/migrate/matcher"
	"github.com/schemadrift/migrate/model"
	"github.com/schemadrift/migrate/operation"
)

// diffTables implements spec.md §4.2 pass 2: moves and renames for
// matched tables, full creation for unmatched target tables (with their
// foreign keys and indexes), and drops for unmatched source tables.
func diffTables(c *operation.Collection, result *matcher.Result) {
	for _, mt := range result.Tables {
		source, target := mt.SourceTable, mt.TargetTable

		if source.Name.Schema != target.Name.Schema {
			c.Append(operation.MoveTable{OldName: source.Name, NewSchema: target.Name.Schema})
		}
		if source.Name.Name != target.Name.Name {
			// The old name's schema component is the *target* schema: by
			// canonical order the move (if any) has already executed by
			// the time this rename runs.
			oldName, _ := model.NewQualifiedName(target.Name.Schema, source.Name.Name)
			c.Append(operation.RenameTable{Name: oldName, NewName: target.Name.Name})
		}
	}

	for _, t := range result.UnmatchedTargetTables {
		c.Append(operation.CreateTable{Table: *t})
		for _, fk := range t.ForeignKeys {
			c.Append(operation.AddForeignKey{
				Table: t.Name, Name: fk.Name, Columns: fk.Columns,
				RefTable: fk.RefTable, RefColumns: fk.RefColumns, CascadeDelete: fk.CascadeDelete,
			})
		}
		for _, idx := range t.Indexes {
			c.Append(operation.CreateIndex{
				Table: t.Name, Name: idx.Name, Columns: idx.Columns,
				Unique: idx.Unique, Clustered: idx.Clustered,
			})
		}
	}

	for _, t := range result.UnmatchedSourceTables {
		c.Append(operation.DropTable{Name: t.Name})
	}
}

// diffPrimaryKeys implements spec.md §4.2 pass 3: primary keys on
// matched tables that didn't pair (the PK itself changed shape, or was
// added/removed) get an Add on the target side and a Drop on the source
// side. Drops reference the table under its pre-rename (source) name;
// adds reference it under its post-rename (target) name.
func diffPrimaryKeys(c *operation.Collection, result *matcher.Result) {
	for _, mt := range result.Tables {
		if mt.PrimaryKey != nil {
			continue
		}
		if mt.TargetTable.PrimaryKey != nil {
			pk := mt.TargetTable.PrimaryKey
			c.Append(operation.AddPrimaryKey{
				Table: mt.TargetTable.Name, Name: pk.Name, Columns: pk.Columns, Clustered: pk.Clustered,
			})
		}
		if mt.SourceTable.PrimaryKey != nil {
			pk := mt.SourceTable.PrimaryKey
			c.Append(operation.DropPrimaryKey{Table: mt.SourceTable.Name, Name: pk.Name})
		}
	}
}
