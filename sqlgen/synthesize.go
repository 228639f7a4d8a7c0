package sqlgen

import (
	"github.com/schemadrift/migrate/model"
	"github.com/schemadrift/migrate/operation"
)

// Synthesize implements spec.md §4.6's pre-AlterColumn pass: for every
// AlterColumn, it resolves the affected column's source and target
// identity by walking the surrounding rename/move operations, then
// synthesizes the Drop/Add operations needed to carry the primary key,
// foreign keys, and default constraint that column participates in
// across the alter. Synthesized operations are appended to the stream;
// canonical re-flattening (done by Generator.GenerateSql after this
// call) places them correctly regardless of append order.
func (s *SQLServer) Synthesize(ops []operation.Operation, source, target *model.Database) ([]operation.Operation, error) {
	var extra []operation.Operation

	for _, op := range ops {
		alter, ok := op.(operation.AlterColumn)
		if !ok {
			continue
		}

		targetTable := alter.Table
		sourceTable := resolveSourceTableName(ops, targetTable)

		// The target column name walk is deliberately an identity
		// function: by construction, NewColumn.Name is already the
		// column's current (post-rename) name. Preserved as documented
		// anomaly per spec.md §9, not "fixed" into a real forward walk.
		targetColumnName := alter.NewColumn.Name
		sourceColumnName := resolveSourceColumnName(ops, targetTable, targetColumnName)

		if srcTable, ok := source.Table(sourceTable); ok {
			if pk := srcTable.PrimaryKey; pk != nil && containsString(pk.Columns, sourceColumnName) {
				extra = append(extra, operation.DropPrimaryKey{Table: sourceTable, Name: pk.Name})
			}
			for _, fk := range srcTable.ForeignKeys {
				if containsString(fk.Columns, sourceColumnName) {
					extra = append(extra, operation.DropForeignKey{Table: sourceTable, Name: fk.Name})
				}
			}
			if col, ok := srcTable.Column(sourceColumnName); ok && col.HasDefault {
				extra = append(extra, operation.DropDefaultConstraint{Table: sourceTable, ColumnName: sourceColumnName})
			}
		}

		if tgtTable, ok := target.Table(targetTable); ok {
			if pk := tgtTable.PrimaryKey; pk != nil && containsString(pk.Columns, targetColumnName) {
				extra = append(extra, operation.AddPrimaryKey{
					Table: targetTable, Name: pk.Name, Columns: pk.Columns, Clustered: pk.Clustered,
				})
			}
			for _, fk := range tgtTable.ForeignKeys {
				if containsString(fk.Columns, targetColumnName) {
					extra = append(extra, operation.AddForeignKey{
						Table: targetTable, Name: fk.Name, Columns: fk.Columns,
						RefTable: fk.RefTable, RefColumns: fk.RefColumns, CascadeDelete: fk.CascadeDelete,
					})
				}
			}
		}
	}

	return append(ops, extra...), nil
}

// resolveSourceTableName reverse-walks RenameTable/MoveTable operations
// to find the name a now-target-named table had on the source side.
func resolveSourceTableName(ops []operation.Operation, target model.QualifiedName) model.QualifiedName {
	name := target.Name
	schema := target.Schema
	for _, op := range ops {
		if rt, ok := op.(operation.RenameTable); ok && rt.NewName == name {
			name = rt.Name.Name
		}
	}
	for _, op := range ops {
		if mv, ok := op.(operation.MoveTable); ok && mv.NewSchema == schema && mv.OldName.Name == name {
			schema = mv.OldName.Schema
		}
	}
	return model.QualifiedName{Schema: schema, Name: name}
}

// resolveSourceColumnName reverse-walks RenameColumn operations, scoped
// to table, to find the name a now-target-named column had on the
// source side.
func resolveSourceColumnName(ops []operation.Operation, table model.QualifiedName, targetName string) string {
	name := targetName
	for _, op := range ops {
		if rc, ok := op.(operation.RenameColumn); ok && rc.Table.Equal(table) && rc.NewName == name {
			name = rc.OldName
		}
	}
	return name
}

func containsString(xs []string, x string) bool {
	for _, s := range xs {
		if s == x {
			return true
		}
	}
	return false
}
