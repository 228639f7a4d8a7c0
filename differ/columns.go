package differ

import (
	"github.com/schemadrift/migrate/matcher"
	"github.com/schemadrift/migrate/model"
	"github.com/schemadrift/migrate/operation"
)

// diffColumns implements the column half of spec.md §4.2 pass 4:
// renames for paired columns whose names differ, adds/drops for the
// unpaired sides, and alters for paired columns whose database-level
// properties disagree.
//
// RenameColumn and AddColumn reference the table under its target name;
// DropColumn deliberately also references the target name — by
// canonical order, drops execute before the table itself is renamed or
// moved, so this looks backwards, but it matches the documented source
// behavior (spec.md §9) and is preserved as-is.
func diffColumns(c *operation.Collection, mt matcher.MatchedTable) {
	targetTableName := mt.TargetTable.Name

	for _, cp := range mt.Columns {
		if cp.Source.Name != cp.Target.Name {
			c.Append(operation.RenameColumn{Table: targetTableName, OldName: cp.Source.Name, NewName: cp.Target.Name})
		}
		if columnsDiffer(cp.Source, cp.Target) {
			c.Append(operation.AlterColumn{Table: targetTableName, NewColumn: cp.Target, Destructive: true})
		}
	}
	for _, col := range mt.UnmatchedTargetColumns {
		c.Append(operation.AddColumn{Table: targetTableName, Column: col})
	}
	for _, col := range mt.UnmatchedSourceColumns {
		c.Append(operation.DropColumn{Table: targetTableName, ColumnName: col.Name})
	}
}

// columnsDiffer compares every database-level column property spec.md
// §4.2 names for AlterColumn, excluding name and default-related fields
// (those are handled by RenameColumn/diffDefaults).
func columnsDiffer(a, b model.Column) bool {
	return a.DataType != b.DataType ||
		a.Nullable != b.Nullable ||
		a.ValueGeneration != b.ValueGeneration ||
		a.IsTimestamp != b.IsTimestamp ||
		!intPtrEqual(a.MaxLength, b.MaxLength) ||
		!intPtrEqual(a.Precision, b.Precision) ||
		!intPtrEqual(a.Scale, b.Scale) ||
		a.FixedLength != b.FixedLength ||
		a.Unicode != b.Unicode
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// diffDefaults implements the default-constraint half of spec.md §4.2
// pass 4: two defaults match iff both default-value references are
// equal and both default-SQL strings are byte-for-byte equal.
func diffDefaults(c *operation.Collection, mt matcher.MatchedTable) {
	for _, cp := range mt.Columns {
		if defaultsMatch(cp.Source, cp.Target) {
			continue
		}
		if cp.Target.HasDefault {
			c.Append(operation.AddDefaultConstraint{
				Table: mt.TargetTable.Name, ColumnName: cp.Target.Name,
				DefaultValue: cp.Target.DefaultValue, DefaultSQL: cp.Target.DefaultSQL,
			})
		}
		if cp.Source.HasDefault {
			c.Append(operation.DropDefaultConstraint{Table: mt.SourceTable.Name, ColumnName: cp.Source.Name})
		}
	}
}

func defaultsMatch(a, b model.Column) bool {
	if a.HasDefault != b.HasDefault {
		return false
	}
	if !a.HasDefault {
		return true
	}
	return defaultValueRefEqual(a.DefaultValue, b.DefaultValue) && a.DefaultSQL == b.DefaultSQL
}

func defaultValueRefEqual(a, b *model.DefaultValueRef) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
