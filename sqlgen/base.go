package sqlgen

import (
	"fmt"
	"strings"

	"github.com/schemadrift/migrate/internal/errs"
	"github.com/schemadrift/migrate/model"
	"github.com/schemadrift/migrate/operation"
)

// Base is the dialect-neutral generator from spec.md §4.5. Identifiers
// are delimited with double quotes (`""` escaping); concrete dialects
// embed Base and override only the visitors spec.md §4.6 calls out.
//
// Self must be set to the outer dialect value by every constructor
// (including NewBase). Go embedding does not give Base's own methods a
// way to see overrides a dialect makes on top of it (e.g. the SQL-Server
// dialect's IDENTITY column trait), so methods that call into the
// extension points route through Self instead of through their own
// receiver.
type Base struct {
	Self Dialect
}

// NewBase returns a Base whose extension points resolve back to itself;
// used by the registered "base" dialect and embedded (with Self
// re-pointed) by every other dialect in this package.
func NewBase() *Base {
	b := &Base{}
	b.Self = b
	return b
}

func (b *Base) self() Dialect {
	if b.Self != nil {
		return b.Self
	}
	return b
}

func (Base) QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func (b *Base) QuoteQualifiedName(n model.QualifiedName) string {
	d := b.self()
	return d.QuoteIdentifier(n.Schema) + "." + d.QuoteIdentifier(n.Name)
}

func (Base) QuoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// ColumnTrait is the base column extension point: no trait text.
func (Base) ColumnTrait(model.Column) string { return "" }

// PrimaryKeyTrait is the base primary-key extension point: no trait text.
func (Base) PrimaryKeyTrait(model.PrimaryKey) string { return "" }

func (Base) Synthesize(ops []operation.Operation, source, target *model.Database) ([]operation.Operation, error) {
	return ops, nil
}

func columnTypeSQL(col model.Column) string {
	switch {
	case col.MaxLength != nil:
		return fmt.Sprintf("%s(%d)", col.DataType, *col.MaxLength)
	case col.Precision != nil && col.Scale != nil:
		return fmt.Sprintf("%s(%d,%d)", col.DataType, *col.Precision, *col.Scale)
	case col.Precision != nil:
		return fmt.Sprintf("%s(%d)", col.DataType, *col.Precision)
	default:
		return col.DataType
	}
}

func nullabilitySQL(nullable bool) string {
	if nullable {
		return "NULL"
	}
	return "NOT NULL"
}

func (b *Base) columnDefSQL(col model.Column) string {
	d := b.self()
	parts := []string{d.QuoteIdentifier(col.Name), columnTypeSQL(col), nullabilitySQL(col.Nullable)}
	if trait := d.ColumnTrait(col); trait != "" {
		parts = append(parts, trait)
	}
	return strings.Join(parts, " ")
}

func (b *Base) primaryKeySQL(pk model.PrimaryKey) string {
	d := b.self()
	cols := make([]string, len(pk.Columns))
	for i, c := range pk.Columns {
		cols[i] = d.QuoteIdentifier(c)
	}
	sql := fmt.Sprintf("CONSTRAINT %s PRIMARY KEY (%s)", d.QuoteIdentifier(pk.Name), strings.Join(cols, ", "))
	if trait := d.PrimaryKeyTrait(pk); trait != "" {
		sql += trait
	}
	return sql
}

// CreateTable is rendered by Base and inherited by every dialect in this
// package; the column/PK extension points are where dialects actually
// diverge (identity traits, clustering).
func (b *Base) CreateTable(ctx *renderContext, op operation.CreateTable) error {
	d := b.self()
	ctx.WriteString(fmt.Sprintf("CREATE TABLE %s (\n", d.QuoteQualifiedName(op.Table.Name)))
	var lines []string
	for _, col := range op.Table.Columns {
		lines = append(lines, "  "+b.columnDefSQL(col))
	}
	if op.Table.PrimaryKey != nil {
		lines = append(lines, "  "+b.primaryKeySQL(*op.Table.PrimaryKey))
	}
	ctx.WriteString(strings.Join(lines, ",\n"))
	ctx.WriteString("\n)")
	return nil
}

func (b *Base) DropTable(ctx *renderContext, op operation.DropTable) error {
	ctx.WriteString(fmt.Sprintf("DROP TABLE %s", b.self().QuoteQualifiedName(op.Name)))
	return nil
}

// MoveTable has no dialect-neutral rendering (spec.md §8 scenario S3);
// Base emits nothing.
func (*Base) MoveTable(ctx *renderContext, op operation.MoveTable) error {
	return nil
}

func (*Base) RenameTable(ctx *renderContext, op operation.RenameTable) error {
	return errs.New(errs.UnsupportedDialectFeature, "base dialect does not implement RenameTable")
}

func (b *Base) AddColumn(ctx *renderContext, op operation.AddColumn) error {
	ctx.WriteString(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s", b.self().QuoteQualifiedName(op.Table), b.columnDefSQL(op.Column)))
	return nil
}

func (b *Base) DropColumn(ctx *renderContext, op operation.DropColumn) error {
	d := b.self()
	ctx.WriteString(fmt.Sprintf("ALTER TABLE %s DROP COLUMN %s", d.QuoteQualifiedName(op.Table), d.QuoteIdentifier(op.ColumnName)))
	return nil
}

// AlterColumn's base rendering folds the new type and nullability into a
// single ALTER COLUMN clause; this happens to be valid T-SQL as-is. The
// postgres-like and mysql-like dialects override it with their own
// split/verb conventions.
func (b *Base) AlterColumn(ctx *renderContext, op operation.AlterColumn) error {
	d := b.self()
	ctx.WriteString(fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s %s %s",
		d.QuoteQualifiedName(op.Table), d.QuoteIdentifier(op.NewColumn.Name), columnTypeSQL(op.NewColumn), nullabilitySQL(op.NewColumn.Nullable)))
	return nil
}

func (*Base) RenameColumn(ctx *renderContext, op operation.RenameColumn) error {
	return errs.New(errs.UnsupportedDialectFeature, "base dialect does not implement RenameColumn")
}

func (b *Base) AddPrimaryKey(ctx *renderContext, op operation.AddPrimaryKey) error {
	d := b.self()
	cols := make([]string, len(op.Columns))
	for i, c := range op.Columns {
		cols[i] = d.QuoteIdentifier(c)
	}
	ctx.WriteString(fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s PRIMARY KEY (%s)",
		d.QuoteQualifiedName(op.Table), d.QuoteIdentifier(op.Name), strings.Join(cols, ", ")))
	return nil
}

func (b *Base) DropPrimaryKey(ctx *renderContext, op operation.DropPrimaryKey) error {
	d := b.self()
	ctx.WriteString(fmt.Sprintf("ALTER TABLE %s DROP CONSTRAINT %s", d.QuoteQualifiedName(op.Table), d.QuoteIdentifier(op.Name)))
	return nil
}

func (b *Base) AddForeignKey(ctx *renderContext, op operation.AddForeignKey) error {
	d := b.self()
	cols := make([]string, len(op.Columns))
	for i, c := range op.Columns {
		cols[i] = d.QuoteIdentifier(c)
	}
	refCols := make([]string, len(op.RefColumns))
	for i, c := range op.RefColumns {
		refCols[i] = d.QuoteIdentifier(c)
	}
	ctx.WriteString(fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s (%s)",
		d.QuoteQualifiedName(op.Table), d.QuoteIdentifier(op.Name), strings.Join(cols, ", "),
		d.QuoteQualifiedName(op.RefTable), strings.Join(refCols, ", ")))
	if op.CascadeDelete {
		ctx.WriteString(" ON DELETE CASCADE")
	}
	return nil
}

func (b *Base) DropForeignKey(ctx *renderContext, op operation.DropForeignKey) error {
	d := b.self()
	ctx.WriteString(fmt.Sprintf("ALTER TABLE %s DROP CONSTRAINT %s", d.QuoteQualifiedName(op.Table), d.QuoteIdentifier(op.Name)))
	return nil
}

func defaultExpressionSQL(d Dialect, value *model.DefaultValueRef, sql string) string {
	if sql != "" {
		return sql
	}
	if value != nil {
		return d.QuoteString(string(*value))
	}
	return "NULL"
}

func (b *Base) AddDefaultConstraint(ctx *renderContext, op operation.AddDefaultConstraint) error {
	d := b.self()
	ctx.WriteString(fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s SET DEFAULT %s",
		d.QuoteQualifiedName(op.Table), d.QuoteIdentifier(op.ColumnName), defaultExpressionSQL(d, op.DefaultValue, op.DefaultSQL)))
	return nil
}

func (b *Base) DropDefaultConstraint(ctx *renderContext, op operation.DropDefaultConstraint) error {
	d := b.self()
	ctx.WriteString(fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s DROP DEFAULT", d.QuoteQualifiedName(op.Table), d.QuoteIdentifier(op.ColumnName)))
	return nil
}

func (b *Base) CreateIndex(ctx *renderContext, op operation.CreateIndex) error {
	d := b.self()
	cols := make([]string, len(op.Columns))
	for i, c := range op.Columns {
		cols[i] = d.QuoteIdentifier(c)
	}
	unique := ""
	if op.Unique {
		unique = "UNIQUE "
	}
	ctx.WriteString(fmt.Sprintf("CREATE %sINDEX %s ON %s (%s)", unique, d.QuoteIdentifier(op.Name), d.QuoteQualifiedName(op.Table), strings.Join(cols, ", ")))
	return nil
}

func (b *Base) DropIndex(ctx *renderContext, op operation.DropIndex) error {
	ctx.WriteString(fmt.Sprintf("DROP INDEX %s", b.self().QuoteIdentifier(op.Name)))
	return nil
}

func (*Base) RenameIndex(ctx *renderContext, op operation.RenameIndex) error {
	return errs.New(errs.UnsupportedDialectFeature, "base dialect does not implement RenameIndex")
}

func (b *Base) CreateSequence(ctx *renderContext, op operation.CreateSequence) error {
	ctx.WriteString(fmt.Sprintf("CREATE SEQUENCE %s", b.self().QuoteQualifiedName(op.Sequence.Name)))
	return nil
}

func (b *Base) DropSequence(ctx *renderContext, op operation.DropSequence) error {
	ctx.WriteString(fmt.Sprintf("DROP SEQUENCE %s", b.self().QuoteQualifiedName(op.Name)))
	return nil
}
