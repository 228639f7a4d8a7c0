package sqlgen

import (
	"fmt"
	"strings"

	"github.com/schemadrift/migrate/model"
	"github.com/schemadrift/migrate/operation"
)

// SQLServer is the SQL-Server-like dialect mandated by spec.md §4.6:
// bracket-delimited identifiers, sp_rename-based renames, a system-
// catalog lookup for dropping unnamed default constraints, and a
// pre-AlterColumn synthesis pass that drops and re-adds the constraints
// an altered column participates in.
type SQLServer struct {
	*Base
}

// NewSQLServer is registered under the "sqlserver" dialect name.
func NewSQLServer(source, target *model.Database) Dialect {
	s := &SQLServer{Base: NewBase()}
	s.Base.Self = s
	return s
}

func init() {
	Register("sqlserver", NewSQLServer)
}

func (SQLServer) QuoteIdentifier(name string) string {
	return "[" + strings.ReplaceAll(name, "]", "]]") + "]"
}

// ColumnTrait appends IDENTITY for on-insert value generation.
func (SQLServer) ColumnTrait(col model.Column) string {
	if col.ValueGeneration == model.ValueGenerationOnInsert {
		return "IDENTITY"
	}
	return ""
}

// PrimaryKeyTrait appends NONCLUSTERED when the key isn't clustered;
// clustered is the default and gets no trait text.
func (SQLServer) PrimaryKeyTrait(pk model.PrimaryKey) string {
	if !pk.Clustered {
		return "NONCLUSTERED"
	}
	return ""
}

func (s *SQLServer) MoveTable(ctx *renderContext, op operation.MoveTable) error {
	ctx.WriteString(fmt.Sprintf("ALTER SCHEMA %s TRANSFER %s", s.QuoteIdentifier(op.NewSchema), s.QuoteQualifiedName(op.OldName)))
	return nil
}

func (s *SQLServer) RenameTable(ctx *renderContext, op operation.RenameTable) error {
	ctx.WriteString(fmt.Sprintf("EXECUTE sp_rename @objname = N'%s', @newname = N'%s', @objtype = N'OBJECT'",
		op.Name.String(), op.NewName))
	return nil
}

func (s *SQLServer) RenameColumn(ctx *renderContext, op operation.RenameColumn) error {
	ctx.WriteString(fmt.Sprintf("EXECUTE sp_rename @objname = N'%s.%s', @newname = N'%s', @objtype = N'COLUMN'",
		op.Table.String(), op.OldName, op.NewName))
	return nil
}

func (s *SQLServer) RenameIndex(ctx *renderContext, op operation.RenameIndex) error {
	ctx.WriteString(fmt.Sprintf("EXECUTE sp_rename @objname = N'%s.%s', @newname = N'%s', @objtype = N'INDEX'",
		op.Table.String(), op.OldName, op.NewName))
	return nil
}

// AddDefaultConstraint names the constraint after the table and column,
// since the caller never supplies one.
func (s *SQLServer) AddDefaultConstraint(ctx *renderContext, op operation.AddDefaultConstraint) error {
	constraintName := fmt.Sprintf("DF_%s_%s", op.Table.Name, op.ColumnName)
	ctx.WriteString(fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s DEFAULT %s FOR %s",
		s.QuoteQualifiedName(op.Table), s.QuoteIdentifier(constraintName),
		defaultExpressionSQL(s, op.DefaultValue, op.DefaultSQL), s.QuoteIdentifier(op.ColumnName)))
	return nil
}

// DropDefaultConstraint discovers the system-assigned constraint name at
// execution time, per spec.md §4.6 and scenario S5.
func (s *SQLServer) DropDefaultConstraint(ctx *renderContext, op operation.DropDefaultConstraint) error {
	v := ctx.NextVar()
	table := s.QuoteQualifiedName(op.Table)
	ctx.WriteString(fmt.Sprintf("DECLARE %s NVARCHAR(MAX)\n", v))
	ctx.WriteString(fmt.Sprintf(
		"SELECT %s = dc.name FROM sys.default_constraints dc JOIN sys.columns c ON c.object_id = dc.parent_object_id AND c.column_id = dc.parent_column_id WHERE dc.parent_object_id = OBJECT_ID('%s') AND COL_NAME(dc.parent_object_id, dc.parent_column_id) = '%s'\n",
		v, op.Table.String(), op.ColumnName))
	ctx.WriteString(fmt.Sprintf("EXECUTE('ALTER TABLE %s DROP CONSTRAINT \"' + %s + '\"')", table, v))
	return nil
}

func (s *SQLServer) DropIndex(ctx *renderContext, op operation.DropIndex) error {
	ctx.WriteString(fmt.Sprintf("DROP INDEX %s ON %s", s.QuoteIdentifier(op.Name), s.QuoteQualifiedName(op.Table)))
	return nil
}
