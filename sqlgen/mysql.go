package sqlgen

import (
	"fmt"
	"strings"

	"github.com/schemadrift/migrate/model"
	"github.com/schemadrift/migrate/operation"
)

// MySQL is an additive dialect (see SPEC_FULL.md §12): backtick-delimited
// identifiers and MySQL's RENAME TABLE / RENAME COLUMN / RENAME INDEX /
// MODIFY COLUMN verbs.
type MySQL struct {
	*Base
}

func NewMySQL(source, target *model.Database) Dialect {
	m := &MySQL{Base: NewBase()}
	m.Base.Self = m
	return m
}

func init() {
	Register("mysql", NewMySQL)
}

func (MySQL) QuoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

func (MySQL) ColumnTrait(col model.Column) string {
	if col.ValueGeneration == model.ValueGenerationOnInsert {
		return "AUTO_INCREMENT"
	}
	return ""
}

func (m *MySQL) MoveTable(ctx *renderContext, op operation.MoveTable) error {
	newName := model.QualifiedName{Schema: op.NewSchema, Name: op.OldName.Name}
	ctx.WriteString(fmt.Sprintf("RENAME TABLE %s TO %s", m.QuoteQualifiedName(op.OldName), m.QuoteQualifiedName(newName)))
	return nil
}

func (m *MySQL) RenameTable(ctx *renderContext, op operation.RenameTable) error {
	newName := model.QualifiedName{Schema: op.Name.Schema, Name: op.NewName}
	ctx.WriteString(fmt.Sprintf("RENAME TABLE %s TO %s", m.QuoteQualifiedName(op.Name), m.QuoteQualifiedName(newName)))
	return nil
}

func (m *MySQL) RenameColumn(ctx *renderContext, op operation.RenameColumn) error {
	ctx.WriteString(fmt.Sprintf("ALTER TABLE %s RENAME COLUMN %s TO %s",
		m.QuoteQualifiedName(op.Table), m.QuoteIdentifier(op.OldName), m.QuoteIdentifier(op.NewName)))
	return nil
}

func (m *MySQL) RenameIndex(ctx *renderContext, op operation.RenameIndex) error {
	ctx.WriteString(fmt.Sprintf("ALTER TABLE %s RENAME INDEX %s TO %s",
		m.QuoteQualifiedName(op.Table), m.QuoteIdentifier(op.OldName), m.QuoteIdentifier(op.NewName)))
	return nil
}

// AlterColumn uses MySQL's MODIFY COLUMN verb, which (unlike Postgres)
// takes the full column definition in one clause.
func (m *MySQL) AlterColumn(ctx *renderContext, op operation.AlterColumn) error {
	ctx.WriteString(fmt.Sprintf("ALTER TABLE %s MODIFY COLUMN %s %s %s",
		m.QuoteQualifiedName(op.Table), m.QuoteIdentifier(op.NewColumn.Name), columnTypeSQL(op.NewColumn), nullabilitySQL(op.NewColumn.Nullable)))
	return nil
}

func (m *MySQL) DropIndex(ctx *renderContext, op operation.DropIndex) error {
	ctx.WriteString(fmt.Sprintf("DROP INDEX %s ON %s", m.QuoteIdentifier(op.Name), m.QuoteQualifiedName(op.Table)))
	return nil
}
