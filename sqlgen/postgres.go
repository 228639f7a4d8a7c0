package sqlgen

import (
	"fmt"

	"github.com/schemadrift/migrate/model"
	"github.com/schemadrift/migrate/operation"
)

// Postgres is an additive dialect (not mandated by spec.md, but not
// forbidden either — see SPEC_FULL.md §12): double-quoted identifiers
// (Base's default, so no override needed) plus Postgres's native ALTER
// TABLE ... RENAME / ALTER INDEX ... RENAME verbs.
type Postgres struct {
	*Base
}

func NewPostgres(source, target *model.Database) Dialect {
	p := &Postgres{Base: NewBase()}
	p.Base.Self = p
	return p
}

func init() {
	Register("postgres", NewPostgres)
}

func (Postgres) ColumnTrait(col model.Column) string {
	if col.ValueGeneration == model.ValueGenerationOnInsert {
		return "GENERATED BY DEFAULT AS IDENTITY"
	}
	return ""
}

func (p *Postgres) MoveTable(ctx *renderContext, op operation.MoveTable) error {
	ctx.WriteString(fmt.Sprintf("ALTER TABLE %s SET SCHEMA %s", p.QuoteQualifiedName(op.OldName), p.QuoteIdentifier(op.NewSchema)))
	return nil
}

func (p *Postgres) RenameTable(ctx *renderContext, op operation.RenameTable) error {
	ctx.WriteString(fmt.Sprintf("ALTER TABLE %s RENAME TO %s", p.QuoteQualifiedName(op.Name), p.QuoteIdentifier(op.NewName)))
	return nil
}

func (p *Postgres) RenameColumn(ctx *renderContext, op operation.RenameColumn) error {
	ctx.WriteString(fmt.Sprintf("ALTER TABLE %s RENAME COLUMN %s TO %s",
		p.QuoteQualifiedName(op.Table), p.QuoteIdentifier(op.OldName), p.QuoteIdentifier(op.NewName)))
	return nil
}

func (p *Postgres) RenameIndex(ctx *renderContext, op operation.RenameIndex) error {
	ctx.WriteString(fmt.Sprintf("ALTER INDEX %s RENAME TO %s", p.QuoteIdentifier(op.OldName), p.QuoteIdentifier(op.NewName)))
	return nil
}

// AlterColumn splits type and nullability into the two separate clauses
// Postgres requires, issued as one comma-joined ALTER TABLE statement.
func (p *Postgres) AlterColumn(ctx *renderContext, op operation.AlterColumn) error {
	nullClause := "SET NOT NULL"
	if op.NewColumn.Nullable {
		nullClause = "DROP NOT NULL"
	}
	ctx.WriteString(fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s TYPE %s, ALTER COLUMN %s %s",
		p.QuoteQualifiedName(op.Table), p.QuoteIdentifier(op.NewColumn.Name), columnTypeSQL(op.NewColumn),
		p.QuoteIdentifier(op.NewColumn.Name), nullClause))
	return nil
}
