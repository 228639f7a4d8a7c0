package sqlgen

import (
	"github.com/schemadrift/migrate/internal/errs"
	"github.com/schemadrift/migrate/model"
	"github.com/schemadrift/migrate/operation"
)

// Generator is the stateful SqlGenerator spec.md §4.5 and §5 describe: it
// owns a variable-name counter that must not be reused across calls, so
// callers construct a fresh instance per GenerateSql request (spec.md
// §5's "Shared resources" rule).
type Generator struct {
	dialect    Dialect
	source     *model.Database
	target     *model.Database
	varCounter int
}

// NewGenerator binds a dialect to one (source, target) database pair.
func NewGenerator(dialect Dialect, source, target *model.Database) *Generator {
	return &Generator{dialect: dialect, source: source, target: target}
}

// GenerateSql renders ops to an ordered sequence of SQL statements. The
// dialect's Synthesize hook runs first and may rewrite the operation
// list (the SQL-Server-like dialect's pre-AlterColumn pass); the result
// is re-flattened in canonical order before rendering, per spec.md §4.6.
func (g *Generator) GenerateSql(ops []operation.Operation) ([]Statement, error) {
	synthesized, err := g.dialect.Synthesize(ops, g.source, g.target)
	if err != nil {
		return nil, err
	}

	c := operation.NewCollection()
	c.AppendAll(synthesized...)
	flattened := c.Flatten()

	statements := make([]Statement, 0, len(flattened))
	for _, op := range flattened {
		stmt, err := g.render(op)
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}
	return statements, nil
}

func (g *Generator) render(op operation.Operation) (Statement, error) {
	ctx := &renderContext{varCounter: &g.varCounter}

	var err error
	switch o := op.(type) {
	case operation.CreateTable:
		err = g.dialect.CreateTable(ctx, o)
	case operation.DropTable:
		err = g.dialect.DropTable(ctx, o)
	case operation.MoveTable:
		err = g.dialect.MoveTable(ctx, o)
	case operation.RenameTable:
		err = g.dialect.RenameTable(ctx, o)
	case operation.AddColumn:
		err = g.dialect.AddColumn(ctx, o)
	case operation.DropColumn:
		err = g.dialect.DropColumn(ctx, o)
	case operation.AlterColumn:
		err = g.dialect.AlterColumn(ctx, o)
	case operation.RenameColumn:
		err = g.dialect.RenameColumn(ctx, o)
	case operation.AddPrimaryKey:
		err = g.dialect.AddPrimaryKey(ctx, o)
	case operation.DropPrimaryKey:
		err = g.dialect.DropPrimaryKey(ctx, o)
	case operation.AddForeignKey:
		err = g.dialect.AddForeignKey(ctx, o)
	case operation.DropForeignKey:
		err = g.dialect.DropForeignKey(ctx, o)
	case operation.AddDefaultConstraint:
		err = g.dialect.AddDefaultConstraint(ctx, o)
	case operation.DropDefaultConstraint:
		err = g.dialect.DropDefaultConstraint(ctx, o)
	case operation.CreateIndex:
		err = g.dialect.CreateIndex(ctx, o)
	case operation.DropIndex:
		err = g.dialect.DropIndex(ctx, o)
	case operation.RenameIndex:
		err = g.dialect.RenameIndex(ctx, o)
	case operation.CreateSequence:
		err = g.dialect.CreateSequence(ctx, o)
	case operation.DropSequence:
		err = g.dialect.DropSequence(ctx, o)
	default:
		return Statement{}, errs.New(errs.UnhandledOperation, "sqlgen: unhandled operation %T", op)
	}
	if err != nil {
		return Statement{}, err
	}
	return Statement{Text: ctx.String()}, nil
}
