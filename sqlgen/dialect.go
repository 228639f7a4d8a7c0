package sqlgen

import (
	"github.com/schemadrift/migrate/internal/errs"
	"github.com/schemadrift/migrate/model"
	"github.com/schemadrift/migrate/operation"
)

// Dialect renders each operation kind to SQL and supplies the
// identifier/string quoting and column/primary-key extension points
// spec.md §4.5 describes. Concrete dialects embed Base and override only
// the visitors that need to differ; calls dispatch through this
// interface so an override on the outer type is actually observed.
type Dialect interface {
	QuoteIdentifier(name string) string
	QuoteQualifiedName(n model.QualifiedName) string
	QuoteString(s string) string

	ColumnTrait(col model.Column) string
	PrimaryKeyTrait(pk model.PrimaryKey) string

	CreateTable(ctx *renderContext, op operation.CreateTable) error
	DropTable(ctx *renderContext, op operation.DropTable) error
	MoveTable(ctx *renderContext, op operation.MoveTable) error
	RenameTable(ctx *renderContext, op operation.RenameTable) error

	AddColumn(ctx *renderContext, op operation.AddColumn) error
	DropColumn(ctx *renderContext, op operation.DropColumn) error
	AlterColumn(ctx *renderContext, op operation.AlterColumn) error
	RenameColumn(ctx *renderContext, op operation.RenameColumn) error

	AddPrimaryKey(ctx *renderContext, op operation.AddPrimaryKey) error
	DropPrimaryKey(ctx *renderContext, op operation.DropPrimaryKey) error

	AddForeignKey(ctx *renderContext, op operation.AddForeignKey) error
	DropForeignKey(ctx *renderContext, op operation.DropForeignKey) error

	AddDefaultConstraint(ctx *renderContext, op operation.AddDefaultConstraint) error
	DropDefaultConstraint(ctx *renderContext, op operation.DropDefaultConstraint) error

	CreateIndex(ctx *renderContext, op operation.CreateIndex) error
	DropIndex(ctx *renderContext, op operation.DropIndex) error
	RenameIndex(ctx *renderContext, op operation.RenameIndex) error

	CreateSequence(ctx *renderContext, op operation.CreateSequence) error
	DropSequence(ctx *renderContext, op operation.DropSequence) error

	// Synthesize runs before rendering and may rewrite the operation list
	// (the SQL-Server-like dialect's pre-AlterColumn pass, spec.md §4.6).
	// Base returns ops unchanged.
	Synthesize(ops []operation.Operation, source, target *model.Database) ([]operation.Operation, error)
}

// Factory builds a fresh Dialect bound to one (source, target) pair, per
// spec.md §6's "Factories expose dialect selection: Create(source_db,
// target_db) → SqlGenerator".
type Factory func(source, target *model.Database) Dialect

var registry = make(map[string]Factory)

// Register adds a dialect factory under name. Intended to be called from
// package init functions, mirroring how sqldef wires one dialect per
// binary rather than a central switch.
func Register(name string, factory Factory) {
	registry[name] = factory
}

// Create looks up a registered dialect factory by name and builds a
// generator bound to the given database pair.
func Create(name string, source, target *model.Database) (*Generator, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, errs.New(errs.UnsupportedDialectFeature, "no dialect registered under %q", name)
	}
	return NewGenerator(factory(source, target), source, target), nil
}

// Names returns every registered dialect name.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}
