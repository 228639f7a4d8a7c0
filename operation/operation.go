// Package operation defines the closed MigrationOperation taxonomy
// (spec.md §3) and the Collection that buckets operations by kind and
// flattens them in the canonical emission order (spec.md §4.3).
//
// Each operation is a pure value type implementing Operation; dispatch is
// by exhaustive type switch (in differ and sqlgen) rather than an
// open-class hierarchy, per spec.md §9.
package operation

import "github.com/schemadrift/migrate/model"

// Kind identifies an operation's variant for bucketing and canonical
// ordering. It is a closed set matching spec.md §3 exactly.
type Kind int

const (
	KindCreateTable Kind = iota
	KindDropTable
	KindMoveTable
	KindRenameTable

	KindAddColumn
	KindDropColumn
	KindAlterColumn
	KindRenameColumn

	KindAddPrimaryKey
	KindDropPrimaryKey

	KindAddForeignKey
	KindDropForeignKey

	KindAddDefaultConstraint
	KindDropDefaultConstraint

	KindCreateIndex
	KindDropIndex
	KindRenameIndex

	KindCreateSequence
	KindDropSequence
)

func (k Kind) String() string {
	switch k {
	case KindCreateTable:
		return "CreateTable"
	case KindDropTable:
		return "DropTable"
	case KindMoveTable:
		return "MoveTable"
	case KindRenameTable:
		return "RenameTable"
	case KindAddColumn:
		return "AddColumn"
	case KindDropColumn:
		return "DropColumn"
	case KindAlterColumn:
		return "AlterColumn"
	case KindRenameColumn:
		return "RenameColumn"
	case KindAddPrimaryKey:
		return "AddPrimaryKey"
	case KindDropPrimaryKey:
		return "DropPrimaryKey"
	case KindAddForeignKey:
		return "AddForeignKey"
	case KindDropForeignKey:
		return "DropForeignKey"
	case KindAddDefaultConstraint:
		return "AddDefaultConstraint"
	case KindDropDefaultConstraint:
		return "DropDefaultConstraint"
	case KindCreateIndex:
		return "CreateIndex"
	case KindDropIndex:
		return "DropIndex"
	case KindRenameIndex:
		return "RenameIndex"
	case KindCreateSequence:
		return "CreateSequence"
	case KindDropSequence:
		return "DropSequence"
	default:
		return "Unknown"
	}
}

// Operation is implemented by every migration-operation value type.
type Operation interface {
	Kind() Kind
}

// --- table operations ---

type CreateTable struct{ Table model.Table }

func (CreateTable) Kind() Kind { return KindCreateTable }

type DropTable struct{ Name model.QualifiedName }

func (DropTable) Kind() Kind { return KindDropTable }

// MoveTable relocates a table to a new schema, keeping its name.
type MoveTable struct {
	OldName   model.QualifiedName
	NewSchema string
}

func (MoveTable) Kind() Kind { return KindMoveTable }

// RenameTable renames a table within its current schema. Name is
// schema-qualified as it stands on the server at the point this operation
// runs (i.e. after any MoveTable has already applied, per spec.md §4.2).
type RenameTable struct {
	Name    model.QualifiedName
	NewName string
}

func (RenameTable) Kind() Kind { return KindRenameTable }

// --- column operations ---

type AddColumn struct {
	Table  model.QualifiedName
	Column model.Column
}

func (AddColumn) Kind() Kind { return KindAddColumn }

type DropColumn struct {
	Table      model.QualifiedName
	ColumnName string
}

func (DropColumn) Kind() Kind { return KindDropColumn }

// AlterColumn carries the full new column definition; Destructive is
// unconditionally true pending future refinement, per spec.md §4.2.
type AlterColumn struct {
	Table       model.QualifiedName
	NewColumn   model.Column
	Destructive bool
}

func (AlterColumn) Kind() Kind { return KindAlterColumn }

type RenameColumn struct {
	Table   model.QualifiedName
	OldName string
	NewName string
}

func (RenameColumn) Kind() Kind { return KindRenameColumn }

// --- primary key operations ---

type AddPrimaryKey struct {
	Table     model.QualifiedName
	Name      string
	Columns   []string
	Clustered bool
}

func (AddPrimaryKey) Kind() Kind { return KindAddPrimaryKey }

type DropPrimaryKey struct {
	Table model.QualifiedName
	Name  string
}

func (DropPrimaryKey) Kind() Kind { return KindDropPrimaryKey }

// --- foreign key operations ---

type AddForeignKey struct {
	Table         model.QualifiedName
	Name          string
	Columns       []string
	RefTable      model.QualifiedName
	RefColumns    []string
	CascadeDelete bool
}

func (AddForeignKey) Kind() Kind { return KindAddForeignKey }

type DropForeignKey struct {
	Table model.QualifiedName
	Name  string
}

func (DropForeignKey) Kind() Kind { return KindDropForeignKey }

// --- default constraint operations ---

type AddDefaultConstraint struct {
	Table        model.QualifiedName
	ColumnName   string
	DefaultValue *model.DefaultValueRef
	DefaultSQL   string
}

func (AddDefaultConstraint) Kind() Kind { return KindAddDefaultConstraint }

type DropDefaultConstraint struct {
	Table      model.QualifiedName
	ColumnName string
}

func (DropDefaultConstraint) Kind() Kind { return KindDropDefaultConstraint }

// --- index operations ---

type CreateIndex struct {
	Table     model.QualifiedName
	Name      string
	Columns   []string
	Unique    bool
	Clustered bool
}

func (CreateIndex) Kind() Kind { return KindCreateIndex }

type DropIndex struct {
	Table model.QualifiedName
	Name  string
}

func (DropIndex) Kind() Kind { return KindDropIndex }

type RenameIndex struct {
	Table   model.QualifiedName
	OldName string
	NewName string
}

func (RenameIndex) Kind() Kind { return KindRenameIndex }

// --- sequence operations ---

type CreateSequence struct{ Sequence model.Sequence }

func (CreateSequence) Kind() Kind { return KindCreateSequence }

type DropSequence struct{ Name model.QualifiedName }

func (DropSequence) Kind() Kind { return KindDropSequence }
