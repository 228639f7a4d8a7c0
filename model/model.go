package model

import (
	"fmt"

	"github.com/schemadrift/migrate/internal/errs"
)

// SourceType is an opaque identity for a column's source-level type. The
// upstream model builder is responsible for assigning identities such that
// two columns sharing a conceptual type compare equal; this package only
// ever compares values of this type with ==.
type SourceType string

// ValueGeneration is a column's value-generation strategy.
type ValueGeneration int

const (
	ValueGenerationNone ValueGeneration = iota
	ValueGenerationOnInsert
)

// DefaultValueRef is an opaque reference to a column default's non-SQL
// value form (e.g. a literal or a named constant from the upstream
// model). Two defaults are compared with ==, per spec.md §4.2.
type DefaultValueRef string

// Column is a single table column.
type Column struct {
	Name            string
	SourceType      SourceType
	DataType        string
	Nullable        bool
	ValueGeneration ValueGeneration
	IsTimestamp     bool
	MaxLength       *int
	Precision       *int
	Scale           *int
	FixedLength     bool
	Unicode         bool
	HasDefault      bool
	DefaultValue    *DefaultValueRef
	DefaultSQL      string
}

// validate checks the has-default invariant from spec.md §3.
func (c Column) validate() error {
	if c.Name == "" {
		return errs.New(errs.InvalidInput, "column name must not be empty")
	}
	hasValue := c.DefaultValue != nil
	hasSQL := c.DefaultSQL != ""
	if c.HasDefault != (hasValue || hasSQL) {
		return errs.New(errs.InvariantViolation,
			"column %q: has_default=%v but default_value present=%v, default_sql present=%v",
			c.Name, c.HasDefault, hasValue, hasSQL)
	}
	return nil
}

// PrimaryKey is a table's primary key.
type PrimaryKey struct {
	Name      string
	Table     QualifiedName
	Columns   []string
	Clustered bool
}

// ForeignKey references another table's columns.
type ForeignKey struct {
	Name          string
	Table         QualifiedName
	Columns       []string
	RefTable      QualifiedName
	RefColumns    []string
	CascadeDelete bool
	Unique        bool
	Required      bool
}

func (fk ForeignKey) validate() error {
	if len(fk.Columns) != len(fk.RefColumns) {
		return errs.New(errs.InvariantViolation,
			"foreign key %q: %d owning columns but %d referenced columns",
			fk.Name, len(fk.Columns), len(fk.RefColumns))
	}
	return nil
}

// Index is a (possibly unique, possibly clustered) index over a table's columns.
type Index struct {
	Name      string
	Table     QualifiedName
	Columns   []string
	Unique    bool
	Clustered bool
}

// Table is a schema-qualified table with its columns and constraints.
type Table struct {
	Name        QualifiedName
	Columns     []Column
	PrimaryKey  *PrimaryKey
	ForeignKeys []ForeignKey
	Indexes     []Index
}

// Column looks up a column by name, or returns (Column{}, false).
func (t *Table) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

func (t *Table) hasColumn(name string) bool {
	_, ok := t.Column(name)
	return ok
}

func (t *Table) validate() error {
	seen := make(map[string]bool, len(t.Columns))
	for _, c := range t.Columns {
		if err := c.validate(); err != nil {
			return fmt.Errorf("table %s: %w", t.Name, err)
		}
		if seen[c.Name] {
			return errs.New(errs.InvariantViolation, "table %s: duplicate column %q", t.Name, c.Name)
		}
		seen[c.Name] = true
	}

	if t.PrimaryKey != nil {
		for _, col := range t.PrimaryKey.Columns {
			if !t.hasColumn(col) {
				return errs.New(errs.InvariantViolation,
					"table %s: primary key %q references unknown column %q", t.Name, t.PrimaryKey.Name, col)
			}
		}
	}
	for _, fk := range t.ForeignKeys {
		if err := fk.validate(); err != nil {
			return fmt.Errorf("table %s: %w", t.Name, err)
		}
		for _, col := range fk.Columns {
			if !t.hasColumn(col) {
				return errs.New(errs.InvariantViolation,
					"table %s: foreign key %q references unknown column %q", t.Name, fk.Name, col)
			}
		}
	}
	for _, idx := range t.Indexes {
		for _, col := range idx.Columns {
			if !t.hasColumn(col) {
				return errs.New(errs.InvariantViolation,
					"table %s: index %q references unknown column %q", t.Name, idx.Name, col)
			}
		}
	}
	return nil
}

// Sequence is a schema-qualified sequence object.
type Sequence struct {
	Name QualifiedName
}

// Database is an ordered snapshot of tables and sequences: a single
// source or target side of a diff.
type Database struct {
	Tables    []*Table
	Sequences []*Sequence
}

// Table looks up a table by qualified name, or returns (nil, false).
func (d *Database) Table(name QualifiedName) (*Table, bool) {
	for _, t := range d.Tables {
		if t.Name.Equal(name) {
			return t, true
		}
	}
	return nil, false
}

// Validate checks the invariants from spec.md §3: tables are unique by
// qualified name, and every PrimaryKey/ForeignKey/Index column reference
// resolves to a column of its owning table.
func (d *Database) Validate() error {
	if d == nil {
		return errs.New(errs.InvalidInput, "database must not be nil")
	}
	seen := make(map[QualifiedName]bool, len(d.Tables))
	for _, t := range d.Tables {
		if seen[t.Name] {
			return errs.New(errs.InvariantViolation, "duplicate table %s", t.Name)
		}
		seen[t.Name] = true
		if err := t.validate(); err != nil {
			return err
		}
	}
	return nil
}
