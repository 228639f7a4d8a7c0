package model

import (
	"testing"

	"github.com/schemadrift/migrate/internal/errs"
)

func mustQN(t *testing.T, s string) QualifiedName {
	t.Helper()
	qn, err := ParseQualifiedName(s)
	if err != nil {
		t.Fatalf("ParseQualifiedName(%q): %v", s, err)
	}
	return qn
}

func TestParseQualifiedName(t *testing.T) {
	qn, err := ParseQualifiedName("dbo.Widgets")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if qn.Schema != "dbo" || qn.Name != "Widgets" {
		t.Fatalf("got %+v", qn)
	}
	if qn.String() != "dbo.Widgets" {
		t.Fatalf("String() = %q", qn.String())
	}

	if _, err := ParseQualifiedName("nodot"); err == nil {
		t.Fatal("expected error for missing dot")
	}
}

func TestQualifiedNameEqualIsOrdinal(t *testing.T) {
	a := mustQN(t, "dbo.T")
	b := mustQN(t, "dbo.t")
	if a.Equal(b) {
		t.Fatal("expected case-sensitive comparison to differ")
	}
}

func TestDatabaseValidateDuplicateTable(t *testing.T) {
	name := mustQN(t, "dbo.T")
	db := &Database{Tables: []*Table{{Name: name}, {Name: name}}}
	err := db.Validate()
	if err == nil || !errs.Is(err, errs.InvariantViolation) {
		t.Fatalf("expected InvariantViolation, got %v", err)
	}
}

func TestDatabaseValidateDanglingPrimaryKeyColumn(t *testing.T) {
	name := mustQN(t, "dbo.T")
	tbl := &Table{
		Name:    name,
		Columns: []Column{{Name: "Id"}},
		PrimaryKey: &PrimaryKey{
			Name:    "PK_T",
			Table:   name,
			Columns: []string{"Missing"},
		},
	}
	db := &Database{Tables: []*Table{tbl}}
	err := db.Validate()
	if err == nil || !errs.Is(err, errs.InvariantViolation) {
		t.Fatalf("expected InvariantViolation, got %v", err)
	}
}

func TestDatabaseValidateForeignKeyColumnCountMismatch(t *testing.T) {
	name := mustQN(t, "dbo.T")
	tbl := &Table{
		Name:    name,
		Columns: []Column{{Name: "A"}, {Name: "B"}},
		ForeignKeys: []ForeignKey{{
			Name:       "FK_T",
			Table:      name,
			Columns:    []string{"A", "B"},
			RefTable:   mustQN(t, "dbo.U"),
			RefColumns: []string{"Id"},
		}},
	}
	db := &Database{Tables: []*Table{tbl}}
	err := db.Validate()
	if err == nil || !errs.Is(err, errs.InvariantViolation) {
		t.Fatalf("expected InvariantViolation, got %v", err)
	}
}

func TestColumnHasDefaultInvariant(t *testing.T) {
	name := mustQN(t, "dbo.T")
	tbl := &Table{
		Name: name,
		Columns: []Column{{
			Name:       "X",
			HasDefault: true,
			// no DefaultValue and no DefaultSQL: violates invariant
		}},
	}
	db := &Database{Tables: []*Table{tbl}}
	err := db.Validate()
	if err == nil || !errs.Is(err, errs.InvariantViolation) {
		t.Fatalf("expected InvariantViolation, got %v", err)
	}
}

func TestDatabaseValidateOK(t *testing.T) {
	name := mustQN(t, "dbo.T")
	def := DefaultValueRef("0")
	tbl := &Table{
		Name: name,
		Columns: []Column{
			{Name: "Id"},
			{Name: "X", HasDefault: true, DefaultValue: &def},
		},
		PrimaryKey: &PrimaryKey{Name: "PK_T", Table: name, Columns: []string{"Id"}, Clustered: true},
	}
	db := &Database{Tables: []*Table{tbl}}
	if err := db.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
