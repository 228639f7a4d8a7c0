package sqlgen

import (
	"strings"
	"testing"

	"github.com/schemadrift/migrate/model"
	"github.com/schemadrift/migrate/operation"
)

func mustQN(t *testing.T, s string) model.QualifiedName {
	t.Helper()
	n, err := model.ParseQualifiedName(s)
	if err != nil {
		t.Fatalf("ParseQualifiedName(%q): %v", s, err)
	}
	return n
}

// TestRenameColumnSQLServer covers spec.md §8 scenario S1.
func TestRenameColumnSQLServer(t *testing.T) {
	gen, err := Create("sqlserver", nil, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	ops := []operation.Operation{
		operation.RenameColumn{Table: mustQN(t, "dbo.T"), OldName: "Foo", NewName: "Bar"},
	}
	stmts, err := gen.GenerateSql(ops)
	if err != nil {
		t.Fatalf("GenerateSql: %v", err)
	}
	if len(stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(stmts))
	}
	want := "EXECUTE sp_rename @objname = N'dbo.T.Foo', @newname = N'Bar', @objtype = N'COLUMN'"
	if stmts[0].Text != want {
		t.Fatalf("got %q, want %q", stmts[0].Text, want)
	}
}

func TestBaseDialectRejectsRenameTable(t *testing.T) {
	gen, err := Create("base", nil, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, err = gen.GenerateSql([]operation.Operation{
		operation.RenameTable{Name: mustQN(t, "dbo.T"), NewName: "U"},
	})
	if err == nil {
		t.Fatal("expected UnsupportedDialectFeature error from base dialect")
	}
}

// TestMoveTableNoBaseSQL covers spec.md §8 scenario S3.
func TestMoveTableNoBaseSQL(t *testing.T) {
	gen, err := Create("base", nil, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	stmts, err := gen.GenerateSql([]operation.Operation{
		operation.MoveTable{OldName: mustQN(t, "src.T"), NewSchema: "dst"},
	})
	if err != nil {
		t.Fatalf("GenerateSql: %v", err)
	}
	if len(stmts) != 1 || stmts[0].Text != "" {
		t.Fatalf("expected one empty statement from base MoveTable, got %+v", stmts)
	}
}

// TestAlterColumnSynthesisSQLServer covers spec.md §8 property 6 /
// scenario S4: altering a PK column drops and re-adds the primary key
// around the alter.
func TestAlterColumnSynthesisSQLServer(t *testing.T) {
	table := mustQN(t, "dbo.T")
	sourceDB := &model.Database{Tables: []*model.Table{{
		Name:       table,
		Columns:    []model.Column{{Name: "Id", SourceType: "int", DataType: "int", Nullable: false}},
		PrimaryKey: &model.PrimaryKey{Name: "PK_T", Columns: []string{"Id"}, Clustered: true},
	}}}
	targetDB := &model.Database{Tables: []*model.Table{{
		Name:       table,
		Columns:    []model.Column{{Name: "Id", SourceType: "int", DataType: "int", Nullable: true}},
		PrimaryKey: &model.PrimaryKey{Name: "PK_T", Columns: []string{"Id"}, Clustered: true},
	}}}

	gen, err := Create("sqlserver", sourceDB, targetDB)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	ops := []operation.Operation{
		operation.AlterColumn{Table: table, NewColumn: targetDB.Tables[0].Columns[0], Destructive: true},
	}
	stmts, err := gen.GenerateSql(ops)
	if err != nil {
		t.Fatalf("GenerateSql: %v", err)
	}

	var kinds []string
	for _, st := range stmts {
		switch {
		case strings.Contains(st.Text, "DROP CONSTRAINT"):
			kinds = append(kinds, "drop_pk")
		case strings.Contains(st.Text, "ALTER COLUMN"):
			kinds = append(kinds, "alter")
		case strings.Contains(st.Text, "ADD CONSTRAINT") && strings.Contains(st.Text, "PRIMARY KEY"):
			kinds = append(kinds, "add_pk")
		}
	}
	if len(kinds) != 3 || kinds[0] != "drop_pk" || kinds[1] != "alter" || kinds[2] != "add_pk" {
		t.Fatalf("expected [drop_pk alter add_pk], got %v (statements: %+v)", kinds, stmts)
	}
}

// TestDropDefaultConstraintSQLServer covers spec.md §8 scenario S5.
func TestDropDefaultConstraintSQLServer(t *testing.T) {
	gen, err := Create("sqlserver", nil, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	stmts, err := gen.GenerateSql([]operation.Operation{
		operation.DropDefaultConstraint{Table: mustQN(t, "dbo.T"), ColumnName: "X"},
	})
	if err != nil {
		t.Fatalf("GenerateSql: %v", err)
	}
	text := stmts[0].Text
	if !strings.Contains(text, "DECLARE @var0") {
		t.Fatalf("expected a DECLARE @var0, got %q", text)
	}
	if !strings.Contains(text, "sys.default_constraints") {
		t.Fatalf("expected a sys.default_constraints lookup, got %q", text)
	}
	if !strings.Contains(text, "EXECUTE('ALTER TABLE") {
		t.Fatalf("expected a dynamic EXECUTE, got %q", text)
	}
}

// TestAddColumnWithDefaultOrderPreserved covers spec.md §8 scenario S6.
func TestAddColumnWithDefaultOrderPreserved(t *testing.T) {
	gen, err := Create("sqlserver", nil, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defaultVal := model.DefaultValueRef("0")
	ops := []operation.Operation{
		operation.AddColumn{Table: mustQN(t, "dbo.T"), Column: model.Column{Name: "Y", DataType: "int", Nullable: false}},
		operation.AddDefaultConstraint{Table: mustQN(t, "dbo.T"), ColumnName: "Y", DefaultValue: &defaultVal},
	}
	stmts, err := gen.GenerateSql(ops)
	if err != nil {
		t.Fatalf("GenerateSql: %v", err)
	}
	if len(stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(stmts))
	}
	if !strings.Contains(stmts[0].Text, "ADD COLUMN") {
		t.Fatalf("expected AddColumn first, got %q", stmts[0].Text)
	}
	if !strings.Contains(stmts[1].Text, "ADD CONSTRAINT") {
		t.Fatalf("expected AddDefaultConstraint second, got %q", stmts[1].Text)
	}
}

func TestQuoteIdentifierDialects(t *testing.T) {
	cases := []struct {
		dialect string
		want    string
	}{
		{"base", `"Foo"`},
		{"sqlserver", "[Foo]"},
		{"postgres", `"Foo"`},
		{"mysql", "`Foo`"},
	}
	for _, c := range cases {
		gen, err := Create(c.dialect, nil, nil)
		if err != nil {
			t.Fatalf("Create(%s): %v", c.dialect, err)
		}
		got := gen.dialect.QuoteIdentifier("Foo")
		if got != c.want {
			t.Fatalf("%s: got %q, want %q", c.dialect, got, c.want)
		}
	}
}
