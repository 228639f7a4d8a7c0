package loader

import (
	"testing"

	"github.com/schemadrift/migrate/model"
)

func TestParseCreateTableColumnsAndPrimaryKey(t *testing.T) {
	db, err := Parse(`
		CREATE TABLE public.users (
			id bigint PRIMARY KEY,
			email varchar(255) NOT NULL,
			created_at timestamptz
		);
	`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(db.Tables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(db.Tables))
	}
	tbl := db.Tables[0]
	if tbl.Name.Schema != "public" || tbl.Name.Name != "users" {
		t.Fatalf("unexpected table name: %+v", tbl.Name)
	}
	if len(tbl.Columns) != 3 {
		t.Fatalf("expected 3 columns, got %d", len(tbl.Columns))
	}
	if tbl.PrimaryKey == nil || tbl.PrimaryKey.Columns[0] != "id" {
		t.Fatalf("expected primary key on id, got %+v", tbl.PrimaryKey)
	}
	email, ok := tbl.Column("email")
	if !ok || email.Nullable {
		t.Fatalf("expected email NOT NULL, got %+v", email)
	}
	if email.MaxLength == nil || *email.MaxLength != 255 {
		t.Fatalf("expected varchar(255) max length, got %+v", email.MaxLength)
	}
	createdAt, ok := tbl.Column("created_at")
	if !ok || !createdAt.IsTimestamp {
		t.Fatalf("expected created_at to be a timestamp column, got %+v", createdAt)
	}
}

func TestParseForeignKeyInlineAndViaAlterTable(t *testing.T) {
	sql := `
		CREATE TABLE public.departments (id bigint PRIMARY KEY);
		CREATE TABLE public.employees (
			id bigint PRIMARY KEY,
			department_id bigint REFERENCES public.departments(id)
		);
		ALTER TABLE public.employees ADD CONSTRAINT employees_backup_dept_fkey
			FOREIGN KEY (department_id) REFERENCES public.departments(id) ON DELETE CASCADE;
	`
	db, err := Parse(sql)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	employees, ok := db.Table(model.QualifiedName{Schema: "public", Name: "employees"})
	if !ok {
		t.Fatal("expected employees table")
	}
	if len(employees.ForeignKeys) != 2 {
		t.Fatalf("expected 2 foreign keys (inline + ALTER TABLE), got %d", len(employees.ForeignKeys))
	}
	var sawCascade bool
	for _, fk := range employees.ForeignKeys {
		if fk.CascadeDelete {
			sawCascade = true
		}
	}
	if !sawCascade {
		t.Fatal("expected the ALTER TABLE-added foreign key to carry ON DELETE CASCADE")
	}
}

func TestParseCreateIndexAndSequence(t *testing.T) {
	sql := `
		CREATE TABLE public.widgets (id bigint PRIMARY KEY, sku text);
		CREATE UNIQUE INDEX widgets_sku_idx ON public.widgets (sku);
		CREATE SEQUENCE public.widgets_id_seq;
	`
	db, err := Parse(sql)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	tbl, _ := db.Table(model.QualifiedName{Schema: "public", Name: "widgets"})
	if len(tbl.Indexes) != 1 || !tbl.Indexes[0].Unique || tbl.Indexes[0].Columns[0] != "sku" {
		t.Fatalf("expected a unique index on sku, got %+v", tbl.Indexes)
	}
	if len(db.Sequences) != 1 || db.Sequences[0].Name.Name != "widgets_id_seq" {
		t.Fatalf("expected widgets_id_seq, got %+v", db.Sequences)
	}
}

func TestParseDefaultValue(t *testing.T) {
	db, err := Parse(`CREATE TABLE public.accounts (id bigint PRIMARY KEY, balance numeric(10,2) DEFAULT 0);`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	tbl, _ := db.Table(model.QualifiedName{Schema: "public", Name: "accounts"})
	balance, ok := tbl.Column("balance")
	if !ok || !balance.HasDefault || balance.DefaultSQL == "" {
		t.Fatalf("expected balance to carry a SQL default, got %+v", balance)
	}
	if balance.Precision == nil || *balance.Precision != 10 || balance.Scale == nil || *balance.Scale != 2 {
		t.Fatalf("expected numeric(10,2), got precision=%v scale=%v", balance.Precision, balance.Scale)
	}
}

func TestParseRejectsAlterTableOnUnknownTable(t *testing.T) {
	_, err := Parse(`ALTER TABLE public.ghosts ADD CONSTRAINT x FOREIGN KEY (id) REFERENCES public.other(id);`)
	if err == nil {
		t.Fatal("expected an error for ALTER TABLE on an unknown table")
	}
}

func TestToEntityModelMirrorsTables(t *testing.T) {
	db, err := Parse(`CREATE TABLE public.items (id bigint PRIMARY KEY, name text);`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	m := ToEntityModel(db)
	if len(m.Entities) != 1 || len(m.Entities[0].Properties) != 2 {
		t.Fatalf("expected 1 entity with 2 properties, got %+v", m.Entities)
	}
	if m.Entities[0].TableName != "items" {
		t.Fatalf("expected TableName=items, got %q", m.Entities[0].TableName)
	}
}
