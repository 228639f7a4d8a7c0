package operation

import (
	"testing"

	"github.com/schemadrift/migrate/model"
)

func qn(t *testing.T, s string) model.QualifiedName {
	t.Helper()
	n, err := model.ParseQualifiedName(s)
	if err != nil {
		t.Fatalf("ParseQualifiedName(%q): %v", s, err)
	}
	return n
}

func TestCollectionFlattenCanonicalOrder(t *testing.T) {
	c := NewCollection()
	// Append out of canonical order; Flatten must still put drops before
	// creates regardless of insertion order across kinds.
	c.Append(CreateTable{Table: model.Table{Name: qn(t, "dbo.New")}})
	c.Append(DropIndex{Table: qn(t, "dbo.T"), Name: "IX_1"})
	c.Append(AddForeignKey{Table: qn(t, "dbo.T"), Name: "FK_1"})
	c.Append(DropTable{Name: qn(t, "dbo.Old")})

	ops := c.Flatten()
	kindIndex := func(k Kind) int {
		for i, op := range ops {
			if op.Kind() == k {
				return i
			}
		}
		t.Fatalf("kind %v not found", k)
		return -1
	}

	if kindIndex(KindDropIndex) >= kindIndex(KindDropTable) {
		t.Fatal("DropIndex must precede DropTable")
	}
	if kindIndex(KindDropTable) >= kindIndex(KindCreateTable) {
		t.Fatal("DropTable must precede CreateTable")
	}
	if kindIndex(KindCreateTable) >= kindIndex(KindAddForeignKey) {
		t.Fatal("CreateTable must precede AddForeignKey")
	}
}

// TestCollectionFlattenDropSchemaOrder covers spec.md §6's DropSchema
// order (`DropSequence*, DropForeignKey*, DropTable*`) surviving a
// Flatten call, since GenerateSql re-flattens every operation list,
// including one built directly by DropSchema.
func TestCollectionFlattenDropSchemaOrder(t *testing.T) {
	c := NewCollection()
	c.Append(DropForeignKey{Table: qn(t, "dbo.T"), Name: "FK_1"})
	c.Append(DropTable{Name: qn(t, "dbo.T")})
	c.Append(DropSequence{Name: qn(t, "dbo.Seq1")})

	ops := c.Flatten()
	kindIndex := func(k Kind) int {
		for i, op := range ops {
			if op.Kind() == k {
				return i
			}
		}
		t.Fatalf("kind %v not found", k)
		return -1
	}

	if kindIndex(KindDropSequence) >= kindIndex(KindDropForeignKey) {
		t.Fatal("DropSequence must precede DropForeignKey")
	}
	if kindIndex(KindDropForeignKey) >= kindIndex(KindDropTable) {
		t.Fatal("DropForeignKey must precede DropTable")
	}
}

func TestCollectionPreservesEmissionOrderWithinKind(t *testing.T) {
	c := NewCollection()
	c.Append(DropTable{Name: qn(t, "dbo.A")})
	c.Append(DropTable{Name: qn(t, "dbo.B")})
	c.Append(DropTable{Name: qn(t, "dbo.C")})

	ops := c.Get(KindDropTable)
	if len(ops) != 3 {
		t.Fatalf("expected 3 ops, got %d", len(ops))
	}
	want := []string{"dbo.A", "dbo.B", "dbo.C"}
	for i, op := range ops {
		dt := op.(DropTable)
		if dt.Name.String() != want[i] {
			t.Fatalf("op %d: got %s, want %s", i, dt.Name, want[i])
		}
	}
}

func TestCollectionReplace(t *testing.T) {
	c := NewCollection()
	c.Append(DropTable{Name: qn(t, "dbo.A")})
	c.Replace(KindDropTable, []Operation{DropTable{Name: qn(t, "dbo.Z")}})

	ops := c.Get(KindDropTable)
	if len(ops) != 1 || ops[0].(DropTable).Name.Name != "Z" {
		t.Fatalf("Replace did not overwrite bucket: %+v", ops)
	}
}
