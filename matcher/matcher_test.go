package matcher

import (
	"testing"

	"github.com/schemadrift/migrate/internal/entity"
	"github.com/schemadrift/migrate/model"
)

func mustQN(t *testing.T, s string) model.QualifiedName {
	t.Helper()
	n, err := model.ParseQualifiedName(s)
	if err != nil {
		t.Fatalf("ParseQualifiedName(%q): %v", s, err)
	}
	return n
}

func TestSimpleMatchExactName(t *testing.T) {
	source := []string{"a", "b", "c"}
	target := []string{"c", "a", "z"}

	pairs, unSrc, unTgt := SimpleMatch(source, target, func(s string) string { return s })

	if len(pairs) != 2 {
		t.Fatalf("expected 2 pairs, got %d: %+v", len(pairs), pairs)
	}
	if len(unSrc) != 1 || unSrc[0] != "b" {
		t.Fatalf("expected unmatched source [b], got %v", unSrc)
	}
	if len(unTgt) != 1 || unTgt[0] != "z" {
		t.Fatalf("expected unmatched target [z], got %v", unTgt)
	}
}

func TestMatchEntitiesSimpleByName(t *testing.T) {
	source := []entity.Entity{
		{Name: "Customer", Schema: "dbo", TableName: "Customer"},
	}
	target := []entity.Entity{
		{Name: "Customer", Schema: "dbo", TableName: "Customers"},
	}

	pairs, unSrc, unTgt := MatchEntities(source, target)
	if len(pairs) != 1 {
		t.Fatalf("expected 1 pair (matched by stable entity name despite table rename), got %d", len(pairs))
	}
	if len(unSrc) != 0 || len(unTgt) != 0 {
		t.Fatalf("expected no unmatched entities, got %v / %v", unSrc, unTgt)
	}
	if pairs[0].Target.TableName != "Customers" {
		t.Fatalf("expected target table name Customers, got %s", pairs[0].Target.TableName)
	}
}

func TestMatchEntitiesFuzzyByPropertyOverlap(t *testing.T) {
	// Entity renamed (Customer -> Client) but 4 of 5 properties still
	// line up by ORM-level name + source type: ratio = 2*4/(5+5) = 0.8.
	props := func(n int) []entity.Property {
		var ps []entity.Property
		for i := 0; i < n; i++ {
			ps = append(ps, entity.Property{
				Name:       string(rune('A' + i)),
				ColumnName: string(rune('A' + i)),
				SourceType: "int",
			})
		}
		return ps
	}

	source := []entity.Entity{
		{Name: "Customer", Schema: "dbo", TableName: "Customer", Properties: props(5)},
	}
	target := []entity.Entity{
		{Name: "Client", Schema: "dbo", TableName: "Client", Properties: append(props(4),
			entity.Property{Name: "Z", ColumnName: "Z", SourceType: "int"})},
	}

	pairs, unSrc, unTgt := MatchEntities(source, target)
	if len(pairs) != 1 {
		t.Fatalf("expected fuzzy match at 80%% overlap, got %d pairs, unmatched %v/%v", len(pairs), unSrc, unTgt)
	}
}

// TestMatchEntitiesFuzzyUsesNameNotColumnName covers spec.md §4.1's
// distinction between the two fuzzy tiers: the entity-level ratio counts
// pairs agreeing on property Name + SourceType, not ColumnName — the
// column-name annotation is only the property-level tier's predicate.
func TestMatchEntitiesFuzzyUsesNameNotColumnName(t *testing.T) {
	// 4 of 5 properties share a Name across source/target but every
	// ColumnName differs. Under the correct Name+SourceType predicate
	// this clears the 80% threshold (2*4/10 = 0.8); under the buggy
	// ColumnName+SourceType predicate it would score 0 and stay
	// unmatched.
	source := []entity.Entity{{
		Name: "Customer", Schema: "dbo", TableName: "Customer",
		Properties: []entity.Property{
			{Name: "A", ColumnName: "col_a_src", SourceType: "int"},
			{Name: "B", ColumnName: "col_b_src", SourceType: "int"},
			{Name: "C", ColumnName: "col_c_src", SourceType: "int"},
			{Name: "D", ColumnName: "col_d_src", SourceType: "int"},
			{Name: "E", ColumnName: "col_e_src", SourceType: "int"},
		},
	}}
	target := []entity.Entity{{
		Name: "Client", Schema: "dbo", TableName: "Client",
		Properties: []entity.Property{
			{Name: "A", ColumnName: "col_a_tgt", SourceType: "int"},
			{Name: "B", ColumnName: "col_b_tgt", SourceType: "int"},
			{Name: "C", ColumnName: "col_c_tgt", SourceType: "int"},
			{Name: "D", ColumnName: "col_d_tgt", SourceType: "int"},
			{Name: "Z", ColumnName: "col_z_tgt", SourceType: "int"},
		},
	}}

	pairs, unSrc, unTgt := MatchEntities(source, target)
	if len(pairs) != 1 {
		t.Fatalf("expected fuzzy match via Name+SourceType overlap despite differing ColumnNames, got %d pairs, unmatched %v/%v", len(pairs), unSrc, unTgt)
	}
}

func TestMatchEntitiesBelowThresholdStaysUnmatched(t *testing.T) {
	props := func(n int) []entity.Property {
		var ps []entity.Property
		for i := 0; i < n; i++ {
			ps = append(ps, entity.Property{Name: "P", ColumnName: string(rune('A' + i)), SourceType: "int"})
		}
		return ps
	}
	source := []entity.Entity{{Name: "Customer", Schema: "dbo", TableName: "Customer", Properties: props(5)}}
	target := []entity.Entity{{Name: "Other", Schema: "dbo", TableName: "Other", Properties: props(1)}}

	pairs, unSrc, unTgt := MatchEntities(source, target)
	if len(pairs) != 0 {
		t.Fatalf("expected no match below threshold, got %d", len(pairs))
	}
	if len(unSrc) != 1 || len(unTgt) != 1 {
		t.Fatalf("expected both sides unmatched, got %v/%v", unSrc, unTgt)
	}
}

func TestMatchRenamesColumn(t *testing.T) {
	sourceEntity := entity.Entity{
		Name: "Customer", Schema: "dbo", TableName: "Customer",
		Properties: []entity.Property{
			{Name: "Id", ColumnName: "Id", SourceType: "int"},
			{Name: "Name", ColumnName: "Name", SourceType: "string"},
		},
	}
	targetEntity := entity.Entity{
		Name: "Customer", Schema: "dbo", TableName: "Customer",
		Properties: []entity.Property{
			{Name: "Id", ColumnName: "Id", SourceType: "int"},
			{Name: "Name", ColumnName: "FullName", SourceType: "string"},
		},
	}

	sourceTable := &model.Table{
		Name: mustQN(t, "dbo.Customer"),
		Columns: []model.Column{
			{Name: "Id", SourceType: "int"},
			{Name: "Name", SourceType: "string"},
		},
		PrimaryKey: &model.PrimaryKey{Name: "PK_Customer", Columns: []string{"Id"}},
	}
	targetTable := &model.Table{
		Name: mustQN(t, "dbo.Customer"),
		Columns: []model.Column{
			{Name: "Id", SourceType: "int"},
			{Name: "FullName", SourceType: "string"},
		},
		PrimaryKey: &model.PrimaryKey{Name: "PK_Customer", Columns: []string{"Id"}},
	}

	sourceDB := &model.Database{Tables: []*model.Table{sourceTable}}
	targetDB := &model.Database{Tables: []*model.Table{targetTable}}

	result, err := Match([]entity.Entity{sourceEntity}, []entity.Entity{targetEntity}, sourceDB, targetDB)
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if len(result.Tables) != 1 {
		t.Fatalf("expected 1 matched table, got %d", len(result.Tables))
	}
	mt := result.Tables[0]
	if len(mt.Columns) != 2 {
		t.Fatalf("expected 2 column pairs, got %d (unmatched source %v, unmatched target %v)",
			len(mt.Columns), mt.UnmatchedSourceColumns, mt.UnmatchedTargetColumns)
	}
	if mt.PrimaryKey == nil {
		t.Fatal("expected primary key to be matched")
	}

	var nameCol *ColumnPair
	for i := range mt.Columns {
		if mt.Columns[i].Source.Name == "Name" {
			nameCol = &mt.Columns[i]
		}
	}
	if nameCol == nil {
		t.Fatal("expected Name column to be paired")
	}
	if nameCol.Target.Name != "FullName" {
		t.Fatalf("expected Name to pair with FullName, got %s", nameCol.Target.Name)
	}
}

func TestMatchForeignKeysStructural(t *testing.T) {
	colPairedTo := map[string]string{"CustomerId": "CustomerId"}
	source := model.ForeignKey{
		Name: "FK_old", Columns: []string{"CustomerId"},
		RefTable: mustQN(t, "dbo.Customer"), RefColumns: []string{"Id"},
		CascadeDelete: true,
	}
	target := model.ForeignKey{
		Name: "FK_new", Columns: []string{"CustomerId"},
		RefTable: mustQN(t, "dbo.Customer"), RefColumns: []string{"Id"},
		CascadeDelete: true,
	}
	if !foreignKeysStructurallyMatch(source, target, colPairedTo, nil, nil) {
		t.Fatal("expected structural match despite differing FK name")
	}

	target.CascadeDelete = false
	if foreignKeysStructurallyMatch(source, target, colPairedTo, nil, nil) {
		t.Fatal("expected mismatch on cascade-delete disagreement")
	}
}

func TestMatchIndexesIgnoresNameButNotClustering(t *testing.T) {
	colPairedTo := map[string]string{"Email": "Email"}
	source := model.Index{Name: "IX_old", Columns: []string{"Email"}, Unique: true, Clustered: false}
	target := model.Index{Name: "IX_new", Columns: []string{"Email"}, Unique: true, Clustered: false}
	if !indexesStructurallyMatch(source, target, colPairedTo) {
		t.Fatal("expected match across a rename")
	}

	target.Clustered = true
	if indexesStructurallyMatch(source, target, colPairedTo) {
		t.Fatal("expected mismatch on differing clustering")
	}
}
