package matcher

import (
	"github.com/schemadrift/migrate/internal/entity"
	"github.com/schemadrift/migrate/model"
)

// ColumnPair is a matched (source, target) column within one MatchedTable.
type ColumnPair struct {
	Source model.Column
	Target model.Column
}

// PrimaryKeyPair is a matched (source, target) primary key.
type PrimaryKeyPair struct {
	Source model.PrimaryKey
	Target model.PrimaryKey
}

// ForeignKeyPair is a matched (source, target) foreign key.
type ForeignKeyPair struct {
	Source model.ForeignKey
	Target model.ForeignKey
}

// IndexPair is a matched (source, target) index.
type IndexPair struct {
	Source model.Index
	Target model.Index
}

// MatchedTable is one paired entity, translated to its mapped tables and
// with every constraint kind matched underneath it.
type MatchedTable struct {
	Entity EntityPair

	SourceTable *model.Table
	TargetTable *model.Table

	Columns                []ColumnPair
	UnmatchedSourceColumns []model.Column
	UnmatchedTargetColumns []model.Column

	PrimaryKey *PrimaryKeyPair

	ForeignKeys                []ForeignKeyPair
	UnmatchedSourceForeignKeys []model.ForeignKey
	UnmatchedTargetForeignKeys []model.ForeignKey

	Indexes                []IndexPair
	UnmatchedSourceIndexes []model.Index
	UnmatchedTargetIndexes []model.Index
}

// Result is the complete pairing of a source and a target database,
// ready for the differ to walk pass by pass.
type Result struct {
	Tables                []MatchedTable
	UnmatchedSourceTables []*model.Table
	UnmatchedTargetTables []*model.Table
}

// Match runs the full two-tier matcher: entities and properties are
// paired at the ORM level (spec.md §4.1), then translated to the
// database level, where primary keys, foreign keys, and indexes are
// paired structurally using the now-established column pairing — the
// "stricter database-level predicate" spec.md §4.1 and §9 describe,
// which additionally checks clustering and cascade-delete agreement.
func Match(sourceEntities, targetEntities []entity.Entity, sourceDB, targetDB *model.Database) (*Result, error) {
	entityPairs, unmatchedSourceEntities, unmatchedTargetEntities := MatchEntities(sourceEntities, targetEntities)

	result := &Result{}

	for _, ep := range entityPairs {
		mt, err := matchTable(ep, sourceDB, targetDB)
		if err != nil {
			return nil, err
		}
		result.Tables = append(result.Tables, mt)
	}

	for _, e := range unmatchedSourceEntities {
		t, err := lookupTable(sourceDB, e)
		if err != nil {
			return nil, err
		}
		result.UnmatchedSourceTables = append(result.UnmatchedSourceTables, t)
	}
	for _, e := range unmatchedTargetEntities {
		t, err := lookupTable(targetDB, e)
		if err != nil {
			return nil, err
		}
		result.UnmatchedTargetTables = append(result.UnmatchedTargetTables, t)
	}

	return result, nil
}

func lookupTable(db *model.Database, e entity.Entity) (*model.Table, error) {
	qn, err := e.QualifiedTableName()
	if err != nil {
		return nil, err
	}
	t, ok := db.Table(qn)
	if !ok {
		return nil, tableNotFoundError(qn)
	}
	return t, nil
}

func matchTable(ep EntityPair, sourceDB, targetDB *model.Database) (MatchedTable, error) {
	mt := MatchedTable{Entity: ep}

	sourceTable, err := lookupTable(sourceDB, ep.Source)
	if err != nil {
		return MatchedTable{}, err
	}
	targetTable, err := lookupTable(targetDB, ep.Target)
	if err != nil {
		return MatchedTable{}, err
	}
	mt.SourceTable = sourceTable
	mt.TargetTable = targetTable

	propPairs, _, _ := MatchProperties(ep.Source.Properties, ep.Target.Properties)
	columnNamePairs := make(map[string]string, len(propPairs)) // source column name -> target column name
	for _, pp := range propPairs {
		columnNamePairs[pp.Source.ColumnName] = pp.Target.ColumnName
	}

	usedTargetColumns := make(map[string]bool, len(targetTable.Columns))
	for _, sc := range sourceTable.Columns {
		tcName, ok := columnNamePairs[sc.Name]
		if !ok {
			mt.UnmatchedSourceColumns = append(mt.UnmatchedSourceColumns, sc)
			continue
		}
		tc, ok := targetTable.Column(tcName)
		if !ok {
			mt.UnmatchedSourceColumns = append(mt.UnmatchedSourceColumns, sc)
			continue
		}
		mt.Columns = append(mt.Columns, ColumnPair{Source: sc, Target: tc})
		usedTargetColumns[tc.Name] = true
	}
	for _, tc := range targetTable.Columns {
		if !usedTargetColumns[tc.Name] {
			mt.UnmatchedTargetColumns = append(mt.UnmatchedTargetColumns, tc)
		}
	}

	colPairedTo := pairedTargetColumnNames(mt.Columns)

	mt.PrimaryKey = matchPrimaryKey(sourceTable.PrimaryKey, targetTable.PrimaryKey, colPairedTo)

	mt.ForeignKeys, mt.UnmatchedSourceForeignKeys, mt.UnmatchedTargetForeignKeys =
		matchForeignKeys(sourceTable.ForeignKeys, targetTable.ForeignKeys, colPairedTo, sourceDB, targetDB)

	mt.Indexes, mt.UnmatchedSourceIndexes, mt.UnmatchedTargetIndexes =
		matchIndexes(sourceTable.Indexes, targetTable.Indexes, colPairedTo)

	return mt, nil
}

// pairedTargetColumnNames maps a source column name to its paired target
// column name, for the column-list structural comparisons below.
func pairedTargetColumnNames(pairs []ColumnPair) map[string]string {
	m := make(map[string]string, len(pairs))
	for _, p := range pairs {
		m[p.Source.Name] = p.Target.Name
	}
	return m
}

// columnListsMatch reports whether sourceCols, in order, pair up with
// targetCols, in order, under colPairedTo.
func columnListsMatch(sourceCols, targetCols []string, colPairedTo map[string]string) bool {
	if len(sourceCols) != len(targetCols) {
		return false
	}
	for i, sc := range sourceCols {
		paired, ok := colPairedTo[sc]
		if !ok || paired != targetCols[i] {
			return false
		}
	}
	return true
}

func matchPrimaryKey(source, target *model.PrimaryKey, colPairedTo map[string]string) *PrimaryKeyPair {
	if source == nil || target == nil {
		return nil
	}
	if !columnListsMatch(source.Columns, target.Columns, colPairedTo) {
		return nil
	}
	if source.Name != target.Name || source.Clustered != target.Clustered {
		return nil
	}
	return &PrimaryKeyPair{Source: *source, Target: *target}
}

func matchForeignKeys(source, target []model.ForeignKey, colPairedTo map[string]string, sourceDB, targetDB *model.Database) (pairs []ForeignKeyPair, unmatchedSource, unmatchedTarget []model.ForeignKey) {
	usedTarget := make([]bool, len(target))
	for _, sfk := range source {
		matched := false
		for j, tfk := range target {
			if usedTarget[j] {
				continue
			}
			if foreignKeysStructurallyMatch(sfk, tfk, colPairedTo, sourceDB, targetDB) {
				pairs = append(pairs, ForeignKeyPair{Source: sfk, Target: tfk})
				usedTarget[j] = true
				matched = true
				break
			}
		}
		if !matched {
			unmatchedSource = append(unmatchedSource, sfk)
		}
	}
	for j, tfk := range target {
		if !usedTarget[j] {
			unmatchedTarget = append(unmatchedTarget, tfk)
		}
	}
	return pairs, unmatchedSource, unmatchedTarget
}

// foreignKeysStructurallyMatch implements spec.md §4.1's foreign-key
// pairing rule: agreement on Unique, Required, the owning column list,
// and the referenced column list, plus the database-level addition of
// cascade-delete agreement. The referenced table must be equal by
// qualified name, and the referenced column list is compared by ordinal
// name equality; the referenced table's own column pairing is not
// consulted (sourceDB and targetDB are unused), so a renamed referenced
// table or column leaves the foreign key unpaired.
func foreignKeysStructurallyMatch(sfk, tfk model.ForeignKey, colPairedTo map[string]string, sourceDB, targetDB *model.Database) bool {
	if sfk.Unique != tfk.Unique || sfk.Required != tfk.Required || sfk.CascadeDelete != tfk.CascadeDelete {
		return false
	}
	if !columnListsMatch(sfk.Columns, tfk.Columns, colPairedTo) {
		return false
	}
	if !sfk.RefTable.Equal(tfk.RefTable) {
		return false
	}
	if len(sfk.RefColumns) != len(tfk.RefColumns) {
		return false
	}
	for i := range sfk.RefColumns {
		if sfk.RefColumns[i] != tfk.RefColumns[i] {
			return false
		}
	}
	return true
}

func matchIndexes(source, target []model.Index, colPairedTo map[string]string) (pairs []IndexPair, unmatchedSource, unmatchedTarget []model.Index) {
	usedTarget := make([]bool, len(target))
	for _, si := range source {
		matched := false
		for j, ti := range target {
			if usedTarget[j] {
				continue
			}
			if indexesStructurallyMatch(si, ti, colPairedTo) {
				pairs = append(pairs, IndexPair{Source: si, Target: ti})
				usedTarget[j] = true
				matched = true
				break
			}
		}
		if !matched {
			unmatchedSource = append(unmatchedSource, si)
		}
	}
	for j, ti := range target {
		if !usedTarget[j] {
			unmatchedTarget = append(unmatchedTarget, ti)
		}
	}
	return pairs, unmatchedSource, unmatchedTarget
}

// indexesStructurallyMatch pairs on Unique and the column list per
// spec.md §4.1, plus the database-level addition of clustering
// agreement. Name is deliberately excluded: a renamed index is still the
// "same" index for matching purposes, detected as RenameIndex rather
// than a drop+create.
func indexesStructurallyMatch(si, ti model.Index, colPairedTo map[string]string) bool {
	if si.Unique != ti.Unique || si.Clustered != ti.Clustered {
		return false
	}
	return columnListsMatch(si.Columns, ti.Columns, colPairedTo)
}
