package matcher

import "github.com/schemadrift/migrate/internal/entity"

// EntityPair is a matched (source, target) entity.
type EntityPair struct {
	Source entity.Entity
	Target entity.Entity
}

// PropertyPair is a matched (source, target) property, scoped to one
// EntityPair.
type PropertyPair struct {
	Source entity.Property
	Target entity.Property
}

const fuzzyMatchThreshold = 0.8

// MatchEntities pairs source and target entities per spec.md §4.1:
// simple match by exact Name first, then fuzzy match the remainder by
// property-set overlap — an (e1, e2) pair is accepted iff at least 80%
// of the cross-product of e1's and e2's properties resolve to a
// structural match, where the ratio is 2*|matches| / (|p1| + |p2|).
func MatchEntities(source, target []entity.Entity) (pairs []EntityPair, unmatchedSource, unmatchedTarget []entity.Entity) {
	simple, remSource, remTarget := SimpleMatch(source, target, func(e entity.Entity) string { return e.Name })
	fuzzy, unmatchedSource, unmatchedTarget := FuzzyMatch(remSource, remTarget, entitiesStructurallyMatch)

	pairs = make([]EntityPair, 0, len(simple)+len(fuzzy))
	for _, p := range simple {
		pairs = append(pairs, EntityPair{Source: p.Source, Target: p.Target})
	}
	for _, p := range fuzzy {
		pairs = append(pairs, EntityPair{Source: p.Source, Target: p.Target})
	}
	return pairs, unmatchedSource, unmatchedTarget
}

// entitiesStructurallyMatch reports whether e1 and e2 clear the
// fuzzy-match threshold on property-set overlap.
func entitiesStructurallyMatch(e1, e2 entity.Entity) bool {
	total := len(e1.Properties) + len(e2.Properties)
	if total == 0 {
		return false
	}
	matches := countPropertyMatches(e1.Properties, e2.Properties, propertiesMatchByNameAndType)
	ratio := 2 * float64(matches) / float64(total)
	return ratio >= fuzzyMatchThreshold
}

// countPropertyMatches greedily counts disjoint property pairs across
// the cross-product that satisfy pred, each property consumed by at
// most one pair. This realizes the |matches| term of a fuzzy-match
// ratio without double counting.
func countPropertyMatches(p1, p2 []entity.Property, pred func(a, b entity.Property) bool) int {
	used := make([]bool, len(p2))
	n := 0
	for _, a := range p1 {
		for j, b := range p2 {
			if used[j] {
				continue
			}
			if pred(a, b) {
				used[j] = true
				n++
				break
			}
		}
	}
	return n
}

// propertiesMatchByNameAndType is the predicate spec.md §4.1 calls
// "MatchProperties" when counting the entity-level fuzzy-match ratio:
// agreement on the ORM-level property name and source type.
func propertiesMatchByNameAndType(a, b entity.Property) bool {
	return a.Name == b.Name && a.SourceType == b.SourceType
}

// propertiesStructurallyMatch is the property-level fuzzy-match
// predicate spec.md §4.1 describes as pairing on "column-name
// annotation": agreement on the physical column name and source type,
// independent of the ORM-level property name.
func propertiesStructurallyMatch(a, b entity.Property) bool {
	return a.ColumnName == b.ColumnName && a.SourceType == b.SourceType
}

// MatchProperties pairs the properties of one already-paired entity pair:
// simple match by exact Name, then fuzzy match the remainder by
// propertiesStructurallyMatch.
func MatchProperties(source, target []entity.Property) (pairs []PropertyPair, unmatchedSource, unmatchedTarget []entity.Property) {
	simple, remSource, remTarget := SimpleMatch(source, target, func(p entity.Property) string { return p.Name })
	fuzzy, unmatchedSource, unmatchedTarget := FuzzyMatch(remSource, remTarget, propertiesStructurallyMatch)

	pairs = make([]PropertyPair, 0, len(simple)+len(fuzzy))
	for _, p := range simple {
		pairs = append(pairs, PropertyPair{Source: p.Source, Target: p.Target})
	}
	for _, p := range fuzzy {
		pairs = append(pairs, PropertyPair{Source: p.Source, Target: p.Target})
	}
	return pairs, unmatchedSource, unmatchedTarget
}
