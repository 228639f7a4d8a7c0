// Package matcher implements the two-tier (simple + fuzzy) pairing rules
// from spec.md §4.1: entities and properties are paired first by exact
// name, then — for the remainder — by structural similarity; primary
// keys, foreign keys, and indexes are paired structurally once their
// owning entities are paired and translated to the database level.
package matcher

// Pair is a matched (source, target) value of type T.
type Pair[T any] struct {
	Source T
	Target T
}

// SimpleMatch pairs elements of sources and targets whose key() values
// are byte-for-byte (ordinal) equal. Elements with no equal counterpart
// are returned in the unmatched slices, in their original order.
func SimpleMatch[T any](sources, targets []T, key func(T) string) (pairs []Pair[T], unmatchedSources, unmatchedTargets []T) {
	usedTarget := make([]bool, len(targets))
	for _, s := range sources {
		matched := false
		for j, t := range targets {
			if usedTarget[j] {
				continue
			}
			if key(s) == key(t) {
				pairs = append(pairs, Pair[T]{Source: s, Target: t})
				usedTarget[j] = true
				matched = true
				break
			}
		}
		if !matched {
			unmatchedSources = append(unmatchedSources, s)
		}
	}
	for j, t := range targets {
		if !usedTarget[j] {
			unmatchedTargets = append(unmatchedTargets, t)
		}
	}
	return pairs, unmatchedSources, unmatchedTargets
}

// FuzzyMatch pairs elements of sources and targets by structural
// similarity: matches(s, t) reports whether a given (source, target) pair
// is acceptable; acceptable pairs are not scored or ranked. The
// cross-product is enumerated in source-then-target order (spec.md
// §4.1's tie-breaking rule); per spec.md §9's conservative-ambiguity
// resolution, the first acceptable pair for a given source element wins
// and both sides are then excluded from further fuzzy consideration.
func FuzzyMatch[T any](sources, targets []T, matches func(s, t T) bool) (pairs []Pair[T], unmatchedSources, unmatchedTargets []T) {
	usedTarget := make([]bool, len(targets))
	usedSource := make([]bool, len(sources))
	for i, s := range sources {
		for j, t := range targets {
			if usedTarget[j] {
				continue
			}
			if matches(s, t) {
				pairs = append(pairs, Pair[T]{Source: s, Target: t})
				usedTarget[j] = true
				usedSource[i] = true
				break
			}
		}
	}
	for i, s := range sources {
		if !usedSource[i] {
			unmatchedSources = append(unmatchedSources, s)
		}
	}
	for j, t := range targets {
		if !usedTarget[j] {
			unmatchedTargets = append(unmatchedTargets, t)
		}
	}
	return pairs, unmatchedSources, unmatchedTargets
}
