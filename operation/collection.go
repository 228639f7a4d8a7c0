package operation

// canonicalOrder is the fixed kind order from spec.md §4.3. Sequences are
// not part of the differ's own pass sequence (the "sequences pass" is
// currently a no-op per spec.md §4.2) but CreateSchema/DropSchema (§6)
// need a position for them when a caller flattens a collection that does
// contain sequence operations. DropSchema's mandated order is
// `DropSequence*, DropForeignKey*, DropTable*` (§6), so DropSequence
// leads the whole drop run; CreateSequence sits with the other creates,
// right before CreateTable, since a default expression can reference a
// sequence that must already exist.
var canonicalOrder = []Kind{
	KindDropSequence,
	KindDropIndex,
	KindDropForeignKey,
	KindDropPrimaryKey,
	KindDropDefaultConstraint,
	KindDropColumn,
	KindDropTable,
	KindMoveTable,
	KindRenameTable,
	KindRenameColumn,
	KindRenameIndex,
	KindCreateSequence,
	KindCreateTable,
	KindAddColumn,
	KindAlterColumn,
	KindAddDefaultConstraint,
	KindAddPrimaryKey,
	KindAddForeignKey,
	KindCreateIndex,
}

// Collection is a multi-bucket container of operations indexed by kind.
// Insertion order is preserved within a kind; Flatten defines the only
// externally visible cross-kind ordering.
type Collection struct {
	buckets map[Kind][]Operation
}

// NewCollection returns an empty Collection.
func NewCollection() *Collection {
	return &Collection{buckets: make(map[Kind][]Operation)}
}

// Append adds op to the end of its kind's bucket.
func (c *Collection) Append(op Operation) {
	c.buckets[op.Kind()] = append(c.buckets[op.Kind()], op)
}

// AppendAll appends each of ops in order.
func (c *Collection) AppendAll(ops ...Operation) {
	for _, op := range ops {
		c.Append(op)
	}
}

// Get returns the ordered slice of operations of the given kind. The
// returned slice is owned by the caller; mutating it does not affect c.
func (c *Collection) Get(kind Kind) []Operation {
	bucket := c.buckets[kind]
	out := make([]Operation, len(bucket))
	copy(out, bucket)
	return out
}

// Replace overwrites the bucket for kind with ops, preserving the order
// given.
func (c *Collection) Replace(kind Kind, ops []Operation) {
	cp := make([]Operation, len(ops))
	copy(cp, ops)
	c.buckets[kind] = cp
}

// Flatten returns every operation in c in the canonical kind order from
// spec.md §4.3, preserving emission order within each kind.
func (c *Collection) Flatten() []Operation {
	var out []Operation
	for _, kind := range canonicalOrder {
		out = append(out, c.buckets[kind]...)
	}
	return out
}

// Len returns the total number of operations across all kinds.
func (c *Collection) Len() int {
	n := 0
	for _, bucket := range c.buckets {
		n += len(bucket)
	}
	return n
}
