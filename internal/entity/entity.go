// Package entity models the ORM-level layer the matcher's §4.1 "simple
// then fuzzy" tier operates on before translation to model.Table /
// model.Column: entities with named properties, each property optionally
// carrying an explicit column-name annotation distinct from its
// ORM-level name. Grounded on rediwo-redi-orm's schema.Field.Map (the
// explicit column-mapping field separate from the Go-level field name).
package entity

import "github.com/schemadrift/migrate/model"

// Property backs a single column of an entity's mapped table.
type Property struct {
	Name       string
	ColumnName string // the "column-name annotation" from spec.md §4.1; may equal Name
	SourceType model.SourceType
}

// Entity is a single ORM-level type mapped to a table.
type Entity struct {
	Name       string
	Schema     string
	TableName  string
	Properties []Property
}

// QualifiedTableName returns the schema-qualified name of the table this
// entity maps to.
func (e Entity) QualifiedTableName() (model.QualifiedName, error) {
	return model.NewQualifiedName(e.Schema, e.TableName)
}

// Model is an ordered set of entities, the unit the matcher's entity tier
// pairs across source and target.
type Model struct {
	Entities []Entity
}
