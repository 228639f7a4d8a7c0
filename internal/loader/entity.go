package loader

import (
	"github.com/schemadrift/migrate/internal/entity"
	"github.com/schemadrift/migrate/model"
)

// ToEntityModel builds the minimal entity.Model a database-only snapshot
// needs to participate in the matcher's entity tier (spec.md §4.1): one
// Entity per table, named after its physical table name since a raw SQL
// snapshot carries no separate ORM-level identity, and one Property per
// column with ColumnName equal to Name for the same reason. This lets the
// CLI run the full two-tier matcher even when both sides of a diff come
// from `.sql` files rather than a live ORM mapping.
func ToEntityModel(db *model.Database) entity.Model {
	m := entity.Model{}
	for _, t := range db.Tables {
		e := entity.Entity{
			Name:      t.Name.String(),
			Schema:    t.Name.Schema,
			TableName: t.Name.Name,
		}
		for _, c := range t.Columns {
			e.Properties = append(e.Properties, entity.Property{
				Name:       c.Name,
				ColumnName: c.Name,
				SourceType: c.SourceType,
			})
		}
		m.Entities = append(m.Entities, e)
	}
	return m
}
