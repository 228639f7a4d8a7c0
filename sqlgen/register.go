package sqlgen

import "github.com/schemadrift/migrate/model"

func init() {
	Register("base", func(source, target *model.Database) Dialect { return NewBase() })
}
