// Package sqlgen renders an ordered operation stream into dialect-specific
// SQL, per spec.md §4.5-4.6: a base generator with dialect-neutral
// rendering rules and a set of extension points (quoting, column/PK
// traits, renames, default constraints) that concrete dialects override.
package sqlgen

// Statement is one SQL statement plus its bind parameters. Most
// statements have zero parameters; dialects that build dynamic SQL (the
// SQL-Server-like dialect's default-constraint lookup) may declare local
// variables inline instead of using parameters, since the statements
// here are meant to be executed as a batch rather than through a
// parameterized driver call.
type Statement struct {
	Text       string
	Parameters []any
}
