// Package model holds the passive schema snapshot the differ and matcher
// operate on: tables, columns, primary keys, foreign keys, indexes, and
// sequences, scoped by schema-qualified name. Everything here is a value
// object built by an upstream model builder (out of scope for this
// module, per spec.md §1); nothing in this package mutates a Database
// once it is constructed.
package model

import (
	"fmt"
	"strings"

	"github.com/schemadrift/migrate/internal/errs"
)

// QualifiedName is a (schema, name) pair, compared case-sensitively
// (ordinal byte comparison), per spec.md §3.
type QualifiedName struct {
	Schema string
	Name   string
}

// NewQualifiedName validates and builds a QualifiedName.
func NewQualifiedName(schema, name string) (QualifiedName, error) {
	if schema == "" {
		return QualifiedName{}, errs.New(errs.InvalidInput, "schema must not be empty")
	}
	if name == "" {
		return QualifiedName{}, errs.New(errs.InvalidInput, "name must not be empty")
	}
	return QualifiedName{Schema: schema, Name: name}, nil
}

// ParseQualifiedName parses "schema.name" into a QualifiedName.
func ParseQualifiedName(s string) (QualifiedName, error) {
	parts := strings.SplitN(s, ".", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return QualifiedName{}, errs.New(errs.InvalidInput, "%q is not a valid schema.name", s)
	}
	return QualifiedName{Schema: parts[0], Name: parts[1]}, nil
}

// String renders "schema.name".
func (n QualifiedName) String() string {
	return fmt.Sprintf("%s.%s", n.Schema, n.Name)
}

// Equal compares two qualified names ordinally (byte-for-byte).
func (n QualifiedName) Equal(o QualifiedName) bool {
	return n.Schema == o.Schema && n.Name == o.Name
}

// WithSchema returns a copy of n with its schema replaced.
func (n QualifiedName) WithSchema(schema string) QualifiedName {
	return QualifiedName{Schema: schema, Name: n.Name}
}

// WithName returns a copy of n with its name replaced.
func (n QualifiedName) WithName(name string) QualifiedName {
	return QualifiedName{Schema: n.Schema, Name: name}
}
