// Package errs defines the closed error taxonomy shared by the model,
// matcher, differ, and sqlgen packages.
package errs

import "fmt"

// Kind is the closed set of ways the core can fail.
type Kind int

const (
	// InvalidInput covers a null/empty required argument or an empty identifier.
	InvalidInput Kind = iota
	// InvariantViolation covers a resolved pairing that references an object
	// absent from the target/source database model.
	InvariantViolation
	// UnhandledOperation covers an operation or expression variant the SQL
	// generator does not recognize.
	UnhandledOperation
	// UnsupportedDialectFeature covers a dialect asked to render an operation
	// it does not implement (e.g. the base dialect asked for RenameTable).
	UnsupportedDialectFeature
)

func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "invalid_input"
	case InvariantViolation:
		return "invariant_violation"
	case UnhandledOperation:
		return "unhandled_operation"
	case UnsupportedDialectFeature:
		return "unsupported_dialect_feature"
	default:
		return "unknown"
	}
}

// Error is the typed error returned by the core's fallible entry points
// (Diff, GenerateSql, model.Database.Validate).
type Error struct {
	Kind Kind
	Msg  string
	Err  error // optional wrapped cause
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New constructs an *Error with no wrapped cause.
func New(kind Kind, msg string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(msg, args...)}
}

// Wrap constructs an *Error wrapping an underlying cause.
func Wrap(kind Kind, err error, msg string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(msg, args...), Err: err}
}

// Is reports whether err is an *Error of the given kind, walking the chain.
func Is(err error, kind Kind) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Kind == kind
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
