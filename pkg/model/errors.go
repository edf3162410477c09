package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNoBranch signals a driver value that matches no declared branch.
	ErrNoBranch = errors.New("model: no branch matches driver value")
	// ErrInvalidSchema wraps every construction-time check failure.
	ErrInvalidSchema = errors.New("model: invalid schema")
)

// SchemaError reports a programmer error detected while resolving branches.
// It never describes user input.
type SchemaError struct {
	Group  string
	Driver string
	Value  any
	Err    error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("model: group %q driver %q value %v: %v", e.Group, e.Driver, e.Value, e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidSchema, fmt.Sprintf(format, args...))
}
