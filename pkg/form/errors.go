package form

import "errors"

var (
	// ErrUnknownField is returned for paths the schema does not declare.
	ErrUnknownField = errors.New("form: unknown field")
	// ErrInactiveField is returned when a list of an inactive branch is
	// edited.
	ErrInactiveField = errors.New("form: field is not active")
	// ErrNotScalar is returned when SetField targets a whole list.
	ErrNotScalar = errors.New("form: lists are edited per entry")
)
