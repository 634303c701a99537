package functions

import "errors"

var (
	// ErrArity reports a call with the wrong number of arguments.
	ErrArity = errors.New("functions: wrong number of arguments")
	// ErrInvalidDate reports an argument that cannot be read as a date.
	ErrInvalidDate = errors.New("functions: invalid date")
	// ErrUnknownFunction reports a lookup for an unregistered name.
	ErrUnknownFunction = errors.New("functions: unknown function")
)
