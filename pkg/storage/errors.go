package storage

import "fmt"

// Error wraps a database failure with the storage operation that hit it.
// It is a distinct error kind from the auth/tasks taxonomy: handlers map it
// to a generic server error instead of a client-facing status.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func wrap(op string, err error) error {
	return &Error{Op: op, Err: err}
}
