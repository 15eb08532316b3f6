package repo

import "errors"

// ErrUnknown is the reason of a Failure built without one
var ErrUnknown = errors.New("operation failed")

// Result is the outcome of one repository operation: either Success
// carrying a payload or Failure carrying the reason.
type Result[T any] struct {
	value T
	err   error
	ok    bool
}

// Success wraps a successful payload
func Success[T any](value T) Result[T] {
	return Result[T]{value: value, ok: true}
}

// Failure wraps the reason an operation failed
func Failure[T any](err error) Result[T] {
	if err == nil {
		err = ErrUnknown
	}
	return Result[T]{err: err}
}

// Ok reports whether the operation succeeded
func (r Result[T]) Ok() bool {
	return r.ok
}

// Value returns the payload, the zero value on failure
func (r Result[T]) Value() T {
	return r.value
}

// Err returns the failure reason, nil on success
func (r Result[T]) Err() error {
	return r.err
}
