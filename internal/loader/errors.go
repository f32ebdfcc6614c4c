package loader

import (
	"errors"

	"github.com/rshade/rosterview/internal/state"
)

// MsgNotFound is the message for a non-success response from the collection endpoint.
const MsgNotFound = "Data not found"

// LoadError is the only error kind produced while obtaining the collection.
// Message is meant for display; Err keeps the underlying cause for logs.
type LoadError struct {
	Message string
	Err     error
}

// Error returns the display message, falling back to the generic text.
func (e *LoadError) Error() string {
	if e.Message == "" {
		return state.DefaultErrorMessage
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *LoadError) Unwrap() error {
	return e.Err
}

// AsLoadError converts err into a LoadError. Nil stays nil; an existing
// LoadError anywhere in the chain is returned as is.
func AsLoadError(err error) *LoadError {
	if err == nil {
		return nil
	}
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return loadErr
	}
	return &LoadError{Message: err.Error(), Err: err}
}
