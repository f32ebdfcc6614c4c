// Package state is the session state machine: an immutable AppState value and a
// pure Transition function over typed actions.
package state

import (
	"slices"

	"github.com/rshade/rosterview/internal/roster"
)

// PageSize is the fixed number of records per page.
const PageSize = 10

// DefaultErrorMessage is shown when a failure carries no message of its own.
const DefaultErrorMessage = "Something went wrong, try again!"

// Status is the load status of a session.
type Status int

const (
	// StatusIdle means no load has started yet.
	StatusIdle Status = iota
	// StatusLoading means the collection is being fetched.
	StatusLoading
	// StatusLoaded means the collection is available (possibly empty).
	StatusLoaded
	// StatusFailed means the load failed; ErrorMessage explains why.
	StatusFailed
)

// String returns the lowercase status name.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// MarshalText renders the status name in JSON and YAML output.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// AppState is the single source of truth for a session.
// Values are never edited in place; Transition returns a new one.
type AppState struct {
	Status       Status
	Records      []roster.Record
	ErrorMessage string
	Filter       roster.Filter
	Page         int
}

// Initial returns the start-of-session state.
func Initial() AppState {
	return AppState{
		Status: StatusIdle,
		Page:   1,
	}
}

// Loading reports whether a load is in progress.
func (s AppState) Loading() bool {
	return s.Status == StatusLoading
}

// Failed reports whether the last load failed.
func (s AppState) Failed() bool {
	return s.Status == StatusFailed
}

// clone copies the records slice so the result shares no memory with s.
func (s AppState) clone() AppState {
	s.Records = slices.Clone(s.Records)
	return s
}
