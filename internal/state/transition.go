package state

import (
	"slices"
)

// Transition returns the state that results from applying a to s.
//
// It is pure and total: no I/O, no mutation of s, and the same (s, a) always
// yields the same result. Unknown actions, including nil, return s unchanged.
func Transition(s AppState, a Action) AppState {
	next := s.clone()

	switch a := a.(type) {
	case SetRecords:
		next.Records = slices.Clone(a.Records)

	case SetLoading:
		switch {
		case a.Loading:
			next.Status = StatusLoading
			next.Records = nil
		case next.Status == StatusLoading:
			next.Status = StatusLoaded
		}

	case SetError:
		if a.Present {
			next.Status = StatusFailed
			next.Records = nil
			next.ErrorMessage = a.Message
			if next.ErrorMessage == "" {
				next.ErrorMessage = DefaultErrorMessage
			}
			break
		}
		next.ErrorMessage = ""
		if next.Status == StatusFailed {
			next.Status = StatusIdle
		}

	case SetPage:
		next.Page = a.Page

	case SetCountry:
		next.Filter.Country = a.Country
		next.Page = 1

	case SetGender:
		next.Filter.Gender = a.Gender
		next.Page = 1

	default:
		return s
	}

	return next
}

// Reduce applies actions in order starting from s.
func Reduce(s AppState, actions ...Action) AppState {
	for _, a := range actions {
		s = Transition(s, a)
	}
	return s
}
