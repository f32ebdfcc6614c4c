package state

import (
	"fmt"

	"github.com/rshade/rosterview/internal/roster"
)

// Action is a message accepted by Transition. The set is closed: only the
// types in this package implement it.
type Action interface {
	isAction()
	fmt.Stringer
}

// SetRecords replaces the stored records. It does not change Status.
type SetRecords struct {
	Records []roster.Record
}

// SetLoading starts or finishes a load.
type SetLoading struct {
	Loading bool
}

// SetError marks the session failed (Present) or clears a failure.
type SetError struct {
	Present bool
	Message string
}

// SetPage moves the page cursor. The value is not clamped.
type SetPage struct {
	Page int
}

// SetCountry changes the country constraint and resets the page.
type SetCountry struct {
	Country string
}

// SetGender changes the gender constraint and resets the page.
type SetGender struct {
	Gender string
}

func (SetRecords) isAction() {}
func (SetLoading) isAction() {}
func (SetError) isAction()   {}
func (SetPage) isAction()    {}
func (SetCountry) isAction() {}
func (SetGender) isAction()  {}

func (a SetRecords) String() string { return fmt.Sprintf("SetRecords(%d)", len(a.Records)) }
func (a SetLoading) String() string { return fmt.Sprintf("SetLoading(%t)", a.Loading) }
func (a SetError) String() string   { return fmt.Sprintf("SetError(%t, %q)", a.Present, a.Message) }
func (a SetPage) String() string    { return fmt.Sprintf("SetPage(%d)", a.Page) }
func (a SetCountry) String() string { return fmt.Sprintf("SetCountry(%q)", a.Country) }
func (a SetGender) String() string  { return fmt.Sprintf("SetGender(%q)", a.Gender) }
