package pagination

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Flag defaults and limits.
const (
	DefaultPage = 1
	MinPage     = 1
)

// ErrInvalidPage is returned when a requested page is below MinPage or not a number.
var ErrInvalidPage = errors.New("page must be >= 1")

// Params holds the page cursor and filter values given on the command line.
type Params struct {
	// Page is the 1-based page number.
	Page int

	// Country restricts results to one address country; empty means any.
	Country string

	// Gender restricts results to one gender; empty means any.
	Gender string
}

// NewParams creates Params with default values.
func NewParams() *Params {
	return &Params{Page: DefaultPage}
}

// Validate checks that the page cursor is usable as a flag value (value receiver).
// Projection itself accepts any page; only user input is held to MinPage.
func (p Params) Validate() error {
	if p.Page < MinPage {
		return fmt.Errorf("%w: got %d", ErrInvalidPage, p.Page)
	}
	return nil
}

// ParsePage parses a page query value. An empty string yields DefaultPage.
func ParsePage(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultPage, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidPage, raw)
	}
	if page < MinPage {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidPage, page)
	}
	return page, nil
}
