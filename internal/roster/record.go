package roster

import (
	"fmt"
	"strings"
)

// Address is the nested location of a record.
type Address struct {
	State   string `json:"state"   yaml:"state"`
	Country string `json:"country" yaml:"country"`
}

// Company is the nested employment of a record.
type Company struct {
	Title string `json:"title" yaml:"title"`
}

// Record is one person from the remote collection.
type Record struct {
	ID        int     `json:"id"        yaml:"id"`
	FirstName string  `json:"firstName" yaml:"first_name"`
	LastName  string  `json:"lastName"  yaml:"last_name"`
	Age       int     `json:"age"       yaml:"age"`
	Gender    string  `json:"gender"    yaml:"gender"`
	Image     string  `json:"image"     yaml:"image"`
	Address   Address `json:"address"   yaml:"address"`
	Company   Company `json:"company"   yaml:"company"`
}

// FullName joins the name parts with a single space.
func (r Record) FullName() string {
	return strings.TrimSpace(fmt.Sprintf("%s %s", r.FirstName, r.LastName))
}

// Location formats the address as "state, country", omitting empty parts.
func (r Record) Location() string {
	switch {
	case r.Address.State == "":
		return r.Address.Country
	case r.Address.Country == "":
		return r.Address.State
	default:
		return r.Address.State + ", " + r.Address.Country
	}
}

// Filter is the optional (country, gender) constraint pair.
// An empty field means no constraint.
type Filter struct {
	Country string `json:"country,omitempty" yaml:"country,omitempty"`
	Gender  string `json:"gender,omitempty"  yaml:"gender,omitempty"`
}

// IsEmpty reports whether neither field constrains the result.
func (f Filter) IsEmpty() bool {
	return f.Country == "" && f.Gender == ""
}

// Matches reports whether r satisfies both constraints. Comparison is exact.
func (f Filter) Matches(r Record) bool {
	if f.Country != "" && r.Address.Country != f.Country {
		return false
	}
	if f.Gender != "" && r.Gender != f.Gender {
		return false
	}
	return true
}

// Apply returns the records that satisfy f, preserving order.
// The result never aliases records.
func (f Filter) Apply(records []Record) []Record {
	filtered := make([]Record, 0, len(records))
	for _, r := range records {
		if f.Matches(r) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
