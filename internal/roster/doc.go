// Package roster holds the record model for the remote people collection and
// the immutable Store that keeps it once loaded.
//
// Classification fields (country, gender) are free-form strings. New values can
// appear in any load, so filter options are derived from the data via
// Store.Countries and Store.Genders instead of a fixed enum.
package roster
