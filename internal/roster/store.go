package roster

import (
	"slices"
)

// Store holds a loaded collection. It is immutable after construction:
// every accessor hands out copies.
type Store struct {
	records []Record
}

// NewStore creates a Store from a copy of records.
func NewStore(records []Record) *Store {
	return &Store{records: slices.Clone(records)}
}

// Records returns a copy of the stored collection in load order.
func (s *Store) Records() []Record {
	if s == nil {
		return nil
	}
	return slices.Clone(s.records)
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.records)
}

// Countries returns the sorted distinct non-empty address countries.
func (s *Store) Countries() []string {
	return s.distinct(func(r Record) string { return r.Address.Country })
}

// Genders returns the sorted distinct non-empty genders.
func (s *Store) Genders() []string {
	return s.distinct(func(r Record) string { return r.Gender })
}

func (s *Store) distinct(field func(Record) string) []string {
	if s == nil {
		return nil
	}
	seen := make(map[string]struct{})
	values := []string{}
	for _, r := range s.records {
		v := field(r)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	slices.Sort(values)
	return values
}
