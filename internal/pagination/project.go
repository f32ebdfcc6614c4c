package pagination

import (
	"github.com/rshade/rosterview/internal/roster"
)

// Page is the visible slice of a filtered collection.
type Page struct {
	// Records are the records on the requested page. Never nil.
	Records []roster.Record

	// FilteredCount is the number of records that passed the filter.
	FilteredCount int

	// TotalPages is ceil(FilteredCount / size), 0 when nothing matched.
	TotalPages int

	// CurrentPage echoes the requested page cursor.
	CurrentPage int
}

// Empty reports whether the page holds no records.
func (p Page) Empty() bool {
	return len(p.Records) == 0
}

// Project filters records, counts pages and cuts out the requested page.
//
// The page cursor is not clamped: a page before the first or after the last
// yields an empty slice. A non-positive size yields no pages.
func Project(records []roster.Record, filter roster.Filter, page, size int) Page {
	filtered := filter.Apply(records)

	result := Page{
		Records:       []roster.Record{},
		FilteredCount: len(filtered),
		TotalPages:    TotalPages(len(filtered), size),
		CurrentPage:   page,
	}

	// Nothing lies past the last page; checking first also keeps
	// (page-1)*size from overflowing on huge cursors.
	if page < 1 || page > result.TotalPages {
		return result
	}

	start := (page - 1) * size
	end := start + size
	if end > len(filtered) {
		end = len(filtered)
	}

	result.Records = filtered[start:end]
	return result
}

// TotalPages returns the number of pages needed for count items.
func TotalPages(count, size int) int {
	if count <= 0 || size <= 0 {
		return 0
	}
	pages := count / size
	if count%size > 0 {
		pages++
	}
	return pages
}
