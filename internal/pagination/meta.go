package pagination

// Meta contains metadata about paginated results.
type Meta struct {
	CurrentPage int  `json:"current_page" yaml:"current_page"`
	PageSize    int  `json:"page_size"    yaml:"page_size"`
	TotalPages  int  `json:"total_pages"  yaml:"total_pages"`
	TotalItems  int  `json:"total_items"  yaml:"total_items"`
	HasPrevious bool `json:"has_previous" yaml:"has_previous"`
	HasNext     bool `json:"has_next"     yaml:"has_next"`
}

// NewMeta creates pagination metadata for a projected page.
//
// HasPrevious and HasNext follow the navigation rules of the table: there is
// no previous page from page 1, and no next page from the last page or beyond.
func NewMeta(page Page, size int) Meta {
	return Meta{
		CurrentPage: page.CurrentPage,
		PageSize:    size,
		TotalPages:  page.TotalPages,
		TotalItems:  page.FilteredCount,
		HasPrevious: page.CurrentPage > 1,
		HasNext:     page.CurrentPage < page.TotalPages,
	}
}

// PageNumbers lists the 1-based page numbers for a pager control.
func (m Meta) PageNumbers() []int {
	numbers := make([]int, m.TotalPages)
	for i := range numbers {
		numbers[i] = i + 1
	}
	return numbers
}
