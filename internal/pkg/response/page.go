package response

// PageResponse is the standard wrapper for list endpoints.
type PageResponse[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewPageResponse is a helper to quickly create a response
func NewPageResponse[T any](items []T, page, pageSize, total, totalPages int) PageResponse[T] {
	// Handle empty slice to avoid JSON outputting null
	if items == nil {
		items = make([]T, 0)
	}

	return PageResponse[T]{
		Items:      items,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}

// ListFilter echoes the filter a list was computed with.
type ListFilter struct {
	Category  string `json:"category"`
	Search    string `json:"search"`
	Date      string `json:"date,omitempty"`
	Secondary string `json:"secondary,omitempty"`
}

// ListResponse is a page of a filtered list view. SecondaryOptions feeds the
// list's secondary dropdown.
type ListResponse[T any] struct {
	PageResponse[T]
	Filter           ListFilter `json:"filter"`
	SecondaryOptions []string   `json:"secondary_options,omitempty"`
}
