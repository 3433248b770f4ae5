package response

import (
	"time"

	"github.com/cargorental/admin-dashboard/internal/listing"
)

// NewListResponse maps a visible page into its view model.
func NewListResponse[T, R any](page listing.Page[T], f listing.Filter, options []string, mapFn func(T) R) ListResponse[R] {
	items := make([]R, len(page.Items))
	for i, it := range page.Items {
		items[i] = mapFn(it)
	}

	echo := ListFilter{
		Category:  f.Category,
		Search:    f.Search,
		Secondary: f.Secondary,
	}
	if echo.Category == "" {
		echo.Category = listing.All
	}
	if f.Date != nil {
		echo.Date = f.Date.Format(time.DateOnly)
	}

	return ListResponse[R]{
		PageResponse:     NewPageResponse(items, page.Page, page.PageSize, page.Total, page.TotalPages),
		Filter:           echo,
		SecondaryOptions: options,
	}
}
