package request

import (
	"strings"
	"time"

	"github.com/cargorental/admin-dashboard/internal/listing"
)

// DateLayout is the calendar-day format accepted by the date filter.
const DateLayout = "2006-01-02"

// ListParams holds the filter and page query parameters shared by every list view.
type ListParams struct {
	Category string `form:"category"`
	Search   string `form:"search"`
	Date     string `form:"date" binding:"omitempty,datetime=2006-01-02"`
	Page     int    `form:"page"`
}

// State replays the query parameters onto a fresh list state. The date is
// interpreted as a calendar day in loc. secondary is the list-specific
// secondary filter value, read by the caller from its own query key.
func (p *ListParams) State(secondary string, loc *time.Location) listing.State {
	actions := []listing.Action{
		listing.SetCategory(strings.TrimSpace(p.Category)),
		listing.SetSearch(strings.TrimSpace(p.Search)),
		listing.SetSecondary(strings.TrimSpace(secondary)),
	}
	if p.Date != "" {
		if d, err := time.ParseInLocation(DateLayout, p.Date, loc); err == nil {
			actions = append(actions, listing.SetDate{Date: &d})
		}
	}
	actions = append(actions, listing.SetPage(p.Page))

	s := listing.State{Page: 1}
	for _, a := range actions {
		s = listing.Reduce(s, a)
	}
	return s
}

// ByIDRequest is a common struct for endpoints that require an ID path parameter.
// Backend identifiers are numeric.
type ByIDRequest struct {
	ID string `uri:"id" binding:"required,numeric"`
}
