package listing

import "time"

// State is the view-local state of one list: the active filter and the page number.
type State struct {
	Filter Filter
	Page   int
}

// Action is a transition applied to a State by Reduce.
type Action interface {
	apply(State) State
}

// SetCategory changes the status filter.
type SetCategory string

// SetSearch changes the free-text search.
type SetSearch string

// SetSecondary changes the secondary categorical filter.
type SetSecondary string

// SetDate changes the date filter; a nil Date clears it.
type SetDate struct {
	Date *time.Time
}

// SetPage moves to another page.
type SetPage int

// Clamp bounds the page after the filtered total changed, e.g. after a refetch.
type Clamp struct {
	TotalPages int
}

// Reduce returns the state after applying a. Any filter change resets the page
// to 1 in the same transition, so a filter change and the clamp never leave the
// page transiently out of range.
func Reduce(s State, a Action) State {
	if s.Page < 1 {
		s.Page = 1
	}
	return a.apply(s)
}

func (a SetCategory) apply(s State) State {
	if s.Filter.Category != string(a) {
		s.Filter.Category = string(a)
		s.Page = 1
	}
	return s
}

func (a SetSearch) apply(s State) State {
	if s.Filter.Search != string(a) {
		s.Filter.Search = string(a)
		s.Page = 1
	}
	return s
}

func (a SetSecondary) apply(s State) State {
	if s.Filter.Secondary != string(a) {
		s.Filter.Secondary = string(a)
		s.Page = 1
	}
	return s
}

func (a SetDate) apply(s State) State {
	if !sameDate(s.Filter.Date, a.Date) {
		s.Filter.Date = a.Date
		s.Page = 1
	}
	return s
}

func (a SetPage) apply(s State) State {
	s.Page = max(int(a), 1)
	return s
}

func (a Clamp) apply(s State) State {
	s.Page = ClampPage(s.Page, a.TotalPages)
	return s
}

func sameDate(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
