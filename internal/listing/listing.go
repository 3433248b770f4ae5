// Package listing turns a fetched entity collection plus the admin's filter
// choices into the page that a list view displays.
//
// Every list (bookings, complaints, rentals, vehicles, users, an owner's cars)
// declares a Spec describing which fields feed each predicate; the predicates
// and the pagination arithmetic live here once.
package listing

import (
	"sort"
	"strings"
	"time"
)

// All is the filter value that disables a categorical predicate.
const All = "all"

// DefaultPageSize is used when a Spec does not declare one.
const DefaultPageSize = 15

// Filter is the set of user-chosen predicates narrowing a list.
// Empty strings, "all" and a nil Date leave the matching predicate inactive.
type Filter struct {
	Category  string
	Search    string
	Date      *time.Time
	Secondary string
}

// Spec declares, for one entity type, how its records feed the predicates.
type Spec[T any] struct {
	PageSize int

	// Status extracts the status field compared against Category.
	Status func(T) string
	// StatusAliases maps a lower-cased UI category value to the backend status
	// literal for this entity. Values without an alias are compared as-is.
	StatusAliases map[string]string

	// Secondary extracts the field compared exactly against Filter.Secondary.
	Secondary func(T) string

	// SearchFields are matched case-insensitively by substring; any match keeps the record.
	SearchFields []func(T) string

	// DateFields are compared at day granularity; any match keeps the record.
	DateFields []func(T) *time.Time
}

// Page is the visible slice of a filtered collection plus pagination metadata.
type Page[T any] struct {
	Items      []T
	Total      int
	TotalPages int
	Page       int
	PageSize   int
}

// StatusFor resolves a UI category value to the status literal of this entity.
func (s Spec[T]) StatusFor(category string) string {
	if alias, ok := s.StatusAliases[strings.ToLower(category)]; ok {
		return alias
	}
	return category
}

func (s Spec[T]) pageSize() int {
	if s.PageSize < 1 {
		return DefaultPageSize
	}
	return s.PageSize
}

func active(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && !strings.EqualFold(v, All)
}

type matcher[T any] struct {
	spec      Spec[T]
	status    string
	secondary string
	needle    string
	day       *civilDay
	loc       *time.Location
}

type civilDay struct {
	year  int
	month time.Month
	day   int
}

func dayOf(t time.Time, loc *time.Location) civilDay {
	y, m, d := t.In(loc).Date()
	return civilDay{year: y, month: m, day: d}
}

func newMatcher[T any](spec Spec[T], f Filter, loc *time.Location) matcher[T] {
	m := matcher[T]{spec: spec, loc: loc}
	if active(f.Category) && spec.Status != nil {
		m.status = spec.StatusFor(strings.TrimSpace(f.Category))
	}
	if active(f.Secondary) && spec.Secondary != nil {
		m.secondary = f.Secondary
	}
	if s := strings.TrimSpace(f.Search); s != "" && len(spec.SearchFields) > 0 {
		m.needle = strings.ToLower(s)
	}
	if f.Date != nil && len(spec.DateFields) > 0 {
		d := dayOf(*f.Date, loc)
		m.day = &d
	}
	return m
}

// match applies the predicates cheapest first: status, secondary, search, date.
func (m matcher[T]) match(r T) bool {
	if m.status != "" && !strings.EqualFold(m.spec.Status(r), m.status) {
		return false
	}
	if m.secondary != "" && m.spec.Secondary(r) != m.secondary {
		return false
	}
	if m.needle != "" && !m.matchSearch(r) {
		return false
	}
	if m.day != nil && !m.matchDate(r) {
		return false
	}
	return true
}

func (m matcher[T]) matchSearch(r T) bool {
	for _, field := range m.spec.SearchFields {
		if strings.Contains(strings.ToLower(field(r)), m.needle) {
			return true
		}
	}
	return false
}

func (m matcher[T]) matchDate(r T) bool {
	for _, field := range m.spec.DateFields {
		t := field(r)
		if t == nil || t.IsZero() {
			continue
		}
		if dayOf(*t, m.loc) == *m.day {
			return true
		}
	}
	return false
}

// Filtered returns the records satisfying every active predicate of f, in
// their original order. The input slice is never modified.
func Filtered[T any](records []T, spec Spec[T], f Filter, loc *time.Location) []T {
	if loc == nil {
		loc = time.Local
	}
	m := newMatcher(spec, f, loc)
	out := make([]T, 0, len(records))
	for _, r := range records {
		if m.match(r) {
			out = append(out, r)
		}
	}
	return out
}

// VisiblePage filters records and slices the requested page out of the result.
// page is clamped to [1, TotalPages] before slicing.
func VisiblePage[T any](records []T, spec Spec[T], f Filter, page int, loc *time.Location) Page[T] {
	size := spec.pageSize()
	filtered := Filtered(records, spec, f, loc)

	total := len(filtered)
	totalPages := TotalPages(total, size)
	page = ClampPage(page, totalPages)

	start := (page - 1) * size
	end := min(start+size, total)

	return Page[T]{
		Items:      filtered[start:end:end],
		Total:      total,
		TotalPages: totalPages,
		Page:       page,
		PageSize:   size,
	}
}

// TotalPages returns max(1, ceil(total/pageSize)).
func TotalPages(total, pageSize int) int {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if total <= 0 {
		return 1
	}
	return (total + pageSize - 1) / pageSize
}

// ClampPage bounds page to [1, totalPages].
func ClampPage(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return page
}

// Options returns the distinct non-empty values of fn across records, sorted,
// for populating a secondary filter dropdown.
func Options[T any](records []T, fn func(T) string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, r := range records {
		v := fn(r)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
