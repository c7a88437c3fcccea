// Package view turns the raw record collection into what a list screen
// shows: filtered by a search term, sorted newest-first, and cut into
// pages. Projection is a pure function of its inputs; State tracks the
// current view parameters between projections.
package view

import (
	"math"
	"sort"
	"strings"

	"github.com/heartmarshall/userdir-backend/internal/domain"
)

// DefaultPageSize is used when the requested page size is not one of
// PageSizes.
const DefaultPageSize = 10

// PageSizes lists the recognized page sizes.
var PageSizes = []int{10, 25, 50, 100}

// Params select which slice of the collection to project.
type Params struct {
	SearchTerm string
	Page       int // 1-based
	PageSize   int
}

// Projection is one page of the filtered, sorted collection.
type Projection struct {
	Records       []domain.Record
	Page          int
	TotalPages    int
	TotalMatching int
}

// Project filters records by the search term, sorts them by creation time
// descending, and returns the requested page. An out-of-range page is
// clamped into [1, TotalPages]. When nothing matches, the projection is
// empty and reads page 0 of 0.
func Project(records []domain.Record, p Params) Projection {
	pageSize := normalizePageSize(p.PageSize)

	matched := filter(records, p.SearchTerm)

	// Stable sort: records sharing a timestamp keep their store order.
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	totalPages := int(math.Ceil(float64(total) / float64(pageSize)))

	if totalPages == 0 {
		return Projection{Records: []domain.Record{}, Page: 0, TotalPages: 0}
	}

	page := p.Page
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if end > total {
		end = total
	}

	return Projection{
		Records:       matched[start:end],
		Page:          page,
		TotalPages:    totalPages,
		TotalMatching: total,
	}
}

func normalizePageSize(n int) int {
	for _, size := range PageSizes {
		if n == size {
			return n
		}
	}
	return DefaultPageSize
}

// filter keeps records whose name or phone contains the term,
// case-insensitively. An empty term matches everything.
func filter(records []domain.Record, term string) []domain.Record {
	if term == "" {
		out := make([]domain.Record, len(records))
		copy(out, records)
		return out
	}

	needle := strings.ToLower(term)
	out := make([]domain.Record, 0, len(records))
	for _, rec := range records {
		if containsFold(rec.Name, needle) || containsFold(rec.Phone, needle) {
			out = append(out, rec)
		}
	}
	return out
}

func containsFold(s *string, needle string) bool {
	if s == nil {
		return false
	}
	return strings.Contains(strings.ToLower(*s), needle)
}

// State holds the view parameters between projections. Changing the
// search term jumps back to the first page so the user never lands on a
// page past the shrunken result set.
type State struct {
	params Params
}

// NewState creates view state positioned on page one with the default
// page size.
func NewState() *State {
	return &State{params: Params{Page: 1, PageSize: DefaultPageSize}}
}

// Params returns the current view parameters.
func (s *State) Params() Params {
	return s.params
}

// SetSearchTerm updates the filter and resets to the first page.
func (s *State) SetSearchTerm(term string) {
	if term == s.params.SearchTerm {
		return
	}
	s.params.SearchTerm = term
	s.params.Page = 1
}

// SetPage moves to the given page. Clamping against the result set
// happens at projection time.
func (s *State) SetPage(n int) {
	if n < 1 {
		n = 1
	}
	s.params.Page = n
}

// SetPageSize switches the page size and resets to the first page.
// Unrecognized sizes fall back to the default.
func (s *State) SetPageSize(n int) {
	s.params.PageSize = normalizePageSize(n)
	s.params.Page = 1
}

// Apply projects the given records with the current parameters.
func (s *State) Apply(records []domain.Record) Projection {
	return Project(records, s.params)
}
