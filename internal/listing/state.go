// Package listing implements the paginated, filtered collection state that
// drives every list screen: an immutable FilterState, a pure reducer, the
// QueryKey derived from it, the page-number window, and the Controller that
// composes them against an external fetch collaborator.
package listing

import (
	"maps"
	"net/url"
	"strconv"
	"strings"

	"github.com/pokenihongo/admin-console/internal/domain"
)

// Query parameter names understood by the backend list endpoints.
const (
	ParamPage     = "currentPage"
	ParamPageSize = "pageSize"
	ParamSearch   = "search"
)

// IsReserved reports whether key names one of the paging or search
// parameters, which filters may not use.
func IsReserved(key string) bool {
	switch key {
	case ParamPage, ParamPageSize, ParamSearch:
		return true
	}
	return false
}

// FilterState is the current query of one list screen. It is a value: every
// transition returns a new FilterState and the filter map is never shared.
type FilterState struct {
	page            int
	pageSize        int
	defaultPageSize int
	search          string
	extra           map[string]string
}

// NewFilterState returns the defaults for a freshly mounted screen.
// A pageSize below 1 falls back to domain.DefaultPageSize.
func NewFilterState(pageSize int) FilterState {
	if pageSize < 1 {
		pageSize = domain.DefaultPageSize
	}
	return FilterState{
		page:            1,
		pageSize:        pageSize,
		defaultPageSize: pageSize,
	}
}

func (s FilterState) Page() int     { return s.page }
func (s FilterState) PageSize() int { return s.pageSize }

// Search returns the trimmed search text and whether it is set.
func (s FilterState) Search() (string, bool) { return s.search, s.search != "" }

// Filter returns the value of a user filter.
func (s FilterState) Filter(key string) (string, bool) {
	v, ok := s.extra[key]
	return v, ok
}

// Filters returns a copy of the user filters.
func (s FilterState) Filters() map[string]string {
	return maps.Clone(s.extra)
}

// Equal reports value equality of page, page size, search and filters.
func (s FilterState) Equal(o FilterState) bool {
	return s.page == o.page &&
		s.pageSize == o.pageSize &&
		s.search == o.search &&
		maps.Equal(s.extra, o.extra)
}

// Values encodes the state as backend query parameters.
func (s FilterState) Values() url.Values {
	v := url.Values{}
	v.Set(ParamPage, strconv.Itoa(s.page))
	v.Set(ParamPageSize, strconv.Itoa(s.pageSize))
	if s.search != "" {
		v.Set(ParamSearch, s.search)
	}
	for k, val := range s.extra {
		v.Set(k, val)
	}
	return v
}

func (s FilterState) clone() FilterState {
	n := s
	n.extra = maps.Clone(s.extra)
	return n
}

// Filter values travel as their query-string encoding. Only a blank
// string means "unset"; an explicit false is a set value.

// StringValue trims a free-text filter value.
func StringValue(v string) string { return strings.TrimSpace(v) }

// IntValue encodes an integer filter value.
func IntValue(n int) string { return strconv.Itoa(n) }

// BoolValue encodes a boolean filter value. BoolValue(false) is "false",
// which sets the filter rather than clearing it.
func BoolValue(b bool) string { return strconv.FormatBool(b) }
