package listing

import (
	"fmt"
	"strings"

	"github.com/pokenihongo/admin-console/internal/domain"
)

// Action is an update intent for a FilterState.
type Action interface {
	ActionName() string
}

// SetSearch sets the free-text filter; blank text clears it.
type SetSearch struct{ Text string }

// SetFilter sets a named filter; an empty Value removes it.
type SetFilter struct {
	Key   string
	Value string
}

// SetPage moves to a page. It is not clamped against the total page count.
type SetPage struct{ Page int }

// SetPageSize changes the page density.
type SetPageSize struct{ PageSize int }

// ClearFilters restores defaults. Scoping filters live outside FilterState
// and are unaffected.
type ClearFilters struct{}

func (SetSearch) ActionName() string    { return "set_search" }
func (SetFilter) ActionName() string    { return "set_filter" }
func (SetPage) ActionName() string      { return "set_page" }
func (SetPageSize) ActionName() string  { return "set_page_size" }
func (ClearFilters) ActionName() string { return "clear_filters" }

// Reduce computes the next state. Every action except SetPage resets the
// page to 1. Unknown actions and payloads that would break the page or page
// size invariants fail with domain.ErrInvalidAction.
func Reduce(s FilterState, a Action) (FilterState, error) {
	next := s.clone()

	switch a := a.(type) {
	case SetSearch:
		next.search = strings.TrimSpace(a.Text)
		next.page = 1

	case SetFilter:
		key := strings.TrimSpace(a.Key)
		if key == "" {
			return s, fmt.Errorf("%w: %s with empty key", domain.ErrInvalidAction, a.ActionName())
		}
		if IsReserved(key) {
			return s, fmt.Errorf("%w: %s on reserved key %q", domain.ErrInvalidAction, a.ActionName(), key)
		}
		if value := strings.TrimSpace(a.Value); value == "" {
			delete(next.extra, key)
		} else {
			if next.extra == nil {
				next.extra = make(map[string]string)
			}
			next.extra[key] = value
		}
		if len(next.extra) == 0 {
			next.extra = nil
		}
		next.page = 1

	case SetPage:
		if a.Page < 1 {
			return s, fmt.Errorf("%w: %s(%d)", domain.ErrInvalidAction, a.ActionName(), a.Page)
		}
		next.page = a.Page

	case SetPageSize:
		if a.PageSize < 1 {
			return s, fmt.Errorf("%w: %s(%d)", domain.ErrInvalidAction, a.ActionName(), a.PageSize)
		}
		next.pageSize = a.PageSize
		next.page = 1

	case ClearFilters:
		next = NewFilterState(s.defaultPageSize)

	case nil:
		return s, fmt.Errorf("%w: nil action", domain.ErrInvalidAction)

	default:
		return s, fmt.Errorf("%w: %T", domain.ErrInvalidAction, a)
	}

	return next, nil
}
