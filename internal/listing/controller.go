package listing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"net/url"
	"slices"
	"strings"
	"sync"

	"github.com/pokenihongo/admin-console/internal/domain"
)

// Page is one fetched page of a list screen.
type Page[T any] struct {
	Items      []T
	Pagination domain.Pagination
}

// Fetcher loads the page identified by key. Implementations own caching,
// deduplication and retries; query is key decoded for convenience.
type Fetcher[T any] interface {
	Fetch(ctx context.Context, key QueryKey, query url.Values) (Page[T], error)
}

// Options configure a Controller.
type Options struct {
	Screen string
	Locale string

	// Role is the role of the user viewing the screen. It is passed in by
	// the caller rather than read from ambient session state.
	Role domain.Role

	// Scope holds context-scoping filters fixed by the hosting screen,
	// e.g. lessonId. They are part of every query and survive ClearFilters.
	Scope map[string]string

	InitialPage     int
	InitialPageSize int
}

// Snapshot is a read-only view of a Controller.
type Snapshot[T any] struct {
	Key        QueryKey
	State      FilterState
	Items      []T
	Pagination domain.Pagination
	Loading    bool
	Err        error
}

// Controller owns the FilterState of one list screen and binds it to a
// Fetcher by QueryKey. Every mutator is a single reducer dispatch; the
// controller performs no I/O except through Refresh.
type Controller[T any] struct {
	fetcher Fetcher[T]
	screen  string
	locale  string
	role    domain.Role
	scope   map[string]string
	log     *slog.Logger

	mu         sync.Mutex
	state      FilterState
	key        QueryKey
	items      []T
	pagination domain.Pagination
	known      bool
	pending    bool
	err        error
}

// NewController creates a controller with default state, applying the
// initial overrides from opts.
func NewController[T any](fetcher Fetcher[T], opts Options, logger *slog.Logger) (*Controller[T], error) {
	if strings.TrimSpace(opts.Screen) == "" {
		return nil, fmt.Errorf("listing: screen name is required")
	}

	state := NewFilterState(opts.InitialPageSize)
	if opts.InitialPage > 1 {
		next, err := Reduce(state, SetPage{Page: opts.InitialPage})
		if err != nil {
			return nil, fmt.Errorf("listing: initial page: %w", err)
		}
		state = next
	}

	scope := make(map[string]string, len(opts.Scope))
	for k, v := range opts.Scope {
		k = strings.TrimSpace(k)
		if k == "" || v == "" {
			continue
		}
		if IsReserved(k) {
			return nil, fmt.Errorf("listing: scope %q: %w", k, domain.ErrInvalidAction)
		}
		scope[k] = v
	}

	c := &Controller[T]{
		fetcher:    fetcher,
		screen:     opts.Screen,
		locale:     opts.Locale,
		role:       opts.Role,
		scope:      scope,
		log:        logger.With("screen", opts.Screen),
		pagination: domain.DefaultPagination(),
		pending:    true,
	}
	c.state = state
	c.key = c.keyFor(state)

	return c, nil
}

// Screen returns the screen name.
func (c *Controller[T]) Screen() string { return c.screen }

// Role returns the viewing user's role.
func (c *Controller[T]) Role() domain.Role { return c.role }

// Scope returns a copy of the context-scoping filters.
func (c *Controller[T]) Scope() map[string]string { return maps.Clone(c.scope) }

// Snapshot returns the current view.
func (c *Controller[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Snapshot[T]{
		Key:        c.key,
		State:      c.state,
		Items:      slices.Clone(c.items),
		Pagination: c.pagination,
		Loading:    c.pending,
		Err:        c.err,
	}
}

// Key returns the active QueryKey.
func (c *Controller[T]) Key() QueryKey {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.key
}

// Request returns the active key together with its effective query
// (user state plus scoping filters).
func (c *Controller[T]) Request() (QueryKey, url.Values) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.key, c.effective(c.state)
}

// Dispatch applies one action. A state that is value-equal to the current
// one leaves the key and loading flag untouched.
func (c *Controller[T]) Dispatch(a Action) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dispatchLocked(a)
}

func (c *Controller[T]) dispatchLocked(a Action) error {
	if f, ok := a.(SetFilter); ok {
		if _, scoped := c.scope[strings.TrimSpace(f.Key)]; scoped {
			return fmt.Errorf("%w: %s", domain.ErrScopedFilter, f.Key)
		}
	}

	next, err := Reduce(c.state, a)
	if err != nil {
		return err
	}
	if next.Equal(c.state) {
		c.state = next
		return nil
	}

	c.state = next
	c.key = c.keyFor(next)
	c.pending = true
	c.err = nil
	return nil
}

// SetSearch replaces the search text and returns to page 1.
func (c *Controller[T]) SetSearch(text string) error {
	return c.Dispatch(SetSearch{Text: text})
}

// SetFilter sets or (with an empty value) removes a user filter.
func (c *Controller[T]) SetFilter(key, value string) error {
	return c.Dispatch(SetFilter{Key: key, Value: value})
}

// SetPageSize changes the page size and returns to page 1.
func (c *Controller[T]) SetPageSize(n int) error {
	return c.Dispatch(SetPageSize{PageSize: n})
}

// ClearFilters resets user-adjustable state; scoping filters remain.
func (c *Controller[T]) ClearFilters() error {
	return c.Dispatch(ClearFilters{})
}

// GoToPage moves to page n. It is a no-op when n < 1 or, once the total
// page count is known, when n is past the last page. It reports whether an
// action was dispatched.
func (c *Controller[T]) GoToPage(n int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if n < 1 {
		return false
	}
	if c.known && n > c.pagination.TotalPages {
		return false
	}
	return c.dispatchLocked(SetPage{Page: n}) == nil
}

// GoToNext is GoToPage(current+1).
func (c *Controller[T]) GoToNext() bool {
	return c.GoToPage(c.currentPage() + 1)
}

// GoToPrevious is GoToPage(current-1).
func (c *Controller[T]) GoToPrevious() bool {
	return c.GoToPage(c.currentPage() - 1)
}

func (c *Controller[T]) currentPage() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Page()
}

// Refresh fetches the active key and applies the result. A response that
// arrives after the key changed is discarded.
func (c *Controller[T]) Refresh(ctx context.Context) error {
	key, query := c.Request()

	page, err := c.fetcher.Fetch(ctx, key, query)
	c.Apply(key, page, err)
	if err != nil {
		return c.fetchError(err)
	}
	return nil
}

// Apply records the outcome of a fetch for key. Outcomes for keys other
// than the active one are dropped silently and Apply returns false.
//
// On failure the last-known-good items stay visible and the error is kept
// for display. On success the metadata replaces the previous one wholesale;
// if it shows the current page is past the last page, the controller moves
// to the last page, which changes the key and marks it loading again.
func (c *Controller[T]) Apply(key QueryKey, page Page[T], err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if key != c.key {
		c.log.Debug("stale response discarded",
			slog.String("key", key.String()),
			slog.String("active", c.key.String()),
		)
		return false
	}

	c.pending = false

	if err != nil {
		c.err = c.fetchError(err)
		c.log.Warn("fetch failed",
			slog.String("key", key.String()),
			slog.String("error", err.Error()),
		)
		return true
	}

	c.err = nil
	c.items = page.Items
	c.pagination = page.Pagination
	if c.pagination.IsZero() {
		c.pagination = domain.DefaultPagination()
	} else if !c.pagination.Consistent() {
		c.log.Warn("inconsistent pagination metadata",
			slog.String("key", key.String()),
			slog.Int("current_page", c.pagination.CurrentPage),
			slog.Int("total_pages", c.pagination.TotalPages),
			slog.Int("total_items", c.pagination.TotalItems),
		)
	}
	c.known = true

	if last := c.pagination.LastPage(); c.state.Page() > last {
		if err := c.dispatchLocked(SetPage{Page: last}); err != nil {
			c.log.Error("clamp page", slog.String("error", err.Error()))
		}
	}
	return true
}

func (c *Controller[T]) fetchError(err error) error {
	var fe *domain.FetchError
	if errors.As(err, &fe) {
		return err
	}
	return &domain.FetchError{Screen: c.screen, Err: err}
}

func (c *Controller[T]) effective(s FilterState) url.Values {
	v := s.Values()
	for k, val := range c.scope {
		v.Set(k, val)
	}
	return v
}

func (c *Controller[T]) keyFor(s FilterState) QueryKey {
	return NewQueryKey(c.screen, c.locale, c.effective(s))
}
