// Package console is the interactive terminal list screen. Key presses
// dispatch controller mutators; fetches run as commands and their results
// come back as messages, so a slow response for an old query never
// overwrites a newer one.
package console

import (
	"context"
	"slices"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pokenihongo/admin-console/internal/catalog"
	"github.com/pokenihongo/admin-console/internal/domain"
	"github.com/pokenihongo/admin-console/internal/listing"
)

// invalidator drops cached pages so that a refresh reaches the backend.
type invalidator interface {
	Invalidate(ctx context.Context, screen string) int
}

// Options configure a Model.
type Options struct {
	PageSizeOptions []int
	MaxVisiblePages int

	// Cache is optional; without it a refresh may be served from cache.
	Cache invalidator
}

// pageLoadedMsg carries the outcome of one fetch, tagged with the key it
// was issued for.
type pageLoadedMsg struct {
	key  listing.QueryKey
	page listing.Page[catalog.Row]
	err  error
}

// Model is the bubbletea model of one list screen.
type Model struct {
	ctx     context.Context
	ctrl    *listing.Controller[catalog.Row]
	fetcher listing.Fetcher[catalog.Row]
	screen  catalog.Screen
	cache   invalidator

	pageSizes  []int
	maxVisible int

	table     table.Model
	search    textinput.Model
	searching bool
	notice    string

	width  int
	height int
	styles styles
}

// NewModel creates the list screen for ctrl. fetcher must be the one the
// controller was built with.
func NewModel(
	ctx context.Context,
	ctrl *listing.Controller[catalog.Row],
	fetcher listing.Fetcher[catalog.Row],
	screen catalog.Screen,
	opts Options,
) Model {
	if len(opts.PageSizeOptions) == 0 {
		opts.PageSizeOptions = domain.PageSizeOptions
	}
	if opts.MaxVisiblePages < 1 {
		opts.MaxVisiblePages = listing.DefaultMaxVisiblePages
	}

	search := textinput.New()
	search.Placeholder = "Search..."
	search.CharLimit = 100
	search.Width = 40
	if text, ok := ctrl.Snapshot().State.Search(); ok {
		search.SetValue(text)
	}

	t := table.New(
		table.WithColumns(columns(screen, nil)),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	return Model{
		ctx:        ctx,
		ctrl:       ctrl,
		fetcher:    fetcher,
		screen:     screen,
		cache:      opts.Cache,
		pageSizes:  slices.Clone(opts.PageSizeOptions),
		maxVisible: opts.MaxVisiblePages,
		table:      t,
		search:     search,
		styles:     defaultStyles(),
	}
}

// Init starts the first fetch.
func (m Model) Init() tea.Cmd {
	return m.fetch()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table.SetHeight(max(msg.Height-10, 3))
		return m, nil

	case pageLoadedMsg:
		if !m.ctrl.Apply(msg.key, msg.page, msg.err) {
			return m, nil // stale
		}
		m.syncRows()
		// Apply moves to the last page when the current one is past it.
		if m.ctrl.Snapshot().Loading {
			return m, m.fetch()
		}
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateKeys(msg)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		return m.dispatch(m.ctrl.SetSearch(m.search.Value()))
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		text, _ := m.ctrl.Snapshot().State.Search()
		m.search.SetValue(text)
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "n", "right":
		return m.navigated(m.ctrl.GoToNext())
	case "p", "left":
		return m.navigated(m.ctrl.GoToPrevious())
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		n, _ := strconv.Atoi(key)
		return m.navigated(m.ctrl.GoToPage(n))
	case "/":
		m.searching = true
		return m, m.search.Focus()
	case "+":
		return m.dispatch(m.ctrl.SetPageSize(m.stepPageSize(1)))
	case "-":
		return m.dispatch(m.ctrl.SetPageSize(m.stepPageSize(-1)))
	case "c":
		m.search.SetValue("")
		return m.dispatch(m.ctrl.ClearFilters())
	case "r":
		if m.cache != nil {
			m.cache.Invalidate(m.ctx, m.ctrl.Screen())
		}
		m.notice = ""
		return m, m.fetch()
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// dispatch reports a mutator error or fetches when the key changed.
func (m Model) dispatch(err error) (tea.Model, tea.Cmd) {
	if err != nil {
		m.notice = err.Error()
		return m, nil
	}
	m.notice = ""
	if m.ctrl.Snapshot().Loading {
		return m, m.fetch()
	}
	return m, nil
}

func (m Model) navigated(moved bool) (tea.Model, tea.Cmd) {
	if !moved {
		return m, nil
	}
	return m.dispatch(nil)
}

// fetch loads the active key in the background.
func (m Model) fetch() tea.Cmd {
	key, query := m.ctrl.Request()
	ctx, fetcher := m.ctx, m.fetcher
	return func() tea.Msg {
		page, err := fetcher.Fetch(ctx, key, query)
		return pageLoadedMsg{key: key, page: page, err: err}
	}
}

// stepPageSize returns the neighbouring option of the current page size,
// staying put at either end.
func (m Model) stepPageSize(dir int) int {
	cur := m.ctrl.Snapshot().State.PageSize()
	i := slices.Index(m.pageSizes, cur)
	if i < 0 {
		i, _ = slices.BinarySearch(m.pageSizes, cur)
		if dir > 0 {
			i--
		}
	}
	i = min(max(i+dir, 0), len(m.pageSizes)-1)
	return m.pageSizes[i]
}

func (m *Model) syncRows() {
	snap := m.ctrl.Snapshot()
	rows := make([]table.Row, 0, len(snap.Items))
	for _, it := range snap.Items {
		rows = append(rows, table.Row(it.Cells))
	}
	m.table.SetRows(nil)
	m.table.SetColumns(columns(m.screen, snap.Items))
	m.table.SetRows(rows)
}
