package console

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/pokenihongo/admin-console/internal/catalog"
	"github.com/pokenihongo/admin-console/internal/listing"
)

const (
	minColumnWidth = 4
	maxColumnWidth = 40
)

type styles struct {
	Header  lipgloss.Style
	Muted   lipgloss.Style
	Error   lipgloss.Style
	Current lipgloss.Style
	Help    lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		Header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#E3350D")).Padding(0, 1),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F")),
		Current: lipgloss.NewStyle().Bold(true).Underline(true),
		Help:    lipgloss.NewStyle().Foreground(lipgloss.Color("#626262")),
	}
}

// View renders the screen.
func (m Model) View() string {
	snap := m.ctrl.Snapshot()
	var sb strings.Builder

	sb.WriteString(m.styles.Header.Render(" " + m.screen.Title() + " "))
	if snap.Loading {
		sb.WriteString(m.styles.Muted.Render("  loading..."))
	}
	sb.WriteString("\n\n")

	sb.WriteString(m.renderFilterBar(snap.State, m.ctrl.Scope()))
	sb.WriteString("\n\n")

	if len(snap.Items) == 0 && !snap.Loading && snap.Err == nil {
		sb.WriteString(m.styles.Muted.Render("No records."))
	} else {
		sb.WriteString(m.table.View())
	}
	sb.WriteString("\n")

	// Rows from the last good page stay on screen under the error.
	if snap.Err != nil {
		sb.WriteString(m.styles.Error.Render("! " + snap.Err.Error()))
		sb.WriteString("\n")
	}
	if m.notice != "" {
		sb.WriteString(m.styles.Error.Render(m.notice))
		sb.WriteString("\n")
	}

	sb.WriteString(m.renderPager(snap))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Help.Render("n/p page · 1-9 go to · / search · +/- page size · c clear · r refresh · q quit"))

	return sb.String()
}

func (m Model) renderFilterBar(state listing.FilterState, scope map[string]string) string {
	var parts []string
	if m.searching {
		parts = append(parts, m.search.View())
	} else if text, ok := state.Search(); ok {
		parts = append(parts, fmt.Sprintf("search: %q", text))
	}

	filters := state.Filters()
	for _, k := range slices.Sorted(maps.Keys(filters)) {
		parts = append(parts, k+"="+filters[k])
	}
	for _, k := range slices.Sorted(maps.Keys(scope)) {
		parts = append(parts, m.styles.Muted.Render(k+"="+scope[k]))
	}

	if len(parts) == 0 {
		return m.styles.Muted.Render("no filters")
	}
	return strings.Join(parts, "  ")
}

func (m Model) renderPager(snap listing.Snapshot[catalog.Row]) string {
	current := snap.State.Page()
	cells := listing.PageWindow(current, snap.Pagination.LastPage(), m.maxVisible)

	parts := make([]string, 0, len(cells))
	for _, c := range cells {
		s := c.String()
		if !c.Ellipsis && c.Page == current {
			s = m.styles.Current.Render("[" + s + "]")
		}
		parts = append(parts, s)
	}

	summary := fmt.Sprintf("page %d/%d · %d items · %d per page",
		current, snap.Pagination.LastPage(), snap.Pagination.TotalItems, snap.State.PageSize())
	return "‹ " + strings.Join(parts, " ") + " ›  " + m.styles.Muted.Render(summary)
}

// columns sizes each column to its widest cell within bounds.
func columns(s catalog.Screen, rows []catalog.Row) []table.Column {
	cols := s.Columns()
	out := make([]table.Column, len(cols))
	for i, c := range cols {
		w := lipgloss.Width(c.Title)
		for _, r := range rows {
			if i < len(r.Cells) {
				w = max(w, lipgloss.Width(r.Cells[i]))
			}
		}
		out[i] = table.Column{Title: c.Title, Width: min(max(w, minColumnWidth), maxColumnWidth)}
	}
	return out
}
