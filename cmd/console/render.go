package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/pokenihongo/admin-console/internal/catalog"
	"github.com/pokenihongo/admin-console/internal/listing"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// renderPage prints the rows as a table followed by the pager line.
func renderPage(screen catalog.Screen, snap listing.Snapshot[catalog.Row], maxVisible int) string {
	cols := screen.Columns()
	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.Title
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, r := range snap.Items {
		t.Row(r.Cells...)
	}

	var sb strings.Builder
	sb.WriteString(screen.Title())
	sb.WriteString("\n")
	if len(snap.Items) == 0 {
		sb.WriteString("No records.\n")
	} else {
		sb.WriteString(t.String())
		sb.WriteString("\n")
	}
	sb.WriteString(pagerLine(snap, maxVisible))
	return sb.String()
}

func pagerLine(snap listing.Snapshot[catalog.Row], maxVisible int) string {
	current := snap.State.Page()
	cells := listing.PageWindow(current, snap.Pagination.LastPage(), maxVisible)

	parts := make([]string, 0, len(cells))
	for _, c := range cells {
		if !c.Ellipsis && c.Page == current {
			parts = append(parts, "["+c.String()+"]")
			continue
		}
		parts = append(parts, c.String())
	}
	return fmt.Sprintf("%s  (page %d/%d, %d items, %d per page)",
		strings.Join(parts, " "), current, snap.Pagination.LastPage(), snap.Pagination.TotalItems, snap.State.PageSize())
}
