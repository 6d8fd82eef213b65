package listing

import "strconv"

// DefaultMaxVisiblePages is the page-number budget of the pager control.
const DefaultMaxVisiblePages = 5

// PageItem is one cell of the pager: a page number or an ellipsis.
type PageItem struct {
	Page     int
	Ellipsis bool
}

func (p PageItem) String() string {
	if p.Ellipsis {
		return "…"
	}
	return strconv.Itoa(p.Page)
}

// PageWindow lists the pager cells for currentPage of totalPages.
//
// With totalPages <= maxVisible every page is listed. Otherwise page 1 is
// always listed, an ellipsis follows when currentPage > 3, then the window
// [max(2, current-1), min(total-1, current+1)], an ellipsis when
// currentPage < totalPages-2, and finally the last page.
// The left and right thresholds are intentionally not symmetric.
func PageWindow(currentPage, totalPages, maxVisible int) []PageItem {
	if maxVisible < 1 {
		maxVisible = DefaultMaxVisiblePages
	}
	if totalPages < 1 {
		return nil
	}

	if totalPages <= maxVisible {
		items := make([]PageItem, 0, totalPages)
		for p := 1; p <= totalPages; p++ {
			items = append(items, PageItem{Page: p})
		}
		return items
	}

	items := []PageItem{{Page: 1}}
	if currentPage > 3 {
		items = append(items, PageItem{Ellipsis: true})
	}

	start := max(2, currentPage-1)
	end := min(totalPages-1, currentPage+1)
	for p := start; p <= end; p++ {
		items = append(items, PageItem{Page: p})
	}

	if currentPage < totalPages-2 {
		items = append(items, PageItem{Ellipsis: true})
	}
	if totalPages > 1 {
		items = append(items, PageItem{Page: totalPages})
	}
	return items
}
