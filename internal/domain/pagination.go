package domain

// DefaultPageSize is the page size every list screen starts with.
const DefaultPageSize = 15

// PageSizeOptions is the fixed set of page sizes offered by list screens.
var PageSizeOptions = []int{15, 30, 45, 60}

// Pagination describes the current page window within a server-side result
// set. It is produced by the backend and treated as read-only.
type Pagination struct {
	CurrentPage int `json:"currentPage"`
	PageSize    int `json:"pageSize"`
	TotalPages  int `json:"totalPages"`
	TotalItems  int `json:"totalItems"`
}

// DefaultPagination is used while no metadata has been received yet
// (initial load or error).
func DefaultPagination() Pagination {
	return Pagination{CurrentPage: 1, PageSize: DefaultPageSize, TotalPages: 1, TotalItems: 0}
}

// NewPagination builds metadata with TotalPages = ceil(totalItems/pageSize).
func NewPagination(currentPage, pageSize, totalItems int) Pagination {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if currentPage < 1 {
		currentPage = 1
	}
	if totalItems < 0 {
		totalItems = 0
	}
	return Pagination{
		CurrentPage: currentPage,
		PageSize:    pageSize,
		TotalPages:  (totalItems + pageSize - 1) / pageSize,
		TotalItems:  totalItems,
	}
}

// IsZero reports whether p carries no metadata at all.
func (p Pagination) IsZero() bool { return p == Pagination{} }

// LastPage is the highest page a user can navigate to; never below 1.
func (p Pagination) LastPage() int {
	return max(p.TotalPages, 1)
}

// Consistent reports whether TotalPages matches TotalItems and PageSize and
// the current page lies inside the window.
func (p Pagination) Consistent() bool {
	if p.PageSize < 1 || p.CurrentPage < 1 {
		return false
	}
	if p.TotalPages != (p.TotalItems+p.PageSize-1)/p.PageSize {
		return false
	}
	return p.CurrentPage <= p.LastPage()
}
