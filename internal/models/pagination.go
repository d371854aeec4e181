// internal/models/pagination.go
package models

// DefaultPageSize matches the catalog's "see more" step.
const DefaultPageSize = 8

type Pagination struct {
	Page     int `json:"page" form:"page"`
	PageSize int `json:"pageSize" form:"pageSize"`
}

func NewPagination(page, pageSize int) *Pagination {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Pagination{
		Page:     page,
		PageSize: pageSize,
	}
}

func (p *Pagination) GetOffset() int {
	return (p.Page - 1) * p.PageSize
}

func (p *Pagination) GetLimit() int {
	return p.PageSize
}

// Window returns the bounds of the page within a list of n items. Pages past
// the end yield an empty window; the bound is checked before multiplying so
// huge page numbers cannot overflow.
func (p *Pagination) Window(n int) (start, end int) {
	page, size := max(p.Page, 1), p.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	if n <= 0 || page-1 > (n-1)/size {
		return n, n
	}
	start = (page - 1) * size
	end = start + min(size, n-start)
	return start, end
}

// SongPage is one page of a filtered catalog listing.
type SongPage struct {
	Songs   []Song `json:"songs"`
	Total   int    `json:"total"`
	HasMore bool   `json:"hasMore"`
	Loading bool   `json:"loading"`
}
