package search

// Pagination is a validated 1-based page window.
type Pagination struct {
	Page     int
	PageSize int
}

// NormalizePagination clamps requested pagination to sane values: page
// defaults to 1, page size defaults to the ceiling and never exceeds it.
// Strict rejection of out-of-range values is the HTTP layer's job; resolvers
// clamp so they stay safe to call directly.
func NormalizePagination(page, pageSize, maxPageSize int) Pagination {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return Pagination{Page: page, PageSize: pageSize}
}

// Offset returns the row offset of the window.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Slice returns the [lo, hi) bounds of this page within an in-memory result
// set of n records. A page past the end yields an empty, valid window.
func (p Pagination) Slice(n int) (lo, hi int) {
	lo = p.Offset()
	if lo > n {
		lo = n
	}
	hi = lo + p.PageSize
	if hi > n {
		hi = n
	}
	return lo, hi
}

// Meta is the pagination envelope every search response carries.
type Meta struct {
	TotalRecords int `json:"total_records"`
	CurrentPage  int `json:"current_page"`
	PageSize     int `json:"page_size"`
	TotalPages   int `json:"total_pages"`
}

// Meta builds the response metadata for a total record count.
// total_pages == ceil(total/page_size), and 0 when nothing matched.
func (p Pagination) Meta(totalRecords int) Meta {
	totalPages := 0
	if totalRecords > 0 {
		totalPages = (totalRecords + p.PageSize - 1) / p.PageSize
	}
	return Meta{
		TotalRecords: totalRecords,
		CurrentPage:  p.Page,
		PageSize:     p.PageSize,
		TotalPages:   totalPages,
	}
}
