package domain

import "math"

// Page size bounds for listings.
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// PaginationParams selects one page of a sorted listing. Page is 1-indexed.
type PaginationParams struct {
	Page  int
	Limit int
}

// NewPaginationParams builds PaginationParams from optional query values.
// Nil or non-positive values fall back to page 1 and DefaultPageLimit; the
// limit is capped at MaxPageLimit.
func NewPaginationParams(page, limit *int) PaginationParams {
	p := PaginationParams{Page: 1, Limit: DefaultPageLimit}
	if page != nil && *page >= 1 {
		p.Page = min(*page, maxPage)
	}
	if limit != nil && *limit >= 1 {
		p.Limit = min(*limit, MaxPageLimit)
	}
	return p
}

// maxPage keeps Offset from overflowing at any allowed limit.
const maxPage = math.MaxInt/MaxPageLimit + 1

// Offset returns the zero-based index of the first item on the page.
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Paginate returns the items on page p. A page past the end is empty, never nil.
func Paginate[T any](items []T, p PaginationParams) []T {
	offset := p.Offset()
	if offset < 0 || p.Limit < 1 {
		return []T{}
	}
	start := min(offset, len(items))
	end := min(start+p.Limit, len(items))
	return append([]T{}, items[start:end]...)
}
