package domain

import "sort"

// Ellipsis is the page marker standing for a run of pages left out of a page window.
const Ellipsis = -1

// DefaultSiblingCount is the number of pages shown on each side of the current page.
const DefaultSiblingCount = 1

// DefaultPageSize is the number of rows per page served by the surveillance API.
const DefaultPageSize = 10

// PaginationParams holds page-based pagination parameters for list queries.
type PaginationParams struct {
	Page     int
	PageSize int
}

// TotalPages returns ceil(totalItems / pageSize), or 0 when either argument is not positive.
func TotalPages(totalItems, pageSize int) int {
	if totalItems <= 0 || pageSize <= 0 {
		return 0
	}
	return (totalItems + pageSize - 1) / pageSize
}

// PageWindow computes the page markers rendered by a pagination control.
//
// Pages 1 and lastPage are always present, together with up to siblingCount
// pages on each side of currentPage. An Ellipsis follows page 1 when
// currentPage-siblingCount > 2 and precedes the last page when
// currentPage+siblingCount < lastPage-1.
//
// currentPage is clamped into [1, lastPage] and a negative siblingCount is
// treated as 0. The result is empty when there is nothing to paginate.
func PageWindow(totalItems, pageSize, currentPage, siblingCount int) []int {
	lastPage := TotalPages(totalItems, pageSize)
	if lastPage == 0 {
		return []int{}
	}
	if siblingCount < 0 {
		siblingCount = 0
	}
	currentPage = clamp(currentPage, 1, lastPage)

	seen := map[int]struct{}{1: {}, lastPage: {}}
	for i := 0; i <= siblingCount; i++ {
		if p := currentPage - i; p > 1 {
			seen[p] = struct{}{}
		}
		if p := currentPage + i; p < lastPage {
			seen[p] = struct{}{}
		}
	}
	pages := make([]int, 0, len(seen)+2)
	for p := range seen {
		pages = append(pages, p)
	}
	sort.Ints(pages)

	if currentPage-siblingCount > 2 {
		pages = append(pages[:1], append([]int{Ellipsis}, pages[1:]...)...)
	}
	if currentPage+siblingCount < lastPage-1 {
		pages = append(pages[:len(pages)-1], Ellipsis, lastPage)
	}
	return pages
}

// PageRange returns the ordinals of the first and last rows shown on currentPage,
// e.g. 11 and 20 for the second page of 57 rows with 10 rows per page.
// currentPage is clamped to the existing pages.
func PageRange(totalItems, pageSize, currentPage int) (first, last int) {
	if totalItems <= 0 || pageSize <= 0 {
		return 0, 0
	}
	currentPage = ClampPage(totalItems, pageSize, currentPage)
	first = 1 + pageSize*(currentPage-1)
	last = min(pageSize*currentPage, totalItems)
	return first, last
}

// ClampPage limits page to [1, TotalPages]. With no rows it returns 1.
func ClampPage(totalItems, pageSize, page int) int {
	return clamp(page, 1, max(TotalPages(totalItems, pageSize), 1))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
