package helpers

import (
	"net/http"
	"strconv"
	"strings"

	"monipaep/internal/domain"
)

// DefaultPage is used when the page query parameter is missing or invalid.
const DefaultPage = 1

// ParseListQuery reads page, filter and value from the request query string.
// Invalid or missing pages fall back to DefaultPage.
func ParseListQuery(r *http.Request) domain.ListQuery {
	q := r.URL.Query()
	page := DefaultPage
	if s := q.Get("page"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 1 {
			page = v
		}
	}
	return domain.ListQuery{
		Page: page,
		Filter: domain.Filter{
			Field: strings.TrimSpace(q.Get("filter")),
			Value: strings.TrimSpace(q.Get("value")),
		},
	}
}

// PaginationMeta is the pagination metadata included in paginated list responses.
// Pages is the page window to render; -1 marks an ellipsis.
// swagger:model PaginationMeta
type PaginationMeta struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int   `json:"total"`
	TotalPages int   `json:"total_pages"`
	FirstItem  int   `json:"first_item"`
	LastItem   int   `json:"last_item"`
	Pages      []int `json:"pages"`
}

// NewPaginationMeta builds PaginationMeta from the current page, page size, and total count.
// A page past the last one is reported as the last page.
func NewPaginationMeta(page, pageSize, total int) PaginationMeta {
	page = domain.ClampPage(total, pageSize, page)
	first, last := domain.PageRange(total, pageSize, page)
	return PaginationMeta{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: domain.TotalPages(total, pageSize),
		FirstItem:  first,
		LastItem:   last,
		Pages:      domain.PageWindow(total, pageSize, page, domain.DefaultSiblingCount),
	}
}

// ListResponse is the data of a paginated list response.
type ListResponse[T any] struct {
	Items      []T            `json:"items"`
	Pagination PaginationMeta `json:"pagination"`
}

// NewListResponse wraps one page of rows fetched for q.
func NewListResponse[T any](page *domain.Page[T], q domain.ListQuery) ListResponse[T] {
	items := page.Items
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{
		Items:      items,
		Pagination: NewPaginationMeta(q.Page, domain.DefaultPageSize, page.Total),
	}
}
