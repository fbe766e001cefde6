package domain

import (
	"context"
	"math"
)

// Pagination query defaults and limits.
const (
	DefaultPage     = 1
	DefaultPageSize = 50
	MaxPageSize     = 100
)

// Sort directions accepted in PageRequest.SortOrder.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// PageRequest holds offset-based pagination and sort parameters for list queries.
// Validation happens at the HTTP boundary; the validate tags are the rules applied there.
type PageRequest struct {
	Page      int    `validate:"min=1"`
	Size      int    `validate:"min=1,max=100"`
	SortBy    string `validate:"omitempty,max=64"`
	SortOrder string `validate:"oneof=asc desc"`
}

// NewPageRequest returns a PageRequest with the default page, size and order.
func NewPageRequest() PageRequest {
	return PageRequest{Page: DefaultPage, Size: DefaultPageSize, SortOrder: SortDesc}
}

// Offset returns the row offset for the current page (0-based).
// Formula: (Page - 1) * Size, saturating at math.MaxInt.
func (p PageRequest) Offset() int {
	if p.Page < 1 || p.Size < 1 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Size
}

// Ordering is a resolved sort column and direction. A nil *Ordering means the
// data source applies its own default ordering.
type Ordering struct {
	Column string
	Desc   bool
}

// SortableFields maps a client-facing field name to the column it sorts on.
type SortableFields map[string]string

// Resolve returns the ordering for field and order, or nil when field is empty
// or not in the allow-list. Any order other than "asc" sorts descending.
func (f SortableFields) Resolve(field, order string) *Ordering {
	if field == "" {
		return nil
	}
	column, ok := f[field]
	if !ok {
		return nil
	}
	return &Ordering{Column: column, Desc: order != SortAsc}
}

// PageSource is a filtered, sortable view over a set of records. Count and
// Fetch must observe the same filters.
type PageSource[T any] interface {
	Count(ctx context.Context) (int, error)
	Fetch(ctx context.Context, offset, limit int, order *Ordering) ([]T, error)
}

// Page is one page of a listing plus its metadata.
// swagger:model Page
type Page[T any] struct {
	Items   []T  `json:"items"`
	Total   int  `json:"total"`
	Page    int  `json:"page"`
	Size    int  `json:"size"`
	Pages   int  `json:"pages"`
	HasNext bool `json:"has_next"`
	HasPrev bool `json:"has_prev"`
}

// NewPage builds a Page from items already fetched for req and the total count.
// Pages is ceiling(total / size); if size is 0, Pages is 0.
func NewPage[T any](items []T, req PageRequest, total int) Page[T] {
	if items == nil {
		items = []T{}
	}
	if req.Size > 0 && len(items) > req.Size {
		items = items[:req.Size]
	}
	pages := 0
	if req.Size > 0 && total > 0 {
		pages = (total + req.Size - 1) / req.Size
	}
	return Page[T]{
		Items:   items,
		Total:   total,
		Page:    req.Page,
		Size:    req.Size,
		Pages:   pages,
		HasNext: req.Page < pages,
		HasPrev: req.Page > 1,
	}
}

// Paginate counts the records in source, fetches the page described by req and
// returns it with its metadata. A SortBy outside sortable falls back to the
// source's default ordering. Errors from the source are returned unchanged.
func Paginate[T any](ctx context.Context, source PageSource[T], req PageRequest, sortable SortableFields) (Page[T], error) {
	order := sortable.Resolve(req.SortBy, req.SortOrder)

	total, err := source.Count(ctx)
	if err != nil {
		return Page[T]{}, err
	}
	offset := req.Offset()
	if offset > 0 && offset >= total {
		return NewPage[T](nil, req, total), nil
	}
	items, err := source.Fetch(ctx, offset, req.Size, order)
	if err != nil {
		return Page[T]{}, err
	}
	return NewPage(items, req, total), nil
}
