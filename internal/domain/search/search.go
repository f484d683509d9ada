// Package search implements the catalog query engine: predicate-based
// filtering, stable multi-key sorting, and offset pagination over the product
// collection.
package search

import (
	"github.com/shopspring/decimal"

	"github.com/xenking/meli-catalog-challenge/internal/domain/catalog"
)

// Pagination defaults applied by NewParams.
const (
	DefaultPageSize = 10
	DefaultSortBy   = "id"
)

// Params describes one search: optional filters plus sorting and pagination.
// Nil pointer filters are absent and match every product.
type Params struct {
	Query         string
	MinPrice      *decimal.Decimal
	MaxPrice      *decimal.Decimal
	OfficialStore *bool
	MinRating     *float64
	StoreName     string

	Page       int
	Size       int
	SortBy     string
	Descending bool
}

// NewParams returns Params with the documented defaults: first page, size 10,
// ascending by ID, no filters.
func NewParams() Params {
	return Params{
		Size:   DefaultPageSize,
		SortBy: DefaultSortBy,
	}
}

// Page is one page of search results together with its metadata.
type Page struct {
	Content       []catalog.Product `json:"content"`
	PageNumber    int               `json:"pageNumber"`
	PageSize      int               `json:"pageSize"`
	TotalElements int               `json:"totalElements"`
	TotalPages    int               `json:"totalPages"`
	First         bool              `json:"first"`
	Last          bool              `json:"last"`
}
