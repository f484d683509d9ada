package search

import (
	"strings"

	"github.com/xenking/meli-catalog-challenge/internal/domain/catalog"
)

// Predicate is a boolean test over a single product.
type Predicate func(p *catalog.Product) bool

// BuildPredicate combines the filters present in params into one predicate.
// Each absent filter is vacuously true. Filters against optional sub-objects
// check presence first: a set filter fails on a product missing the field, an
// absent filter never touches it.
func BuildPredicate(params Params) Predicate {
	return func(p *catalog.Product) bool {
		if q := params.Query; q != "" {
			q = strings.ToLower(q)
			if !strings.Contains(strings.ToLower(p.Title), q) &&
				!strings.Contains(strings.ToLower(p.Description), q) {
				return false
			}
		}

		// Inclusive decimal bounds, exact comparison.
		if params.MinPrice != nil && p.Price.Cmp(*params.MinPrice) < 0 {
			return false
		}
		if params.MaxPrice != nil && p.Price.Cmp(*params.MaxPrice) > 0 {
			return false
		}

		if params.OfficialStore != nil {
			if p.Seller == nil || p.Seller.OfficialStore != *params.OfficialStore {
				return false
			}
		}

		if params.MinRating != nil {
			if p.Rating == nil || p.Rating.AverageRating < *params.MinRating {
				return false
			}
		}

		if s := params.StoreName; s != "" {
			if p.Seller == nil || p.Seller.StoreName == "" {
				return false
			}
			if !strings.Contains(strings.ToLower(p.Seller.StoreName), strings.ToLower(s)) {
				return false
			}
		}

		return true
	}
}

// Filter returns the products matching pred, preserving input order.
func Filter(products []catalog.Product, pred Predicate) []catalog.Product {
	out := make([]catalog.Product, 0, len(products))
	for i := range products {
		if pred(&products[i]) {
			out = append(out, products[i])
		}
	}
	return out
}
