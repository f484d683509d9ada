package search

import (
	"sort"
	"strings"

	"github.com/xenking/meli-catalog-challenge/internal/domain/catalog"
)

// Comparator reports whether a must sort before b.
type Comparator func(a, b *catalog.Product) bool

// BuildComparator maps a sort field to a total order over products. Known
// fields: "price", "rating" (average, 0.0 when the product has no rating),
// "title". Anything else, including the default "id", orders by ID
// lexicographically. Descending reverses the order; equal keys report false
// either way so a stable sort preserves input order among ties.
func BuildComparator(sortBy string, descending bool) Comparator {
	cmp := compareBy(sortBy)
	if descending {
		return func(a, b *catalog.Product) bool { return cmp(a, b) > 0 }
	}
	return func(a, b *catalog.Product) bool { return cmp(a, b) < 0 }
}

func compareBy(field string) func(a, b *catalog.Product) int {
	switch field {
	case "price":
		return func(a, b *catalog.Product) int { return a.Price.Cmp(b.Price) }
	case "rating":
		return func(a, b *catalog.Product) int {
			ra, rb := ratingAverage(a), ratingAverage(b)
			switch {
			case ra < rb:
				return -1
			case ra > rb:
				return 1
			}
			return 0
		}
	case "title":
		return func(a, b *catalog.Product) int { return strings.Compare(a.Title, b.Title) }
	default:
		return func(a, b *catalog.Product) int { return strings.Compare(a.ID, b.ID) }
	}
}

func ratingAverage(p *catalog.Product) float64 {
	if p.Rating == nil {
		return 0.0
	}
	return p.Rating.AverageRating
}

// Sort orders products in place with the given comparator. The sort is
// stable: products with equal keys keep their relative order.
func Sort(products []catalog.Product, less Comparator) {
	sort.SliceStable(products, func(i, j int) bool {
		return less(&products[i], &products[j])
	})
}
