package search

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/meli-catalog-challenge/internal/domain/catalog"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func boolPtr(b bool) *bool      { return &b }
func f64Ptr(f float64) *float64 { return &f }

func testProducts() []catalog.Product {
	return []catalog.Product{
		{
			ID:    "a",
			Title: "iPhone 15 Pro",
			Price: dec("999.99"),
			Seller: &catalog.Seller{
				Name: "Apple", StoreName: "Apple Store", OfficialStore: true,
			},
			Rating: &catalog.ProductRating{AverageRating: 4.8},
		},
		{
			ID:          "b",
			Title:       "Phone case",
			Description: "Fits the iphone lineup",
			Price:       dec("19.90"),
			Seller: &catalog.Seller{
				Name: "Accessories Inc", StoreName: "Gadget World", OfficialStore: false,
			},
			Rating: &catalog.ProductRating{AverageRating: 3.9},
		},
		{
			ID:    "c",
			Title: "Toaster",
			Price: dec("45.00"),
			// No seller, no rating.
		},
	}
}

func matchIDs(t *testing.T, params Params) []string {
	t.Helper()
	matched := Filter(testProducts(), BuildPredicate(params))
	ids := make([]string, len(matched))
	for i, p := range matched {
		ids[i] = p.ID
	}
	return ids
}

func TestPredicate_NoFiltersMatchesAll(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, matchIDs(t, NewParams()))
}

func TestPredicate_QueryMatchesTitleOrDescription(t *testing.T) {
	params := NewParams()
	params.Query = "IPHONE"

	// Case-insensitive, title (a) or description (b).
	assert.Equal(t, []string{"a", "b"}, matchIDs(t, params))
}

func TestPredicate_PriceBoundsInclusive(t *testing.T) {
	params := NewParams()
	params.MinPrice = decPtr("45.00")
	assert.Equal(t, []string{"a", "c"}, matchIDs(t, params))

	params = NewParams()
	params.MaxPrice = decPtr("45.00")
	assert.Equal(t, []string{"b", "c"}, matchIDs(t, params))

	params = NewParams()
	params.MinPrice = decPtr("19.90")
	params.MaxPrice = decPtr("999.99")
	assert.Equal(t, []string{"a", "b", "c"}, matchIDs(t, params))
}

func TestPredicate_OfficialStore(t *testing.T) {
	params := NewParams()
	params.OfficialStore = boolPtr(true)
	// c has no seller: fails when the filter is set.
	assert.Equal(t, []string{"a"}, matchIDs(t, params))

	params.OfficialStore = boolPtr(false)
	assert.Equal(t, []string{"b"}, matchIDs(t, params))
}

func TestPredicate_MinRating(t *testing.T) {
	params := NewParams()
	params.MinRating = f64Ptr(4.0)
	// b is below the bound, c has no rating at all.
	assert.Equal(t, []string{"a"}, matchIDs(t, params))

	params.MinRating = f64Ptr(3.9)
	assert.Equal(t, []string{"a", "b"}, matchIDs(t, params))
}

func TestPredicate_StoreNameSubstring(t *testing.T) {
	params := NewParams()
	params.StoreName = "gadget"
	assert.Equal(t, []string{"b"}, matchIDs(t, params))

	params.StoreName = "store"
	assert.Equal(t, []string{"a"}, matchIDs(t, params))
}

func TestPredicate_AbsentFiltersSkipAbsentFields(t *testing.T) {
	// No filter set: the product without seller or rating still matches and
	// nothing panics on the nil sub-objects.
	params := NewParams()
	require.Contains(t, matchIDs(t, params), "c")
}

func TestPredicate_CombinedScenario(t *testing.T) {
	params := NewParams()
	params.Query = "iphone"
	params.MinPrice = decPtr("500")
	params.OfficialStore = boolPtr(true)

	assert.Equal(t, []string{"a"}, matchIDs(t, params))
}
