package catalog

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested product does not exist.
var ErrNotFound = errors.New("product not found")

func init() {
	// Prices are serialized as JSON numbers, not quoted strings, matching the
	// public API contract. Exactness is preserved because decimal renders its
	// own digits.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product is a catalog item. ID is immutable after creation; Seller, Rating
// and Category are optional and replaced wholesale on update, never merged.
type Product struct {
	ID             string            `json:"id"`
	Title          string            `json:"title"`
	Description    string            `json:"description,omitempty"`
	Price          decimal.Decimal   `json:"price"`
	Images         []string          `json:"images"`
	Seller         *Seller           `json:"seller,omitempty"`
	AvailableStock int               `json:"availableStock"`
	PaymentMethods []string          `json:"paymentMethods"`
	Rating         *ProductRating    `json:"rating,omitempty"`
	Category       *Category         `json:"category,omitempty"`
	Attributes     map[string]string `json:"attributes,omitempty"`
}

// Seller identifies who offers a product.
type Seller struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	StoreName     string  `json:"storeName,omitempty"`
	OfficialStore bool    `json:"isOfficialStore"`
	Rating        float64 `json:"rating"`
}

// ProductRating aggregates review scores for a product.
type ProductRating struct {
	AverageRating float64  `json:"averageRating"`
	TotalRatings  int      `json:"totalRatings"`
	Reviews       []Review `json:"reviews"`
}

// Review is a single customer review.
type Review struct {
	UserID  string `json:"userId"`
	Comment string `json:"comment,omitempty"`
	Rating  int    `json:"rating"`
	Date    string `json:"date,omitempty"`
}

// Category places a product in the catalog taxonomy. ParentID may chain
// categories; the chain is not checked for cycles here.
type Category struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	ParentID    string   `json:"parentId,omitempty"`
	Attributes  []string `json:"attributes,omitempty"`
	Active      bool     `json:"active"`
}

// Store defines persistence operations for the product collection. Put
// assigns a fresh ID when the product has none and replaces any existing
// record with the same ID wholesale.
type Store interface {
	Get(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context) ([]Product, error)
	Put(ctx context.Context, p *Product) (*Product, error)
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, id string) (bool, error)
}

// Clone returns a copy of p that shares no mutable state with the original.
func (p *Product) Clone() *Product {
	c := *p
	if p.Images != nil {
		c.Images = append([]string(nil), p.Images...)
	}
	if p.PaymentMethods != nil {
		c.PaymentMethods = append([]string(nil), p.PaymentMethods...)
	}
	if p.Seller != nil {
		s := *p.Seller
		c.Seller = &s
	}
	if p.Rating != nil {
		r := *p.Rating
		if p.Rating.Reviews != nil {
			r.Reviews = append([]Review(nil), p.Rating.Reviews...)
		}
		c.Rating = &r
	}
	if p.Category != nil {
		cat := *p.Category
		if p.Category.Attributes != nil {
			cat.Attributes = append([]string(nil), p.Category.Attributes...)
		}
		c.Category = &cat
	}
	if p.Attributes != nil {
		c.Attributes = make(map[string]string, len(p.Attributes))
		for k, v := range p.Attributes {
			c.Attributes[k] = v
		}
	}
	return &c
}
