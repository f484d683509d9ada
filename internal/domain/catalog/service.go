package catalog

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// DefaultPaymentMethods is applied to products created without an explicit
// payment method list.
var DefaultPaymentMethods = []string{
	"Credit card",
	"Debit card",
	"PayPal",
	"Mercado Pago",
	"Apple Pay",
}

// CreateRequest holds the validated input for creating a product.
type CreateRequest struct {
	Title          string
	Description    string
	Price          decimal.Decimal
	Images         []string
	Seller         *Seller
	AvailableStock *int
	PaymentMethods []string
	Category       *Category
	Attributes     map[string]string
}

// UpdateRequest holds a partial update. Nil fields leave the existing value
// untouched; non-nil fields replace it wholesale, sub-objects included.
type UpdateRequest struct {
	Title          *string
	Description    *string
	Price          *decimal.Decimal
	Images         *[]string
	Seller         *Seller
	AvailableStock *int
	PaymentMethods *[]string
	Rating         *ProductRating
	Category       *Category
	Attributes     *map[string]string
}

// Service implements the product lifecycle: creation with generated identity
// and defaults, partial updates, and existence-checked deletes.
type Service struct {
	store Store
}

// NewService creates a Service backed by the given store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Get returns the product with the given ID, or ErrNotFound.
func (s *Service) Get(ctx context.Context, id string) (*Product, error) {
	return s.store.Get(ctx, id)
}

// Create builds a product from the request, applies defaults, and persists it.
// The returned product carries the generated ID and a zeroed rating summary.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Product, error) {
	p := &Product{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Images:      req.Images,
		Seller:      req.Seller,
		Category:    req.Category,
		Attributes:  req.Attributes,
		Rating: &ProductRating{
			AverageRating: 0.0,
			TotalRatings:  0,
			Reviews:       []Review{},
		},
	}

	if len(req.PaymentMethods) > 0 {
		p.PaymentMethods = req.PaymentMethods
	} else {
		p.PaymentMethods = append([]string(nil), DefaultPaymentMethods...)
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	if req.AvailableStock != nil {
		p.AvailableStock = *req.AvailableStock
	}

	created, err := s.store.Put(ctx, p)
	if err != nil {
		return nil, errors.Wrap(err, "store product")
	}
	return created, nil
}

// Update loads the product, overwrites only the fields present in req, and
// persists the result. Returns ErrNotFound when the ID is unknown.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*Product, error) {
	p, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.Images != nil {
		p.Images = *req.Images
	}
	if req.Seller != nil {
		p.Seller = req.Seller
	}
	if req.AvailableStock != nil {
		p.AvailableStock = *req.AvailableStock
	}
	if req.PaymentMethods != nil {
		p.PaymentMethods = *req.PaymentMethods
	}
	if req.Rating != nil {
		p.Rating = req.Rating
	}
	if req.Category != nil {
		p.Category = req.Category
	}
	if req.Attributes != nil {
		p.Attributes = *req.Attributes
	}

	updated, err := s.store.Put(ctx, p)
	if err != nil {
		return nil, errors.Wrap(err, "store product")
	}
	return updated, nil
}

// Delete removes the product with the given ID. Returns ErrNotFound when the
// ID is unknown.
func (s *Service) Delete(ctx context.Context, id string) error {
	ok, err := s.store.Exists(ctx, id)
	if err != nil {
		return errors.Wrap(err, "check product")
	}
	if !ok {
		return ErrNotFound
	}
	return s.store.Delete(ctx, id)
}
