package handler

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/xenking/meli-catalog-challenge/internal/domain/catalog"
)

// Request DTOs carry the validation tags; the domain only ever sees inputs
// that passed them. One review rating outside 0..5 rejects the whole payload.

type sellerRequest struct {
	ID            string  `json:"id"`
	Name          string  `json:"name" validate:"required"`
	StoreName     string  `json:"storeName"`
	OfficialStore bool    `json:"isOfficialStore"`
	Rating        float64 `json:"rating" validate:"gte=0,lte=5"`
}

type reviewRequest struct {
	UserID  string `json:"userId"`
	Comment string `json:"comment"`
	Rating  int    `json:"rating" validate:"gte=0,lte=5"`
	Date    string `json:"date"`
}

type ratingRequest struct {
	AverageRating float64         `json:"averageRating" validate:"gte=0,lte=5"`
	TotalRatings  int             `json:"totalRatings" validate:"gte=0"`
	Reviews       []reviewRequest `json:"reviews" validate:"dive"`
}

type categoryRequest struct {
	ID          string   `json:"id"`
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	ParentID    string   `json:"parentId"`
	Attributes  []string `json:"attributes"`
	Active      bool     `json:"active"`
}

type createProductRequest struct {
	Title          string            `json:"title" validate:"required,max=200"`
	Description    string            `json:"description" validate:"max=2000"`
	Price          decimal.Decimal   `json:"price"`
	Images         []string          `json:"images" validate:"omitempty,dive,url"`
	Seller         *sellerRequest    `json:"seller"`
	AvailableStock *int              `json:"availableStock" validate:"omitempty,gte=0"`
	PaymentMethods []string          `json:"paymentMethods"`
	Category       *categoryRequest  `json:"category"`
	Attributes     map[string]string `json:"attributes"`
}

// updateProductRequest distinguishes absent from present-but-zero with a
// pointer per field: nil keeps the stored value, non-nil replaces it.
type updateProductRequest struct {
	Title          *string            `json:"title" validate:"omitempty,max=200"`
	Description    *string            `json:"description" validate:"omitempty,max=2000"`
	Price          *decimal.Decimal   `json:"price"`
	Images         *[]string          `json:"images" validate:"omitempty,dive,url"`
	Seller         *sellerRequest     `json:"seller"`
	AvailableStock *int               `json:"availableStock" validate:"omitempty,gte=0"`
	PaymentMethods *[]string          `json:"paymentMethods"`
	Rating         *ratingRequest     `json:"rating"`
	Category       *categoryRequest   `json:"category"`
	Attributes     *map[string]string `json:"attributes"`
}

// CreateProduct handles POST /api/products.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if !req.Price.IsPositive() {
		writeError(w, r, http.StatusBadRequest, "price must be positive")
		return
	}

	created, err := h.catalog.Create(r.Context(), catalog.CreateRequest{
		Title:          req.Title,
		Description:    req.Description,
		Price:          req.Price,
		Images:         req.Images,
		Seller:         req.Seller.domain(),
		AvailableStock: req.AvailableStock,
		PaymentMethods: req.PaymentMethods,
		Category:       req.Category.domain(),
		Attributes:     req.Attributes,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, created)
}

// GetProduct handles GET /api/products/{id}.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.catalog.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, p)
}

// UpdateProduct handles PUT /api/products/{id}.
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req updateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.Price != nil && !req.Price.IsPositive() {
		writeError(w, r, http.StatusBadRequest, "price must be positive")
		return
	}

	updated, err := h.catalog.Update(r.Context(), r.PathValue("id"), catalog.UpdateRequest{
		Title:          req.Title,
		Description:    req.Description,
		Price:          req.Price,
		Images:         req.Images,
		Seller:         req.Seller.domain(),
		AvailableStock: req.AvailableStock,
		PaymentMethods: req.PaymentMethods,
		Rating:         req.Rating.domain(),
		Category:       req.Category.domain(),
		Attributes:     req.Attributes,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, updated)
}

// DeleteProduct handles DELETE /api/products/{id}.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *sellerRequest) domain() *catalog.Seller {
	if s == nil {
		return nil
	}
	return &catalog.Seller{
		ID:            s.ID,
		Name:          s.Name,
		StoreName:     s.StoreName,
		OfficialStore: s.OfficialStore,
		Rating:        s.Rating,
	}
}

func (c *categoryRequest) domain() *catalog.Category {
	if c == nil {
		return nil
	}
	return &catalog.Category{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		ParentID:    c.ParentID,
		Attributes:  c.Attributes,
		Active:      c.Active,
	}
}

func (r *ratingRequest) domain() *catalog.ProductRating {
	if r == nil {
		return nil
	}
	reviews := make([]catalog.Review, len(r.Reviews))
	for i, rv := range r.Reviews {
		reviews[i] = catalog.Review{
			UserID:  rv.UserID,
			Comment: rv.Comment,
			Rating:  rv.Rating,
			Date:    rv.Date,
		}
	}
	return &catalog.ProductRating{
		AverageRating: r.AverageRating,
		TotalRatings:  r.TotalRatings,
		Reviews:       reviews,
	}
}
