// Package handler is the thin HTTP boundary: it decodes and validates
// requests, delegates to the domain, and maps typed domain errors onto
// status codes. No business logic lives here.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/xenking/meli-catalog-challenge/internal/domain/catalog"
	"github.com/xenking/meli-catalog-challenge/internal/domain/search"
)

// Handler serves the catalog REST API.
type Handler struct {
	catalog  *catalog.Service
	engine   *search.Engine
	validate *validator.Validate
}

// New constructs a Handler with the required domain dependencies.
func New(catalogSvc *catalog.Service, engine *search.Engine) *Handler {
	return &Handler{
		catalog:  catalogSvc,
		engine:   engine,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Register mounts all API routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/products", h.CreateProduct)
	mux.HandleFunc("GET /api/products", h.ListProducts)
	mux.HandleFunc("GET /api/products/search", h.SearchProducts)
	mux.HandleFunc("GET /api/products/{id}", h.GetProduct)
	mux.HandleFunc("PUT /api/products/{id}", h.UpdateProduct)
	mux.HandleFunc("DELETE /api/products/{id}", h.DeleteProduct)
}

// errorResponse is the wire shape for every non-2xx response.
type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zctx.From(r.Context()).Error("Write response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, errorResponse{Code: status, Message: msg})
}

// writeDomainError maps domain errors onto status codes. Unexpected errors
// become an opaque 500; their detail goes to the log only.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, catalog.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "product not found")
		return
	}
	zctx.From(r.Context()).Error("Request failed", zap.Error(err))
	writeError(w, r, http.StatusInternalServerError, "internal error")
}
