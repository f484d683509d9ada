package handler

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/xenking/meli-catalog-challenge/internal/domain/search"
)

// SearchProducts handles GET /api/products/search: the full filter, sort and
// paginate pipeline.
func (h *Handler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	params, err := parseSearchParams(r.URL.Query())
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	page, err := h.engine.Search(r.Context(), params)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, page)
}

// ListProducts handles GET /api/products: the whole catalog, sorted and
// paginated, ignoring filter parameters.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	params, err := parseSearchParams(r.URL.Query())
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	page, err := h.engine.ListAll(r.Context(), params)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, page)
}

type paramError struct{ msg string }

func (e *paramError) Error() string { return e.msg }

func badParam(name string) error {
	return &paramError{msg: "invalid value for parameter " + name}
}

func parseSearchParams(q url.Values) (search.Params, error) {
	params := search.NewParams()

	params.Query = q.Get("query")
	params.StoreName = q.Get("storeName")

	if v := q.Get("minPrice"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return params, badParam("minPrice")
		}
		params.MinPrice = &d
	}
	if v := q.Get("maxPrice"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return params, badParam("maxPrice")
		}
		params.MaxPrice = &d
	}
	if v := q.Get("isOfficialStore"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return params, badParam("isOfficialStore")
		}
		params.OfficialStore = &b
	}
	if v := q.Get("minRating"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 || f > 5 {
			return params, badParam("minRating")
		}
		params.MinRating = &f
	}
	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return params, badParam("page")
		}
		params.Page = n
	}
	if v := q.Get("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return params, badParam("size")
		}
		params.Size = n
	}
	if v := q.Get("sortBy"); v != "" {
		params.SortBy = v
	}
	switch dir := q.Get("direction"); dir {
	case "", "asc", "ASC":
	case "desc", "DESC":
		params.Descending = true
	default:
		return params, badParam("direction")
	}

	return params, nil
}
