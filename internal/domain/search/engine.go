package search

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/xenking/meli-catalog-challenge/internal/domain/catalog"
)

// Engine runs the filter, sort and paginate pipeline over a store snapshot.
type Engine struct {
	store catalog.Store
}

// NewEngine creates an Engine reading from the given store.
func NewEngine(store catalog.Store) *Engine {
	return &Engine{store: store}
}

// Search applies the filters in params, stable-sorts the matches, and returns
// the requested page.
func (e *Engine) Search(ctx context.Context, params Params) (Page, error) {
	products, err := e.store.List(ctx)
	if err != nil {
		return Page{}, errors.Wrap(err, "list products")
	}

	filtered := Filter(products, BuildPredicate(params))
	Sort(filtered, BuildComparator(params.SortBy, params.Descending))

	return Paginate(filtered, params.Page, params.Size), nil
}

// ListAll is Search without the filter step: the whole catalog, sorted and
// paginated. Filter fields in params are ignored.
func (e *Engine) ListAll(ctx context.Context, params Params) (Page, error) {
	products, err := e.store.List(ctx)
	if err != nil {
		return Page{}, errors.Wrap(err, "list products")
	}

	Sort(products, BuildComparator(params.SortBy, params.Descending))

	return Paginate(products, params.Page, params.Size), nil
}
