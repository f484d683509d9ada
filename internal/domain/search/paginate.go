package search

import "github.com/xenking/meli-catalog-challenge/internal/domain/catalog"

// Paginate slices the ordered sequence into the requested page and fills in
// page metadata. Out-of-range pages yield empty content, never an error.
// For an empty sequence totalPages is 0 and Last is false on page 0, since
// there is no last page to be on.
func Paginate(products []catalog.Product, page, size int) Page {
	n := len(products)

	totalPages := 0
	if n > 0 {
		totalPages = (n + size - 1) / size
	}

	start := page * size
	end := min(start+size, n)

	content := []catalog.Product{}
	if start < n {
		content = products[start:end]
	}

	return Page{
		Content:       content,
		PageNumber:    page,
		PageSize:      size,
		TotalElements: n,
		TotalPages:    totalPages,
		First:         page == 0,
		Last:          page == totalPages-1,
	}
}
