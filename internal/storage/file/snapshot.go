package file

import (
	"os"

	"github.com/go-faster/errors"

	"github.com/xenking/meli-catalog-challenge/internal/domain/catalog"
)

// WriteSnapshot writes products to path in the store's snapshot format,
// via a temp file and rename. Unlike the store's own persist, failures are
// returned: bulk tools want to know their output was not written.
func WriteSnapshot(path string, products []catalog.Product) error {
	data := encodeProducts(products)

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.Wrap(err, "write snapshot")
	}
	if err := os.Rename(tmp, path); err != nil {
		return errors.Wrap(err, "rename snapshot")
	}
	return nil
}

// ReadSnapshot loads a snapshot file without opening a Store around it.
func ReadSnapshot(path string) ([]catalog.Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read snapshot")
	}
	return decodeProducts(data)
}
