// Package file implements the product store as an in-memory collection
// mirrored to a single flat file. Every mutation rewrites the whole file
// before returning, so a reader that observes a successful write observes it
// on disk too.
package file

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/go-faster/sdk/zctx"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xenking/meli-catalog-challenge/internal/domain/catalog"
)

var _ catalog.Store = (*Store)(nil)

// Store is a catalog.Store backed by a JSON snapshot file. A single RWMutex
// guards the collection; mutations hold the write lock across the
// read-modify-write-persist sequence so concurrent readers see either the
// pre- or post-mutation snapshot, never a partial one.
type Store struct {
	path string

	mu       sync.RWMutex
	products map[string]*catalog.Product
}

// New opens the store at path, loading any existing snapshot. A missing or
// malformed file starts an empty collection rather than blocking startup.
func New(ctx context.Context, path string) *Store {
	s := &Store{
		path:     path,
		products: make(map[string]*catalog.Product),
	}
	s.load(ctx)
	return s
}

// Path returns the backing file location.
func (s *Store) Path() string {
	return s.path
}

// Get returns a copy of the product with the given ID, or catalog.ErrNotFound.
func (s *Store) Get(_ context.Context, id string) (*catalog.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	return p.Clone(), nil
}

// List returns a snapshot copy of the whole collection. Order is not
// specified and in particular is not preserved across reloads.
func (s *Store) List(_ context.Context) ([]catalog.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]catalog.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, *p.Clone())
	}
	return out, nil
}

// Put upserts the product, assigning a fresh UUID when its ID is empty, and
// synchronously persists the collection before returning.
func (s *Store) Put(ctx context.Context, p *catalog.Product) (*catalog.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := p.Clone()
	if stored.ID == "" {
		stored.ID = uuid.New().String()
	}
	s.products[stored.ID] = stored
	s.persist(ctx)

	return stored.Clone(), nil
}

// Delete removes the product with the given ID and persists the collection.
// Returns catalog.ErrNotFound when the ID is unknown.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return catalog.ErrNotFound
	}
	delete(s.products, id)
	s.persist(ctx)

	return nil
}

// Exists reports whether a product with the given ID is present.
func (s *Store) Exists(_ context.Context, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.products[id]
	return ok, nil
}

// Len returns the number of stored products.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.products)
}

func (s *Store) load(ctx context.Context) {
	lg := zctx.From(ctx)

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			lg.Info("No snapshot file, starting empty", zap.String("path", s.path))
		} else {
			lg.Error("Snapshot read failed, starting empty", zap.String("path", s.path), zap.Error(err))
		}
		return
	}

	products, err := decodeProducts(data)
	if err != nil {
		lg.Error("Snapshot malformed, starting empty", zap.String("path", s.path), zap.Error(err))
		return
	}

	for i := range products {
		s.products[products[i].ID] = &products[i]
	}
	lg.Info("Snapshot loaded", zap.String("path", s.path), zap.Int("products", len(products)))
}

// persist rewrites the snapshot file. Write failures are logged and swallowed:
// the in-memory mutation stands and the file catches up on the next successful
// write. Callers must hold the write lock.
func (s *Store) persist(ctx context.Context) {
	data := encodeProducts(s.snapshotLocked())

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		zctx.From(ctx).Error("Snapshot write failed", zap.String("path", s.path), zap.Error(err))
		return
	}
	if err := os.Rename(tmp, s.path); err != nil {
		zctx.From(ctx).Error("Snapshot rename failed", zap.String("path", s.path), zap.Error(err))
	}
}

// snapshotLocked returns the collection ordered by ID so snapshots are
// deterministic. Callers must hold at least the read lock.
func (s *Store) snapshotLocked() []catalog.Product {
	ids := make([]string, 0, len(s.products))
	for id := range s.products {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	out := make([]catalog.Product, 0, len(ids))
	for _, id := range ids {
		out = append(out, *s.products[id])
	}
	return out
}

// Dir returns the directory holding the snapshot file, for writability probes.
func (s *Store) Dir() string {
	return filepath.Dir(s.path)
}
