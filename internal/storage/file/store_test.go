package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/meli-catalog-challenge/internal/domain/catalog"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(context.Background(), filepath.Join(t.TempDir(), "products.json"))
}

func sampleProduct() *catalog.Product {
	return &catalog.Product{
		Title:          "iPhone 15",
		Description:    "Latest model",
		Price:          decimal.RequireFromString("999.99"),
		Images:         []string{"https://example.com/1.jpg"},
		Seller:         &catalog.Seller{ID: "s1", Name: "Apple", StoreName: "Apple Store", OfficialStore: true, Rating: 4.9},
		AvailableStock: 10,
		PaymentMethods: []string{"Credit card"},
		Rating: &catalog.ProductRating{
			AverageRating: 4.5,
			TotalRatings:  2,
			Reviews: []catalog.Review{
				{UserID: "u1", Comment: "great", Rating: 5, Date: "2024-01-02"},
				{UserID: "u2", Comment: "ok", Rating: 4, Date: "2024-02-03"},
			},
		},
		Category:   &catalog.Category{ID: "c1", Name: "Phones", ParentID: "c0", Attributes: []string{"color"}, Active: true},
		Attributes: map[string]string{"color": "black", "storage": "256GB"},
	}
}

func TestPut_GeneratesID(t *testing.T) {
	s := newTestStore(t)

	created, err := s.Put(context.Background(), sampleProduct())
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
}

func TestPut_KeepsExplicitID(t *testing.T) {
	s := newTestStore(t)

	p := sampleProduct()
	p.ID = "explicit"
	created, err := s.Put(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, "explicit", created.ID)
}

func TestPutGet_RoundTrip(t *testing.T) {
	s := newTestStore(t)

	created, err := s.Put(context.Background(), sampleProduct())
	require.NoError(t, err)

	got, err := s.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestPut_UpsertReplacesWholesale(t *testing.T) {
	s := newTestStore(t)

	created, err := s.Put(context.Background(), sampleProduct())
	require.NoError(t, err)

	replacement := &catalog.Product{
		ID:    created.ID,
		Title: "Totally different",
		Price: decimal.NewFromInt(1),
	}
	_, err = s.Put(context.Background(), replacement)
	require.NoError(t, err)

	got, err := s.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Totally different", got.Title)
	// Replace, not merge.
	assert.Nil(t, got.Seller)
	assert.Nil(t, got.Rating)
}

func TestGet_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Get(context.Background(), "missing")
	require.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestDelete_ThenGetNotFound(t *testing.T) {
	s := newTestStore(t)

	created, err := s.Put(context.Background(), sampleProduct())
	require.NoError(t, err)

	require.NoError(t, s.Delete(context.Background(), created.ID))

	_, err = s.Get(context.Background(), created.ID)
	require.ErrorIs(t, err, catalog.ErrNotFound)

	require.ErrorIs(t, s.Delete(context.Background(), created.ID), catalog.ErrNotFound)
}

func TestExists(t *testing.T) {
	s := newTestStore(t)

	created, err := s.Put(context.Background(), sampleProduct())
	require.NoError(t, err)

	ok, err := s.Exists(context.Background(), created.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Exists(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPersistence_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	ctx := context.Background()

	s := New(ctx, path)
	created, err := s.Put(ctx, sampleProduct())
	require.NoError(t, err)

	reopened := New(ctx, path)
	got, err := reopened.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestLoad_MissingFileStartsEmpty(t *testing.T) {
	s := New(context.Background(), filepath.Join(t.TempDir(), "nope.json"))
	assert.Equal(t, 0, s.Len())
}

func TestLoad_MalformedFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(path, []byte("{this is not json"), 0o644))

	s := New(context.Background(), path)
	assert.Equal(t, 0, s.Len())

	// Still writable afterwards: the next mutation rewrites the file.
	_, err := s.Put(context.Background(), sampleProduct())
	require.NoError(t, err)
	assert.Equal(t, 1, New(context.Background(), path).Len())
}

func TestList_ReturnsSnapshotCopies(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.Put(ctx, sampleProduct())
	require.NoError(t, err)

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	// Mutating the snapshot must not leak into the store.
	list[0].Title = "mutated"
	list[0].Seller.Name = "mutated"
	list[0].Attributes["color"] = "mutated"

	got, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "iPhone 15", got.Title)
	assert.Equal(t, "Apple", got.Seller.Name)
	assert.Equal(t, "black", got.Attributes["color"])
}

func TestPut_CallerCannotMutateStoredProduct(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p := sampleProduct()
	created, err := s.Put(ctx, p)
	require.NoError(t, err)

	p.Title = "mutated after put"
	p.Seller.Name = "mutated"

	got, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "iPhone 15", got.Title)
	assert.Equal(t, "Apple", got.Seller.Name)
}

func TestConcurrentPuts_AllPersisted(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	const n = 20
	done := make(chan string, n)
	for range n {
		go func() {
			created, err := s.Put(ctx, sampleProduct())
			if err != nil {
				done <- ""
				return
			}
			done <- created.ID
		}()
	}

	for range n {
		id := <-done
		require.NotEmpty(t, id)
		ok, err := s.Exists(ctx, id)
		require.NoError(t, err)
		assert.True(t, ok)
	}
	assert.Equal(t, n, s.Len())

	reopened := New(ctx, s.Path())
	assert.Equal(t, n, reopened.Len())
}
