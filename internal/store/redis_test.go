package store

import (
	"context"
	"testing"

	"catalog-api/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *RedisStore {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisStore(client, "products")
}

func testProduct() *domain.Product {
	return &domain.Product{
		ID:          uuid.New(),
		ProductName: "Echo Dot",
		Code:        "COD1",
		Price:       84.5,
		Model:       "5th gen",
		ProductURL:  "https://example.com/echo-dot.png",
	}
}

func TestPutAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	product := testProduct()
	require.NoError(t, s.Put(ctx, product))

	got, err := s.Get(ctx, product.ID.String())
	require.NoError(t, err)
	assert.Equal(t, product, got)
}

func TestGetMissingReturnsNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Get(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPutIsUpsert(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	product := testProduct()
	require.NoError(t, s.Put(ctx, product))

	product.ProductName = "Echo Dot Max"
	product.Price = 99.9
	require.NoError(t, s.Put(ctx, product))

	got, err := s.Get(ctx, product.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Echo Dot Max", got.ProductName)
	assert.Equal(t, 99.9, got.Price)

	all, err := s.Scan(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestUpdateConditionalOverwritesFields(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	product := testProduct()
	require.NoError(t, s.Put(ctx, product))

	updated, err := s.UpdateConditional(ctx, product.ID.String(), &domain.ProductRequest{
		ProductName: "Echo Show",
		Code:        "COD2",
		Price:       120,
		Model:       "8",
		ProductURL:  "https://example.com/echo-show.png",
	})
	require.NoError(t, err)

	assert.Equal(t, product.ID, updated.ID, "id must be immutable")
	assert.Equal(t, "Echo Show", updated.ProductName)
	assert.Equal(t, "COD2", updated.Code)
	assert.Equal(t, float64(120), updated.Price)
	assert.Equal(t, "8", updated.Model)

	got, err := s.Get(ctx, product.ID.String())
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestUpdateConditionalMissingReturnsNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.UpdateConditional(context.Background(), uuid.New().String(), &domain.ProductRequest{
		ProductName: "Echo Show",
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteConditionalReturnsRemovedRecord(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	product := testProduct()
	require.NoError(t, s.Put(ctx, product))

	removed, err := s.DeleteConditional(ctx, product.ID.String())
	require.NoError(t, err)
	assert.Equal(t, product, removed)

	_, err = s.Get(ctx, product.ID.String())
	assert.ErrorIs(t, err, ErrNotFound)

	all, err := s.Scan(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestDeleteConditionalMissingReturnsNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.DeleteConditional(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestScanReturnsAllRecords(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := testProduct()
	second := testProduct()
	second.Code = "COD2"
	require.NoError(t, s.Put(ctx, first))
	require.NoError(t, s.Put(ctx, second))

	all, err := s.Scan(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	ids := map[string]bool{}
	for _, p := range all {
		ids[p.ID.String()] = true
	}
	assert.True(t, ids[first.ID.String()])
	assert.True(t, ids[second.ID.String()])
}

func TestQueryByCode(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := testProduct()
	second := testProduct()
	second.Code = "OTHER"
	require.NoError(t, s.Put(ctx, first))
	require.NoError(t, s.Put(ctx, second))

	matches, err := s.QueryByCode(ctx, "COD1")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, first.ID, matches[0].ID)

	empty, err := s.QueryByCode(ctx, "MISSING")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
