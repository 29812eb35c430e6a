package repository

import (
	"context"
	"errors"
	"fmt"

	"catalog-api/internal/domain"
	"catalog-api/internal/store"

	"github.com/google/uuid"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// ProductRepository defines the domain-level interface for product access.
// It owns identifier assignment; the store below it owns atomicity.
type ProductRepository interface {
	Create(ctx context.Context, req *domain.ProductRequest) (*domain.Product, error)
	Update(ctx context.Context, id string, req *domain.ProductRequest) (*domain.Product, error)
	Delete(ctx context.Context, id string) (*domain.Product, error)
	FetchByID(ctx context.Context, id string) (*domain.Product, error)
	FetchAll(ctx context.Context) ([]*domain.Product, error)
	FetchByCode(ctx context.Context, code string) ([]*domain.Product, error)
}

type productRepository struct {
	store store.Store
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(s store.Store) ProductRepository {
	return &productRepository{store: s}
}

// Create assembles a product from the request, assigns a fresh id and
// persists it. There is no domain failure mode; storage errors propagate.
func (r *productRepository) Create(ctx context.Context, req *domain.ProductRequest) (*domain.Product, error) {
	product := &domain.Product{
		ID:          uuid.New(),
		ProductName: req.ProductName,
		Code:        req.Code,
		Price:       req.Price,
		Model:       req.Model,
		ProductURL:  req.ProductURL,
	}

	if err := r.store.Put(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

// Update overwrites the request fields of an existing product. The id is
// immutable and never taken from the request.
func (r *productRepository) Update(ctx context.Context, id string, req *domain.ProductRequest) (*domain.Product, error) {
	product, err := r.store.UpdateConditional(ctx, id, req)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return product, nil
}

// Delete removes an existing product and returns its pre-deletion state.
func (r *productRepository) Delete(ctx context.Context, id string) (*domain.Product, error) {
	product, err := r.store.DeleteConditional(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to delete product: %w", err)
	}

	return product, nil
}

func (r *productRepository) FetchByID(ctx context.Context, id string) (*domain.Product, error) {
	product, err := r.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}

	return product, nil
}

func (r *productRepository) FetchAll(ctx context.Context) ([]*domain.Product, error) {
	products, err := r.store.Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	return products, nil
}

func (r *productRepository) FetchByCode(ctx context.Context, code string) ([]*domain.Product, error) {
	products, err := r.store.QueryByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products by code: %w", err)
	}

	return products, nil
}
