package store

import (
	"context"
	"errors"

	"catalog-api/internal/domain"
)

// ErrNotFound is returned by conditional operations when no record with the
// given id exists. It is the only store error callers may map to a 404;
// every other failure is a storage error.
var ErrNotFound = errors.New("product record not found")

// Store is the key-value persistence contract for product records, keyed by
// product id. Conditional operations are atomic at the store layer: the
// existence check and the mutation happen as a single step.
type Store interface {
	// Get returns the record with the given id, or ErrNotFound.
	Get(ctx context.Context, id string) (*domain.Product, error)

	// Put unconditionally upserts the record.
	Put(ctx context.Context, product *domain.Product) error

	// UpdateConditional overwrites the request fields of an existing record
	// and returns the full updated record. Fails with ErrNotFound when no
	// record with the id exists.
	UpdateConditional(ctx context.Context, id string, req *domain.ProductRequest) (*domain.Product, error)

	// DeleteConditional removes an existing record and returns the record as
	// it existed immediately before removal. Fails with ErrNotFound when no
	// record with the id exists.
	DeleteConditional(ctx context.Context, id string) (*domain.Product, error)

	// Scan returns all records visible at call time.
	Scan(ctx context.Context) ([]*domain.Product, error)

	// QueryByCode returns all records whose code equals the given value.
	QueryByCode(ctx context.Context, code string) ([]*domain.Product, error)
}
