package dispatch

import (
	"context"

	"catalog-api/internal/domain"
)

// Dispatcher submits a product-change event to a downstream consumer.
// Delivery is at-most-once and non-blocking: implementations return once the
// downstream accepts the submission, never retry, and callers must not let a
// returned error affect the outcome of the originating request.
type Dispatcher interface {
	Dispatch(ctx context.Context, event *domain.ProductEvent) error
}

// NewProductEvent snapshots a mutated product into the event payload.
func NewProductEvent(eventType string, product *domain.Product, email, requestID string) *domain.ProductEvent {
	return &domain.ProductEvent{
		Email:        email,
		EventType:    eventType,
		ProductID:    product.ID.String(),
		ProductCode:  product.Code,
		ProductPrice: product.Price,
		RequestID:    requestID,
	}
}
