package domain

import (
	"github.com/google/uuid"
)

// Product represents a product in the catalog. The ID is assigned by the
// server exactly once, at creation, and is immutable afterwards.
type Product struct {
	ID          uuid.UUID `json:"id"`
	ProductName string    `json:"productName"`
	Code        string    `json:"code"`
	Price       float64   `json:"price"`
	Model       string    `json:"model"`
	ProductURL  string    `json:"productUrl"`
}

// ProductRequest carries the caller-supplied fields for create and update
// operations. Any id supplied by the caller is ignored.
type ProductRequest struct {
	ProductName string  `json:"productName" validate:"required"`
	Code        string  `json:"code"`
	Price       float64 `json:"price" validate:"gte=0"`
	Model       string  `json:"model"`
	ProductURL  string  `json:"productUrl"`
}
