package domain

// Event types carried by ProductEvent.
const (
	EventProductCreated = "PRODUCT_CREATED"
	EventProductUpdated = "PRODUCT_UPDATED"
	EventProductDeleted = "PRODUCT_DELETED"
)

// ProductEvent is the notification emitted after a successful product
// mutation. It is delivered at most once, asynchronously, and is never
// persisted by this service.
type ProductEvent struct {
	Email        string  `json:"email"`
	EventType    string  `json:"eventType"`
	ProductID    string  `json:"productId"`
	ProductCode  string  `json:"productCode"`
	ProductPrice float64 `json:"productPrice"`
	RequestID    string  `json:"requestId"`
}
