package transport

import (
	"context"
	"errors"
	"net/http"

	"catalog-api/internal/dispatch"
	"catalog-api/internal/domain"
	"catalog-api/internal/middleware"
	"catalog-api/internal/repository"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

const productNotFoundMessage = "Product not found"

// EventEmails holds the acting-principal attribution per mutation type.
// Configuration-sourced; this service derives no identity from requests.
type EventEmails struct {
	Create string
	Update string
	Delete string
}

// ProductHandler handles HTTP requests for product operations. Mutations
// dispatch exactly one product event on success; fetches dispatch nothing.
type ProductHandler struct {
	repo       repository.ProductRepository
	dispatcher dispatch.Dispatcher
	emails     EventEmails
	logger     *zap.Logger
}

// NewProductHandler creates a new ProductHandler. The dispatcher may be nil,
// in which case mutations succeed without emitting events.
func NewProductHandler(repo repository.ProductRepository, dispatcher dispatch.Dispatcher, emails EventEmails, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		repo:       repo,
		dispatcher: dispatcher,
		emails:     emails,
		logger:     logger,
	}
}

// RegisterRoutes registers all product routes
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetByID)
			r.Put("/", h.Update)
			r.Delete("/", h.Delete)
		})
	})
}

// BadRequest answers any path/method pair outside the routing table.
func BadRequest(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithError(w, http.StatusBadRequest, "Bad Request")
}

// logCorrelation logs the caller-supplied and handler-assigned request ids
// before any work, and returns the handler-assigned id for event tracing.
func (h *ProductHandler) logCorrelation(r *http.Request, operation string) string {
	apiRequestID := r.Header.Get("X-Request-Id")
	requestID := chimiddleware.GetReqID(r.Context())

	h.logger.Info("Handling product request",
		zap.String("operation", operation),
		zap.String("api_request_id", apiRequestID),
		zap.String("request_id", requestID),
	)

	return requestID
}

func (h *ProductHandler) dispatchEvent(ctx context.Context, eventType string, product *domain.Product, email, requestID string) {
	if h.dispatcher == nil {
		return
	}

	event := dispatch.NewProductEvent(eventType, product, email, requestID)
	if err := h.dispatcher.Dispatch(ctx, event); err != nil {
		// Delivery is at-most-once; the mutation already succeeded and the
		// response must not change.
		h.logger.Error("Failed to dispatch product event",
			zap.String("event_type", eventType),
			zap.String("product_id", event.ProductID),
			zap.Error(err),
		)
	}
}

// Create handles POST /products
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	success := false
	defer func() { middleware.RecordProductOperation("create", success) }()

	requestID := h.logCorrelation(r, "create")

	var req domain.ProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Create validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.repo.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("Create failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create product")
		return
	}

	h.dispatchEvent(r.Context(), domain.EventProductCreated, product, h.emails.Create, requestID)

	h.logger.Info("Product created", zap.String("product_id", product.ID.String()))
	success = true
	middleware.RespondWithJSON(w, http.StatusCreated, product)
}

// Update handles PUT /products/{id}
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	success := false
	defer func() { middleware.RecordProductOperation("update", success) }()

	requestID := h.logCorrelation(r, "update")
	id := chi.URLParam(r, "id")

	var req domain.ProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Update validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.repo.Update(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithJSON(w, http.StatusNotFound, productNotFoundMessage)
			return
		}

		h.logger.Error("Update failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update product")
		return
	}

	h.dispatchEvent(r.Context(), domain.EventProductUpdated, product, h.emails.Update, requestID)

	h.logger.Info("Product updated", zap.String("product_id", product.ID.String()))
	success = true
	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// Delete handles DELETE /products/{id}
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	success := false
	defer func() { middleware.RecordProductOperation("delete", success) }()

	requestID := h.logCorrelation(r, "delete")
	id := chi.URLParam(r, "id")

	product, err := h.repo.Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithJSON(w, http.StatusNotFound, productNotFoundMessage)
			return
		}

		h.logger.Error("Delete failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete product")
		return
	}

	h.dispatchEvent(r.Context(), domain.EventProductDeleted, product, h.emails.Delete, requestID)

	h.logger.Info("Product deleted", zap.String("product_id", product.ID.String()))
	success = true
	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// List handles GET /products, with an optional ?code= filter
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	h.logCorrelation(r, "list")

	var (
		products []*domain.Product
		err      error
	)

	if code := r.URL.Query().Get("code"); code != "" {
		products, err = h.repo.FetchByCode(r.Context(), code)
	} else {
		products, err = h.repo.FetchAll(r.Context())
	}

	if err != nil {
		h.logger.Error("List failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to fetch products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// GetByID handles GET /products/{id}
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	h.logCorrelation(r, "get")
	id := chi.URLParam(r, "id")

	product, err := h.repo.FetchByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithJSON(w, http.StatusNotFound, productNotFoundMessage)
			return
		}

		h.logger.Error("Fetch failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to fetch product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}
