package middleware

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// MessageResponse is the envelope for plain message bodies, matching the
// shape consumers of the admin API expect ({"message": "Bad Request"}).
type MessageResponse struct {
	Message string `json:"message"`
}

// ValidationErrorResponse carries field-level validation failures.
type ValidationErrorResponse struct {
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors"`
}

// RespondWithJSON sends a JSON response
func RespondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

// RespondWithError sends a message-envelope error response
func RespondWithError(w http.ResponseWriter, statusCode int, message string) {
	RespondWithJSON(w, statusCode, MessageResponse{Message: message})
}

// RespondWithValidationErrors sends validation error response
func RespondWithValidationErrors(w http.ResponseWriter, errors []ValidationError) {
	RespondWithJSON(w, http.StatusBadRequest, ValidationErrorResponse{
		Message: "validation failed",
		Errors:  errors,
	})
}

// ErrorHandlingMiddleware catches panics and converts them to 500 errors.
// Storage failures that reach this point surface here rather than as 404s.
func ErrorHandlingMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("Panic recovered",
						zap.Any("error", err),
						zap.String("path", r.URL.Path),
						zap.String("method", r.Method),
					)

					RespondWithError(w, http.StatusInternalServerError, "internal server error")
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
