package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func TestProperty_RateLimitingBlocksExcessiveRequests(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("excessive requests are blocked with 429", prop.ForAll(
		func(requestsPerWindow int, excessRequests int) bool {
			mr, err := miniredis.Run()
			if err != nil {
				t.Fatalf("Failed to start miniredis: %v", err)
			}
			defer mr.Close()

			redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
			defer redisClient.Close()

			logger, _ := zap.NewDevelopment()

			config := RateLimitConfig{
				RequestsPerWindow: requestsPerWindow,
				Window:            1 * time.Second,
				KeyPrefix:         "test_rate_limit",
			}

			handler := RateLimitMiddleware(redisClient, config, logger)(http.HandlerFunc(
				func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(http.StatusOK)
				},
			))

			// Requests within the window limit must pass
			for i := 0; i < requestsPerWindow; i++ {
				w := httptest.NewRecorder()
				req := httptest.NewRequest("GET", "/products", nil)
				req.RemoteAddr = "10.0.0.1:1234"
				handler.ServeHTTP(w, req)
				if w.Code != http.StatusOK {
					t.Logf("FAIL: request %d within limit got %d", i, w.Code)
					return false
				}
			}

			// Everything beyond the limit must be rejected
			for i := 0; i < excessRequests; i++ {
				w := httptest.NewRecorder()
				req := httptest.NewRequest("GET", "/products", nil)
				req.RemoteAddr = "10.0.0.1:1234"
				handler.ServeHTTP(w, req)
				if w.Code != http.StatusTooManyRequests {
					t.Logf("FAIL: excess request %d got %d", i, w.Code)
					return false
				}
			}

			// A different client is unaffected
			w := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/products", nil)
			req.RemoteAddr = "10.0.0.2:1234"
			handler.ServeHTTP(w, req)
			return w.Code == http.StatusOK
		},
		gen.IntRange(1, 20),
		gen.IntRange(1, 10),
	))

	properties.TestingRun(t)
}
