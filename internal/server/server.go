package server

import (
	"fmt"
	"net/http"
	"time"

	"catalog-api/internal/config"
	"catalog-api/internal/dispatch"
	custommiddleware "catalog-api/internal/middleware"
	"catalog-api/internal/repository"
	"catalog-api/internal/store"
	"catalog-api/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config     *config.Config
	logger     *zap.Logger
	redis      *redis.Client
	dispatcher *dispatch.AMQPDispatcher
}

// NewServer assembles the router and wires the store, repository, dispatcher
// and handlers. The dispatcher may be nil when the broker is unavailable;
// the catalog then serves without event emission.
func NewServer(cfg *config.Config, logger *zap.Logger, redisClient *redis.Client, dispatcher *dispatch.AMQPDispatcher) *Server {
	router := chi.NewRouter()

	// Basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.CORSMiddleware(cfg.Server.AllowedOrigins, cfg.Server.Env == "development"))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.MetricsMiddleware)
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
		RequestsPerWindow: cfg.RateLimit.RequestsPerWindow,
		Window:            time.Duration(cfg.RateLimit.WindowSeconds) * time.Second,
		KeyPrefix:         "rate_limit",
	}, logger))

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	// Initialize store and repository
	productStore := store.NewRedisStore(redisClient, cfg.Store.Table)
	productRepo := repository.NewProductRepository(productStore)

	// Initialize handlers
	var eventSink dispatch.Dispatcher
	if dispatcher != nil {
		eventSink = dispatcher
	}
	productHandler := transport.NewProductHandler(productRepo, eventSink, transport.EventEmails{
		Create: cfg.Events.CreateEmail,
		Update: cfg.Events.UpdateEmail,
		Delete: cfg.Events.DeleteEmail,
	}, logger)

	// Register routes; anything outside the routing table answers 400
	productHandler.RegisterRoutes(router)
	router.NotFound(transport.BadRequest)
	router.MethodNotAllowed(transport.BadRequest)

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config:     cfg,
		logger:     logger,
		redis:      redisClient,
		dispatcher: dispatcher,
	}

	return server
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.dispatcher != nil {
		s.dispatcher.Close()
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
