package server

import (
	"fmt"
	"net/http"
	"time"

	"product-showcase/internal/catalog"
	"product-showcase/internal/config"
	"product-showcase/internal/database"
	"product-showcase/internal/listing"
	custommiddleware "product-showcase/internal/middleware"
	"product-showcase/internal/repository"
	"product-showcase/internal/service"
	"product-showcase/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Dependencies are the backing resources the server routes to.
// Database and Redis are optional.
type Dependencies struct {
	Products repository.ProductRepository
	Database database.Service
	Redis    *redis.Client
}

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	deps   Dependencies
}

func NewServer(cfg *config.Config, logger *zap.Logger, deps Dependencies) (*Server, error) {
	router, err := NewRouter(cfg, logger, deps)
	if err != nil {
		return nil, err
	}

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		deps:   deps,
	}

	return server, nil
}

// NewRouter mounts the product store under /api and the storefront pages at the root
func NewRouter(cfg *config.Config, logger *zap.Logger, deps Dependencies) (chi.Router, error) {
	router := chi.NewRouter()

	router.Use(custommiddleware.DefaultMiddlewareStack()...)
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.LoggingMiddleware(logger, "/health"))

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		status := map[string]interface{}{"status": "ok", "store": cfg.Store.Driver}
		code := http.StatusOK
		if deps.Database != nil {
			dbHealth := deps.Database.Health(r.Context())
			status["database"] = dbHealth
			if dbHealth["status"] != "up" {
				status["status"] = "degraded"
				code = http.StatusServiceUnavailable
			}
		}
		custommiddleware.RespondWithJSON(w, code, status)
	})

	productHandler := transport.NewProductHandler(deps.Products, cfg.Store.StrictIDs, logger)

	router.Route("/api", func(r chi.Router) {
		r.Use(custommiddleware.CORSMiddleware(cfg.CORS.AllowedOrigins, !cfg.IsProduction()))
		if deps.Redis != nil {
			r.Use(custommiddleware.RateLimitMiddleware(deps.Redis, custommiddleware.RateLimitConfig{
				RequestsPerWindow: cfg.RateLimit.Requests,
				Window:            cfg.RateLimit.Window,
				KeyPrefix:         "ratelimit:api",
			}, logger))
		}
		productHandler.RegisterRoutes(r)
	})

	client := catalog.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.Timeout)
	showcase := service.NewShowcaseService(client, listing.DefaultPageSize, logger)

	pageHandler, err := transport.NewPageHandler(showcase, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build page handler: %w", err)
	}
	pageHandler.RegisterRoutes(router)

	return router, nil
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.deps.Redis != nil {
		if err := s.deps.Redis.Close(); err != nil {
			s.logger.Error("Failed to close redis connection", zap.Error(err))
		}
	}

	// Close database connection
	if s.deps.Database != nil {
		if err := s.deps.Database.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
