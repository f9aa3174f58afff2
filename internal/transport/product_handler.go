package transport

import (
	"errors"
	"net/http"
	"strconv"

	"product-showcase/internal/middleware"
	"product-showcase/internal/repository"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// MessageResponse is the body of the store's 400 and 404 replies
type MessageResponse struct {
	Message string `json:"message"`
}

const (
	msgInvalidProductID = "Invalid product ID"
	msgProductNotFound  = "Product not found"
)

// ProductHandler serves the read-only product store API
type ProductHandler struct {
	repo      repository.ProductRepository
	strictIDs bool
	logger    *zap.Logger
}

// NewProductHandler creates a new ProductHandler. With strictIDs a
// non-integer id is answered with 400, otherwise with 404.
func NewProductHandler(repo repository.ProductRepository, strictIDs bool, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		repo:      repo,
		strictIDs: strictIDs,
		logger:    logger,
	}
}

// RegisterRoutes registers the product routes on an /api sub-router
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
	})
}

// List handles GET /api/products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list products", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// Get handles GET /api/products/{id}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	rawID := chi.URLParam(r, "id")

	id, err := strconv.Atoi(rawID)
	if err != nil {
		h.logger.Debug("Non-numeric product id", zap.String("id", rawID))
		if h.strictIDs {
			middleware.RespondWithJSON(w, http.StatusBadRequest, MessageResponse{Message: msgInvalidProductID})
		} else {
			middleware.RespondWithJSON(w, http.StatusNotFound, MessageResponse{Message: msgProductNotFound})
		}
		return
	}

	product, err := h.repo.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithJSON(w, http.StatusNotFound, MessageResponse{Message: msgProductNotFound})
			return
		}

		h.logger.Error("Failed to get product", zap.Int("id", id), zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}
