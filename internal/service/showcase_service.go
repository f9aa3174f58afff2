package service

import (
	"context"
	"errors"

	"product-showcase/internal/catalog"
	"product-showcase/internal/domain"
	"product-showcase/internal/listing"

	"go.uber.org/zap"
)

// HomePage is the composed view of the home page
type HomePage struct {
	State       listing.QueryState
	View        listing.View
	FetchFailed bool
}

// DetailPage is the composed view of a product detail page
type DetailPage struct {
	Product  *domain.Product
	NotFound bool
}

// ShowcaseService composes pages from one catalog fetch each. Fetch
// failures degrade to an empty list or a not-found panel.
type ShowcaseService interface {
	Home(ctx context.Context, state listing.QueryState) HomePage
	Detail(ctx context.Context, id int) DetailPage
}

type showcaseService struct {
	client   catalog.Client
	pageSize int
	logger   *zap.Logger
}

// NewShowcaseService creates a new instance of ShowcaseService
func NewShowcaseService(client catalog.Client, pageSize int, logger *zap.Logger) ShowcaseService {
	return &showcaseService{
		client:   client,
		pageSize: pageSize,
		logger:   logger,
	}
}

// Home fetches the product list and computes both partitions
func (s *showcaseService) Home(ctx context.Context, state listing.QueryState) HomePage {
	products, err := s.client.ListProducts(ctx)
	failed := err != nil
	if failed {
		s.logger.Error("Failed to fetch products, rendering empty list", zap.Error(err))
		products = []domain.Product{}
	}

	return HomePage{
		State:       state,
		View:        listing.ComputeStateView(products, state, s.pageSize),
		FetchFailed: failed,
	}
}

// Detail fetches a single product
func (s *showcaseService) Detail(ctx context.Context, id int) DetailPage {
	product, err := s.client.GetProduct(ctx, id)
	if err == nil {
		return DetailPage{Product: product}
	}

	switch {
	case errors.Is(err, catalog.ErrNotFound):
		s.logger.Debug("Product not found", zap.Int("id", id))
	case errors.Is(err, catalog.ErrInvalidInput):
		s.logger.Debug("Catalog rejected product id", zap.Int("id", id))
	default:
		s.logger.Error("Failed to fetch product", zap.Int("id", id), zap.Error(err))
	}

	return DetailPage{NotFound: true}
}
