// Package catalog is the HTTP client the pages use to read the product store.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"product-showcase/internal/domain"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// RequestIDHeader is forwarded on every catalog request
const RequestIDHeader = "X-Request-Id"

// ClientIPHeader carries the visitor address a fetch is made on behalf of
const ClientIPHeader = "X-Real-Ip"

type clientIPKey struct{}

// WithClientIP tags catalog requests made with ctx with the visitor address ip
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey{}, ip)
}

// Client reads products from the store's external read path
type Client interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int) (*domain.Product, error)
}

type client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a catalog client for baseURL, e.g. http://localhost:8080/api
func NewClient(baseURL string, timeout time.Duration) Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
	}
}

// ListProducts fetches every product
func (c *client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	url := c.baseURL + "/products"

	resp, err := c.get(ctx, url)
	if err != nil {
		return nil, &FetchError{Op: "list", URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{
			Op:         "list",
			URL:        url,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	var products []domain.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, &FetchError{Op: "list", URL: url, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	return products, nil
}

// GetProduct fetches one product. 404 and a null body map to ErrNotFound, 400 to ErrInvalidInput.
func (c *client) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	url := c.baseURL + "/products/" + strconv.Itoa(id)

	resp, err := c.get(ctx, url)
	if err != nil {
		return nil, &FetchError{Op: "get", URL: url, Err: err}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: %d", ErrInvalidInput, id)
	default:
		return nil, &FetchError{
			Op:         "get",
			URL:        url,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	var product *domain.Product
	if err := json.NewDecoder(resp.Body).Decode(&product); err != nil {
		return nil, &FetchError{Op: "get", URL: url, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	if product == nil {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}

	return product, nil
}

func (c *client) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID(ctx))
	if ip, ok := ctx.Value(clientIPKey{}).(string); ok && ip != "" {
		req.Header.Set(ClientIPHeader, ip)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}

	return resp, nil
}

func requestID(ctx context.Context) string {
	if id := middleware.GetReqID(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}
