package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/qyinm/catalogtui/config"
	"github.com/qyinm/catalogtui/types"
)

const (
	productsPath   = "/products"
	categoriesPath = "/products/categories"
)

// StatusError reports a non-2xx response from the data provider.
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status code %d from %s", e.StatusCode, e.URL)
	}
	return fmt.Sprintf("unexpected status code %d from %s: %s", e.StatusCode, e.URL, e.Body)
}

// Client implements types.ProductSource using an HTTP client and in-memory cache.
type Client struct {
	baseURL      string
	userAgent    string
	productLimit int
	client       *http.Client
	logger       *zap.Logger
	cache        map[string]cachedResult
	mu           sync.Mutex
}

type cachedResult struct {
	value     any
	timestamp time.Time
}

// Compile-time interface check
var _ types.ProductSource = (*Client)(nil)

// New creates a new Client with configured HTTP client and empty cache.
func New(cfg config.ProviderConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:    cfg.UserAgent,
		productLimit: cfg.ProductLimit,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
		cache:  make(map[string]cachedResult),
	}
}

// ProductsURL returns the endpoint the full product collection is read from.
func (c *Client) ProductsURL() string {
	return c.baseURL + productsPath + "?limit=" + strconv.Itoa(c.productLimit)
}

// CategoriesURL returns the endpoint the category collection is read from.
func (c *Client) CategoriesURL() string {
	return c.baseURL + categoriesPath
}

// GetProducts fetches and decodes the full product collection.
func (c *Client) GetProducts(ctx context.Context) ([]types.Product, error) {
	url := c.ProductsURL()
	if products, ok := cachedAs[[]types.Product](c, url); ok {
		return products, nil
	}

	body, err := c.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}
	defer body.Close()

	products, err := ParseProducts(body)
	if err != nil {
		return nil, fmt.Errorf("parse products: %w", err)
	}

	c.store(url, products)
	c.logger.Debug("products fetched", zap.String("url", url), zap.Int("count", len(products)))
	return products, nil
}

// GetCategories fetches and decodes the category collection.
func (c *Client) GetCategories(ctx context.Context) ([]types.Category, error) {
	url := c.CategoriesURL()
	if categories, ok := cachedAs[[]types.Category](c, url); ok {
		return categories, nil
	}

	body, err := c.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch categories: %w", err)
	}
	defer body.Close()

	categories, err := ParseCategories(body)
	if err != nil {
		return nil, fmt.Errorf("parse categories: %w", err)
	}

	c.store(url, categories)
	c.logger.Debug("categories fetched", zap.String("url", url), zap.Int("count", len(categories)))
	return categories, nil
}

// ClearCache clears the in-memory cache.
func (c *Client) ClearCache() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = make(map[string]cachedResult)
	c.logger.Debug("provider cache cleared")
}

func (c *Client) get(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		// Read a bounded slice of the body for error context
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Warn("provider returned error status",
			zap.String("url", url),
			zap.Int("status", resp.StatusCode))
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}
	return resp.Body, nil
}

func cachedAs[T any](c *Client, url string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var zero T
	cached, ok := c.cache[url]
	if !ok {
		return zero, false
	}
	v, ok := cached.value.(T)
	if !ok {
		return zero, false
	}
	c.logger.Debug("provider cache hit", zap.String("url", url), zap.Time("stored", cached.timestamp))
	return v, true
}

func (c *Client) store(url string, value any) {
	c.mu.Lock()
	c.cache[url] = cachedResult{value: value, timestamp: time.Now()}
	c.mu.Unlock()
}
