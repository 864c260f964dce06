// internal/printify/client.go
package printify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Tagged errors so callers map statuses without sniffing message text.
var (
	ErrInvalidAPIKey = errors.New("printify: invalid api key")
	ErrUpstream      = errors.New("printify: upstream failure")
)

type Shop struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

type Variant struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	SKU       string `json:"sku"`
	Price     int64  `json:"price"` // cents
	IsEnabled bool   `json:"is_enabled"`
}

type Product struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Variants    []Variant `json:"variants"`
}

// Client lists shops and shop products for a merchant's API key.
type Client interface {
	ListShops(ctx context.Context, apiKey string) ([]Shop, error)
	ListShopProducts(ctx context.Context, apiKey, shopID string) ([]Product, error)
}

type httpClient struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a Client over the Printify REST API.
func NewClient(baseURL string) Client {
	return &httpClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *httpClient) ListShops(ctx context.Context, apiKey string) ([]Shop, error) {
	var shops []Shop
	if err := c.get(ctx, apiKey, "/shops.json", &shops); err != nil {
		return nil, err
	}
	return shops, nil
}

func (c *httpClient) ListShopProducts(ctx context.Context, apiKey, shopID string) ([]Product, error) {
	var page struct {
		Data []Product `json:"data"`
	}
	path := fmt.Sprintf("/shops/%s/products.json", url.PathEscape(shopID))
	if err := c.get(ctx, apiKey, path, &page); err != nil {
		return nil, err
	}
	return page.Data, nil
}

func (c *httpClient) get(ctx context.Context, apiKey, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ErrInvalidAPIKey
	case resp.StatusCode >= 400:
		return fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode: %v", ErrUpstream, err)
	}
	return nil
}
