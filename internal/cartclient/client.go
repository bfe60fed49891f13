// Package cartclient talks to the cart endpoints of the storefront API and
// keeps an optimistic local mirror of the caller's cart.
package cartclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"storefront/internal/domain"
)

// API is the subset of cart endpoints the Controller needs.
type API interface {
	Get(ctx context.Context) (*domain.Cart, error)
	Add(ctx context.Context, productID string, qty int) (*domain.Cart, error)
	Update(ctx context.Context, productID string, qty int) (*domain.Cart, error)
	Remove(ctx context.Context, productID string) (*domain.Cart, error)
	Clear(ctx context.Context) error
}

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Message    string
	Errors     []string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	if len(e.Errors) > 0 {
		msg += ": " + strings.Join(e.Errors, "; ")
	}
	return fmt.Sprintf("cart api: %d %s", e.StatusCode, msg)
}

// Is lets callers match 404 and 401 answers against the domain sentinels.
func (e *APIError) Is(target error) bool {
	switch e.StatusCode {
	case http.StatusNotFound:
		return target == domain.ErrNotFound
	case http.StatusUnauthorized:
		return target == domain.ErrUnauthorized
	}
	return false
}

var ErrNotJSON = errors.New("cart api: response is not JSON")

type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient builds a client for baseURL (e.g. "http://localhost:8080/api").
// A nil httpClient gets a 10s timeout default.
func NewClient(baseURL, token string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), token: token, http: httpClient}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Errors  []string        `json:"errors"`
}

type lineRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity,omitempty"`
}

func (c *Client) Get(ctx context.Context) (*domain.Cart, error) {
	return c.cart(ctx, http.MethodGet, "/cart", nil)
}

func (c *Client) Add(ctx context.Context, productID string, qty int) (*domain.Cart, error) {
	return c.cart(ctx, http.MethodPost, "/cart/add", lineRequest{ProductID: productID, Quantity: qty})
}

func (c *Client) Update(ctx context.Context, productID string, qty int) (*domain.Cart, error) {
	return c.cart(ctx, http.MethodPut, "/cart/update", lineRequest{ProductID: productID, Quantity: qty})
}

func (c *Client) Remove(ctx context.Context, productID string) (*domain.Cart, error) {
	return c.cart(ctx, http.MethodDelete, "/cart/remove", lineRequest{ProductID: productID})
}

func (c *Client) Clear(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodDelete, "/cart/clear", nil)
	return err
}

func (c *Client) cart(ctx context.Context, method, path string, body any) (*domain.Cart, error) {
	data, err := c.do(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("cart api: decode cart: %w", err)
	}
	return &cart, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("cart api: encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("cart api: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cart api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if mt, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type")); mt != "application/json" {
		if resp.StatusCode >= 300 {
			return nil, &APIError{StatusCode: resp.StatusCode}
		}
		return nil, ErrNotJSON
	}
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("cart api: decode response: %w", err)
	}
	if resp.StatusCode >= 300 || !env.Success {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: env.Message, Errors: env.Errors}
	}
	return env.Data, nil
}
