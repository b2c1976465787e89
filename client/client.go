// Package client talks to the shop API and maps its responses to table rows.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"gin-shopcart/dto"
)

// APIError is a non-2xx response from the API.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Code, e.Message)
}

// IsStatus reports whether err is an APIError with the given status code.
func IsStatus(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

type Option func(*Client)

func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Token() string         { return c.token }
func (c *Client) SetToken(token string) { c.token = token }

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// do sends the request and decodes the envelope's data into out when out is non-nil.
// It returns the envelope message.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any) (string, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return "", fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := env.Message
		if decodeErr != nil || message == "" {
			message = strings.TrimSpace(string(raw))
		}
		return "", &APIError{Code: resp.StatusCode, Message: message}
	}
	if decodeErr != nil {
		return "", fmt.Errorf("failed to decode response: %w", decodeErr)
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return "", fmt.Errorf("failed to decode response data: %w", err)
		}
	}
	return env.Message, nil
}

func (c *Client) Register(ctx context.Context, input dto.RegisterInput) (*dto.AuthResponse, error) {
	var out dto.AuthResponse
	if _, err := c.do(ctx, http.MethodPost, "/users/register", nil, input, &out); err != nil {
		return nil, err
	}
	c.token = out.Token
	return &out, nil
}

func (c *Client) Login(ctx context.Context, username, password string) (*dto.AuthResponse, error) {
	var out dto.AuthResponse
	input := dto.LoginInput{Username: username, Password: password}
	if _, err := c.do(ctx, http.MethodPost, "/users/login", nil, input, &out); err != nil {
		return nil, err
	}
	c.token = out.Token
	return &out, nil
}

func (c *Client) Reload(ctx context.Context) (*dto.AuthResponse, error) {
	var out dto.AuthResponse
	if _, err := c.do(ctx, http.MethodGet, "/users/reload", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Logout(ctx context.Context) error {
	if _, err := c.do(ctx, http.MethodPost, "/users/logout", nil, nil, nil); err != nil {
		return err
	}
	c.token = ""
	return nil
}

func (c *Client) Home(ctx context.Context) (string, error) {
	return c.do(ctx, http.MethodGet, "/home", nil, nil, nil)
}

func (c *Client) Items(ctx context.Context) ([]dto.ItemSummary, error) {
	var out []dto.ItemSummary
	if _, err := c.do(ctx, http.MethodGet, "/home/items", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ItemsPaged(ctx context.Context, q dto.PagedItemsQuery) (*dto.PagedItemsResponse, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(q.Page))
	if q.Size > 0 {
		query.Set("size", strconv.Itoa(q.Size))
	}
	if q.SortColumn != "" {
		query.Set("sortColumn", q.SortColumn)
	}
	if q.SortDirection != 0 {
		query.Set("sortDirection", strconv.Itoa(q.SortDirection))
	}
	if q.Filter != "" {
		query.Set("filter", q.Filter)
	}

	var out dto.PagedItemsResponse
	if _, err := c.do(ctx, http.MethodGet, "/home/items-paged", query, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AddItem(ctx context.Context, input dto.CreateItemInput) (*dto.ItemResponse, error) {
	var out dto.ItemResponse
	if _, err := c.do(ctx, http.MethodPost, "/home/add-item", nil, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) EditItem(ctx context.Context, input dto.UpdateItemInput) (*dto.ItemResponse, error) {
	var out dto.ItemResponse
	if _, err := c.do(ctx, http.MethodPut, "/home/edit-item", nil, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteItem(ctx context.Context, id string) (string, error) {
	return c.do(ctx, http.MethodDelete, "/home/delete-item", url.Values{"id": {id}}, nil, nil)
}

func (c *Client) ItemDetails(ctx context.Context, itemID string) ([]dto.DetailResponse, error) {
	var out []dto.DetailResponse
	if _, err := c.do(ctx, http.MethodGet, "/home/item-details", url.Values{"id": {itemID}}, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AddDetail(ctx context.Context, input dto.CreateDetailInput) ([]dto.DetailResponse, error) {
	var out []dto.DetailResponse
	if _, err := c.do(ctx, http.MethodPost, "/home/add-item-detail", nil, input, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) EditDetail(ctx context.Context, input dto.UpdateDetailInput) ([]dto.DetailResponse, error) {
	var out []dto.DetailResponse
	if _, err := c.do(ctx, http.MethodPut, "/home/edit-item-detail", nil, input, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) DeleteDetail(ctx context.Context, itemID, detailID string) (*dto.ItemResponse, error) {
	var out dto.ItemResponse
	query := url.Values{"itemId": {itemID}, "detailId": {detailID}}
	if _, err := c.do(ctx, http.MethodDelete, "/home/delete-item-detail", query, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CartItems(ctx context.Context) ([]dto.ItemSummary, error) {
	var out []dto.ItemSummary
	if _, err := c.do(ctx, http.MethodGet, "/home/cart-items", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AddToCart(ctx context.Context, itemID string) ([]dto.ItemSummary, error) {
	var out []dto.ItemSummary
	if _, err := c.do(ctx, http.MethodPost, "/home/add-to-cart", nil, dto.CartInput{ItemID: itemID}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) RemoveFromCart(ctx context.Context, itemID string) ([]dto.ItemSummary, error) {
	var out []dto.ItemSummary
	if _, err := c.do(ctx, http.MethodDelete, "/home/remove-from-cart", url.Values{"itemId": {itemID}}, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CartItemDetails(ctx context.Context, itemID string) ([]dto.DetailResponse, error) {
	var out []dto.DetailResponse
	if _, err := c.do(ctx, http.MethodGet, "/home/cart-item-details", url.Values{"itemId": {itemID}}, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CartSummary(ctx context.Context) (*dto.CartSummaryResponse, error) {
	var out dto.CartSummaryResponse
	if _, err := c.do(ctx, http.MethodGet, "/home/cart-summary", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
