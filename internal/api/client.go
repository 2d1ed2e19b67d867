// Package api is the HTTP client for the remote storefront REST API.
// Every request attaches the current bearer token when one exists; a 401
// response fires the unauthorized hook centrally, regardless of which call
// triggered it.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/storefront/client/internal/domain/catalog"
	"github.com/storefront/client/internal/domain/identity"
	"github.com/storefront/client/internal/domain/order"
)

// maxResponseSize is the maximum allowed response size from the API (10MB)
const maxResponseSize = 10 * 1024 * 1024

// TokenSource supplies the current bearer token, or empty when anonymous
type TokenSource func() string

// Client talks to the storefront REST API
type Client struct {
	baseURL        string
	httpClient     *http.Client
	logger         *zap.Logger
	tokenSource    TokenSource
	onUnauthorized func()
}

// Option is a functional option for configuring the client
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger sets the logger for the client
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTokenSource sets the bearer token supplier
func WithTokenSource(source TokenSource) Option {
	return func(c *Client) {
		c.tokenSource = source
	}
}

// WithUnauthorizedHook sets the hook invoked on every 401 response
func WithUnauthorizedHook(hook func()) Option {
	return func(c *Client) {
		c.onUnauthorized = hook
	}
}

// NewClient creates a client for the API at baseURL
func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do performs one API request. A nil out discards the response body.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: failed to encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("api: failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.tokenSource != nil {
		if token := c.tokenSource(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("api: failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		apiErr := &Error{StatusCode: resp.StatusCode}
		var envelope apiError
		if err := json.Unmarshal(data, &envelope); err == nil {
			apiErr.Message = envelope.Error
		}

		if resp.StatusCode == http.StatusUnauthorized {
			c.logger.Warn("session rejected by API",
				zap.String("method", method),
				zap.String("path", path),
			)
			if c.onUnauthorized != nil {
				c.onUnauthorized()
			}
			// Keep the sentinel for errors.Is checks and the typed error for
			// the server's message
			return fmt.Errorf("%w: %w", ErrUnauthorized, apiErr)
		}

		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: failed to parse body: %v", ErrInvalidResponse, err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Auth Operations
// ---------------------------------------------------------------------------

// Login authenticates with email and password
func (c *Client) Login(ctx context.Context, creds Credentials) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/users/login", nil, creds, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates an account and returns its session
func (c *Client) Register(ctx context.Context, reg Registration) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/users/register", nil, reg, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Profile fetches the authenticated user's profile
func (c *Client) Profile(ctx context.Context) (*identity.User, error) {
	var user identity.User
	if err := c.do(ctx, http.MethodGet, "/users/profile", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile updates the authenticated user's profile
func (c *Client) UpdateProfile(ctx context.Context, user identity.User) (*identity.User, error) {
	var updated identity.User
	if err := c.do(ctx, http.MethodPut, "/users/profile", nil, user, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// MyOrders fetches the authenticated user's orders
func (c *Client) MyOrders(ctx context.Context) ([]order.Order, error) {
	var orders []order.Order
	if err := c.do(ctx, http.MethodGet, "/users/orders", nil, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// AllUsers fetches the user directory (admin)
func (c *Client) AllUsers(ctx context.Context) ([]identity.User, error) {
	var users []identity.User
	if err := c.do(ctx, http.MethodGet, "/users/all", nil, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUserRole changes one user's role (admin)
func (c *Client) UpdateUserRole(ctx context.Context, userID string, role identity.Role) (*identity.User, error) {
	var user identity.User
	if err := c.do(ctx, http.MethodPut, "/users/"+userID+"/role", nil, RoleUpdate{Role: role}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ToggleUserStatus flips one user's active flag (admin)
func (c *Client) ToggleUserStatus(ctx context.Context, userID string) (*identity.User, error) {
	var user identity.User
	if err := c.do(ctx, http.MethodPatch, "/users/"+userID+"/toggle-status", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ---------------------------------------------------------------------------
// Product Operations
// ---------------------------------------------------------------------------

// Products fetches one catalog page matching the filters
func (c *Client) Products(ctx context.Context, filters catalog.Filters) (*ProductsPage, error) {
	var page ProductsPage
	if err := c.do(ctx, http.MethodGet, "/products", filters.Values(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// AllProducts fetches every product including inactive ones (admin)
func (c *Client) AllProducts(ctx context.Context) (*ProductsPage, error) {
	var page ProductsPage
	if err := c.do(ctx, http.MethodGet, "/products/all", nil, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Categories fetches the category list
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := c.do(ctx, http.MethodGet, "/products/categories", nil, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// Product fetches a single product by its catalog identifier
func (c *Client) Product(ctx context.Context, id string) (*catalog.Product, error) {
	var product catalog.Product
	if err := c.do(ctx, http.MethodGet, "/products/"+id, nil, nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateProduct adds a catalog item (admin)
func (c *Client) CreateProduct(ctx context.Context, product catalog.Product) (*catalog.Product, error) {
	var created catalog.Product
	if err := c.do(ctx, http.MethodPost, "/products", nil, product, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateProduct replaces a catalog item (admin)
func (c *Client) UpdateProduct(ctx context.Context, id string, product catalog.Product) (*catalog.Product, error) {
	var updated catalog.Product
	if err := c.do(ctx, http.MethodPut, "/products/"+id, nil, product, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteProduct removes a catalog item (admin)
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/products/"+id, nil, nil, nil)
}

// ToggleProductStatus flips a product's active flag (admin)
func (c *Client) ToggleProductStatus(ctx context.Context, id string) (*catalog.Product, error) {
	var resp struct {
		Product catalog.Product `json:"product"`
	}
	if err := c.do(ctx, http.MethodPatch, "/products/"+id+"/toggle-status", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Product, nil
}

// ---------------------------------------------------------------------------
// Order Operations
// ---------------------------------------------------------------------------

// CreateOrder places an order for the authenticated user
func (c *Client) CreateOrder(ctx context.Context, req order.CreateRequest) (*order.Order, error) {
	var created order.Order
	if err := c.do(ctx, http.MethodPost, "/orders", nil, req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// CreateGuestOrder places an order without a session; req must carry GuestInfo
func (c *Client) CreateGuestOrder(ctx context.Context, req order.CreateRequest) (*order.Order, error) {
	var created order.Order
	if err := c.do(ctx, http.MethodPost, "/orders/guest", nil, req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// TrackOrder looks up an order by its public tracking identifier
func (c *Client) TrackOrder(ctx context.Context, trackingID string) (*order.Order, error) {
	var tracked order.Order
	if err := c.do(ctx, http.MethodGet, "/orders/track/"+url.PathEscape(trackingID), nil, nil, &tracked); err != nil {
		return nil, err
	}
	return &tracked, nil
}

// Order fetches a single order by id
func (c *Client) Order(ctx context.Context, id string) (*order.Order, error) {
	var found order.Order
	if err := c.do(ctx, http.MethodGet, "/orders/"+id, nil, nil, &found); err != nil {
		return nil, err
	}
	return &found, nil
}

// Orders fetches the full order list (admin, paginated)
func (c *Client) Orders(ctx context.Context, query url.Values) (*OrdersPage, error) {
	var page OrdersPage
	if err := c.do(ctx, http.MethodGet, "/orders", query, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// UpdateOrderStatus transitions an order's status (admin/coordinator)
func (c *Client) UpdateOrderStatus(ctx context.Context, id string, status order.Status) (*order.Order, error) {
	var updated order.Order
	if err := c.do(ctx, http.MethodPut, "/orders/"+id+"/status", nil, StatusUpdate{Status: status}, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// UpdatePaymentStatus updates an order's payment status (admin)
func (c *Client) UpdatePaymentStatus(ctx context.Context, id, status string) (*order.Order, error) {
	var updated order.Order
	if err := c.do(ctx, http.MethodPut, "/orders/"+id+"/payment", nil, PaymentUpdate{Status: status}, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// CancelOrder cancels an order
func (c *Client) CancelOrder(ctx context.Context, id string) (*order.Order, error) {
	var cancelled order.Order
	if err := c.do(ctx, http.MethodPut, "/orders/"+id+"/cancel", nil, nil, &cancelled); err != nil {
		return nil, err
	}
	return &cancelled, nil
}
