package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/theabhishek-hub/ecommerce-storefront/internal/domain"
)

const (
	cartPath           = "/api/v1/cart"
	cartProductPath    = "/api/v1/cart/products/%d"
	gatewayEnabledPath = "/api/v1/payments/razorpay/enabled"
	gatewayPreparePath = "/api/v1/payments/razorpay/create-order-only"
	gatewayVerifyPath  = "/api/v1/payments/razorpay/verify-signature"
)

// Config holds what the client needs from the hosting environment.
type Config struct {
	BaseURL string
	// Token is the bearer token attached to every request when non-empty.
	Token   string
	Timeout time.Duration
}

// Client is the typed surface over the storefront server API. Every call
// resolves to either a decoded payload or one of the error kinds in errors.go;
// no raw transport error escapes.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[[]byte]
	logger     *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:    "storefront-api",
		Timeout: 15 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// Only transport-level failures count toward tripping; a 4xx is a
		// healthy server saying no.
		IsSuccessful: func(err error) bool {
			return err == nil || !errors.Is(err, ErrTransientNetwork)
		},
	})

	return &Client{
		baseURL:    cfg.BaseURL,
		token:      cfg.Token,
		httpClient: &http.Client{Timeout: timeout},
		breaker:    breaker,
		logger:     logger,
	}
}

// GetCart fetches the authenticated cart and converts it to the uniform
// line-item view.
func (c *Client) GetCart(ctx context.Context) (domain.CartSnapshot, error) {
	body, err := c.do(ctx, http.MethodGet, cartPath, nil)
	if err != nil {
		return domain.CartSnapshot{}, err
	}

	var cart cartDTO
	if err := json.Unmarshal(NormalizeEnvelope(body), &cart); err != nil {
		return domain.CartSnapshot{}, fmt.Errorf("decode cart response: %w", err)
	}
	return cart.toSnapshot(), nil
}

// AddItem adds quantity of a product to the server cart. The server owns the
// accumulate-versus-append decision for authenticated carts.
func (c *Client) AddItem(ctx context.Context, productID int64, quantity int32) error {
	_, err := c.do(ctx, http.MethodPost, cartPath, addItemRequestDTO{
		ProductID: productID,
		Quantity:  quantity,
	})
	return err
}

// UpdateQuantity sets the quantity of one cart line.
func (c *Client) UpdateQuantity(ctx context.Context, productID int64, quantity int32) error {
	_, err := c.do(ctx, http.MethodPut, fmt.Sprintf(cartProductPath, productID), updateQuantityRequestDTO{
		Quantity: quantity,
	})
	return err
}

// RemoveItem deletes one cart line.
func (c *Client) RemoveItem(ctx context.Context, productID int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf(cartProductPath, productID), nil)
	return err
}

// ClearCart empties the server cart.
func (c *Client) ClearCart(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodDelete, cartPath, nil)
	return err
}

// GatewayEnabled probes whether online payment is available. Callers treat a
// failed probe as "gateway disabled", not as an error surface.
func (c *Client) GatewayEnabled(ctx context.Context) (GatewayConfig, error) {
	body, err := c.do(ctx, http.MethodGet, gatewayEnabledPath, nil)
	if err != nil {
		return GatewayConfig{}, err
	}

	var cfg GatewayConfig
	if err := json.Unmarshal(NormalizeEnvelope(body), &cfg); err != nil {
		return GatewayConfig{}, fmt.Errorf("decode gateway config: %w", err)
	}
	return cfg, nil
}

// PrepareGatewayOrder creates a gateway order sized to amount without creating
// any server-side order record.
func (c *Client) PrepareGatewayOrder(ctx context.Context, amount int64, currency string) (GatewayOrder, error) {
	body, err := c.do(ctx, http.MethodPost, gatewayPreparePath, prepareOrderRequestDTO{
		Amount:   amount,
		Currency: currency,
	})
	if err != nil {
		return GatewayOrder{}, err
	}

	var order GatewayOrder
	if err := json.Unmarshal(NormalizeEnvelope(body), &order); err != nil {
		return GatewayOrder{}, fmt.Errorf("decode gateway order: %w", err)
	}
	if order.GatewayOrderID == "" {
		return GatewayOrder{}, fmt.Errorf("gateway order response missing order id: %w", ErrTransientNetwork)
	}
	return order, nil
}

// VerifyPaymentSignature submits the signed payment reference for server-side
// verification. A non-2xx answer is a verification rejection, which must never
// be followed by an order submission.
func (c *Client) VerifyPaymentSignature(ctx context.Context, ref PaymentReference) error {
	_, err := c.do(ctx, http.MethodPost, gatewayVerifyPath, ref)
	if err != nil {
		if errors.Is(err, ErrAuthenticationRequired) {
			return err
		}
		var validation *ValidationError
		if errors.As(err, &validation) {
			return fmt.Errorf("%s: %w", validation.Message, ErrVerificationRejected)
		}
		if errors.Is(err, ErrTransientNetwork) {
			return err
		}
		return fmt.Errorf("%v: %w", err, ErrVerificationRejected)
	}
	return nil
}

// do runs one request through the circuit breaker and maps every outcome to
// the error taxonomy. The returned body is the raw (possibly enveloped)
// payload of a 2xx response.
func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	body, err := c.breaker.Execute(func() ([]byte, error) {
		return c.roundTrip(ctx, method, path, payload)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%v: %w", err, ErrTransientNetwork)
		}
		return nil, err
	}
	return body, nil
}

func (c *Client) roundTrip(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("request failed", "method", method, "path", path, "error", err)
		return nil, fmt.Errorf("%v: %w", err, ErrTransientNetwork)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrTransientNetwork)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return respBody, nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, ErrAuthenticationRequired
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return nil, &ValidationError{Message: extractErrorMessage(respBody, resp.StatusCode)}
	default:
		c.logger.Warn("server error", "method", method, "path", path, "status", resp.StatusCode)
		return nil, fmt.Errorf("server returned status %d: %w", resp.StatusCode, ErrTransientNetwork)
	}
}

// extractErrorMessage pulls a human-readable message out of an error body,
// falling back to the status code.
func extractErrorMessage(body []byte, status int) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return fmt.Sprintf("request rejected with status %d", status)
}
