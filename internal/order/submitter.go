package order

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/theabhishek-hub/ecommerce-storefront/internal/api"
)

const placeOrderPath = "/checkout/place-order"

// Submitter places the order after payment has been verified. It posts a
// classic form body and reads the outcome from where the server redirects:
// an orders page means the order exists, a bounce back to checkout carries
// the rejection reason.
//
// The submit call happens after money has moved, so it is never routed
// through the circuit breaker and never retried automatically.
type Submitter struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

// Config holds the order endpoint settings.
type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

func NewSubmitter(cfg Config, logger *slog.Logger) *Submitter {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Submitter{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.Token,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Submit posts the order form and returns the path of the confirmation page.
func (s *Submitter) Submit(ctx context.Context, paymentMethod string, productKeys []string) (string, error) {
	if len(productKeys) == 0 {
		return "", errors.New("refusing to place an order with no products")
	}

	form := url.Values{}
	form.Set("paymentMethod", paymentMethod)
	for _, key := range productKeys {
		form.Add("selectedProductIds", key)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.baseURL+placeOrderPath, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to build order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", api.ErrTransientNetwork, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", api.ErrAuthenticationRequired
	case resp.StatusCode >= 500:
		return "", fmt.Errorf("%w: order endpoint returned %d", api.ErrTransientNetwork, resp.StatusCode)
	}

	final := resp.Request.URL
	switch {
	case strings.Contains(final.Path, "/orders"):
		s.logger.Info("order placed", "landing", final.Path)
		return final.Path, nil
	case strings.Contains(final.Path, "/checkout"):
		return "", &api.ValidationError{Message: rejectionMessage(final)}
	}

	return "", fmt.Errorf("%w: unexpected landing page %s", api.ErrTransientNetwork, final.Path)
}

// rejectionMessage digs the server's reason out of the redirect target.
func rejectionMessage(u *url.URL) string {
	if msg := u.Query().Get("error"); msg != "" {
		return msg
	}
	return "order was not accepted"
}
