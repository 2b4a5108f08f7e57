package payment

import (
	"context"

	"github.com/theabhishek-hub/ecommerce-storefront/internal/api"
)

// UIOutcome says how the user's interaction with the payment widget ended.
type UIOutcome string

const (
	// UICompleted means the user paid and the widget handed back a
	// payment reference to verify.
	UICompleted UIOutcome = "completed"
	// UIDismissed means the user closed the widget without paying.
	UIDismissed UIOutcome = "dismissed"
	// UIFailed means the gateway reported the payment attempt failed.
	UIFailed UIOutcome = "failed"
)

// UIResult carries the outcome of presenting the payment widget.
type UIResult struct {
	Outcome       UIOutcome
	Reference     api.PaymentReference
	FailureReason string
}

// UserInterface is the single suspension point of an online payment attempt:
// the orchestrator hands over a prepared gateway order and waits for the
// user to finish with it.
type UserInterface interface {
	Present(ctx context.Context, order api.GatewayOrder, keyID string) (UIResult, error)
}
