package payment

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/theabhishek-hub/ecommerce-storefront/internal/checkout"
	"github.com/theabhishek-hub/ecommerce-storefront/internal/domain"
	"github.com/theabhishek-hub/ecommerce-storefront/internal/notify"
)

// PayOnline runs the gateway flow: prepare a gateway order, hand it to the
// user, verify the returned signature, then place the order. No order exists
// before the signature verifies.
func (o *Orchestrator) PayOnline(ctx context.Context, view checkout.View) (Result, error) {
	if !o.acquire() {
		return Result{}, ErrAttemptInProgress
	}
	defer o.release()

	gatewayCfg := o.ProbeGateway(ctx)
	if !gatewayCfg.Enabled {
		o.notifier.Notify(notify.LevelError, "Online payment is not available. Please select COD.")
		return Result{}, ErrGatewayUnavailable
	}

	intent := &domain.PaymentIntent{
		AttemptID: uuid.New().String(),
		Amount:    amountMinor(view),
		Currency:  o.currency,
		Status:    domain.PaymentStatusIdle,
	}
	logger := o.logger.With("attempt_id", intent.AttemptID)

	if !intent.Transition(domain.PaymentStatusPreparing) {
		return Result{}, IllegalTransitionError
	}
	order, err := o.gateway.PrepareGatewayOrder(ctx, intent.Amount, intent.Currency)
	if err != nil {
		intent.Transition(domain.PaymentStatusFailed)
		logger.Error("failed to prepare gateway order", "error", err)
		o.notifier.Notify(notify.LevelError, "Failed to prepare payment")
		return o.result(intent, ""), err
	}
	intent.GatewayOrderID = order.GatewayOrderID

	if !intent.Transition(domain.PaymentStatusAwaitingUser) {
		return Result{}, IllegalTransitionError
	}
	uiResult, err := o.ui.Present(ctx, order, gatewayCfg.KeyID)
	if err != nil {
		intent.Transition(domain.PaymentStatusFailed)
		logger.Error("payment widget error", "error", err)
		o.notifier.Notify(notify.LevelError, "Failed to process payment. Please try again.")
		return o.result(intent, ""), err
	}

	switch uiResult.Outcome {
	case UIDismissed:
		// The user walked away. Nothing was charged and the cart is intact.
		intent.Transition(domain.PaymentStatusCancelled)
		logger.Info("payment cancelled by user")
		o.notifier.Notify(notify.LevelInfo,
			"Payment cancelled. Your cart items are preserved. Please try again whenever you are ready.")
		return o.result(intent, ""), nil
	case UIFailed:
		intent.Transition(domain.PaymentStatusFailed)
		logger.Warn("gateway reported payment failure", "reason", uiResult.FailureReason)
		o.notifier.Notify(notify.LevelError, "Payment failed. Please try again.")
		return o.result(intent, ""), fmt.Errorf("payment failed: %s", uiResult.FailureReason)
	}

	if !intent.Transition(domain.PaymentStatusVerifying) {
		return Result{}, IllegalTransitionError
	}
	if err := o.gateway.VerifyPaymentSignature(ctx, uiResult.Reference); err != nil {
		// A payment whose signature does not verify must never turn into an
		// order.
		intent.Transition(domain.PaymentStatusFailed)
		logger.Error("payment signature verification failed", "error", err)
		o.notifier.Notify(notify.LevelError, "Payment verification failed")
		return o.result(intent, ""), err
	}

	return o.commit(ctx, intent, MethodOnline, view, logger)
}

func (o *Orchestrator) result(intent *domain.PaymentIntent, redirect string) Result {
	return Result{
		AttemptID:    intent.AttemptID,
		Status:       intent.Status,
		RedirectPath: redirect,
	}
}
