package payment

import (
	"context"

	"github.com/google/uuid"

	"github.com/theabhishek-hub/ecommerce-storefront/internal/checkout"
	"github.com/theabhishek-hub/ecommerce-storefront/internal/domain"
	"github.com/theabhishek-hub/ecommerce-storefront/internal/notify"
)

// PayCashOnDelivery skips the gateway entirely: no money moves up front, so
// the attempt goes straight from idle to placing the order. A failure here is
// safe to retry.
func (o *Orchestrator) PayCashOnDelivery(ctx context.Context, view checkout.View) (Result, error) {
	if !o.acquire() {
		return Result{}, ErrAttemptInProgress
	}
	defer o.release()

	intent := &domain.PaymentIntent{
		AttemptID: uuid.New().String(),
		Amount:    amountMinor(view),
		Currency:  o.currency,
		Status:    domain.PaymentStatusIdle,
	}
	logger := o.logger.With("attempt_id", intent.AttemptID)

	redirect, err := o.submitter.Submit(ctx, MethodCOD, o.productKeys(ctx, view))
	if err != nil {
		intent.Transition(domain.PaymentStatusFailed)
		logger.Error("failed to place cash-on-delivery order", "error", err)
		o.notifier.Notify(notify.LevelError, "Failed to place order. Please try again.")
		return o.result(intent, ""), err
	}

	if !intent.Transition(domain.PaymentStatusCommitted) {
		return Result{}, IllegalTransitionError
	}
	o.cleanupAfterOrder(ctx, logger)
	o.notifier.Notify(notify.LevelSuccess, "Order placed.")
	logger.Info("cash-on-delivery order placed", "redirect", redirect)
	return o.result(intent, redirect), nil
}
