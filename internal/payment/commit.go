package payment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/theabhishek-hub/ecommerce-storefront/internal/checkout"
	"github.com/theabhishek-hub/ecommerce-storefront/internal/domain"
	"github.com/theabhishek-hub/ecommerce-storefront/internal/notify"
)

// commit places the order after a verified payment. A failure on this path is
// the worst outcome the flow has: the charge exists, the order does not. The
// cart and selection are left untouched and the user gets a sticky message,
// so nothing that could help resolve the charge is destroyed.
func (o *Orchestrator) commit(ctx context.Context, intent *domain.PaymentIntent, method string, view checkout.View, logger *slog.Logger) (Result, error) {
	redirect, err := o.submitter.Submit(ctx, method, o.productKeys(ctx, view))
	if err != nil {
		intent.Transition(domain.PaymentStatusFailed)
		logger.Error("order creation failed after verified payment",
			"gateway_order_id", intent.GatewayOrderID, "error", err)
		o.notifier.NotifySticky(notify.LevelError,
			fmt.Sprintf("Payment verified but failed to create order: %v", err))
		return o.result(intent, ""), fmt.Errorf("%w: %v", ErrPostPaymentCommit, err)
	}

	if !intent.Transition(domain.PaymentStatusCommitted) {
		return Result{}, IllegalTransitionError
	}
	o.cleanupAfterOrder(ctx, logger)
	o.notifier.Notify(notify.LevelSuccess, "Payment successful! Order placed.")
	logger.Info("order committed", "gateway_order_id", intent.GatewayOrderID, "redirect", redirect)
	return o.result(intent, redirect), nil
}

// productKeys returns the keys the order form should carry. The checkout view
// normally has them; if it somehow does not, the cart itself is the fallback,
// never an empty list.
func (o *Orchestrator) productKeys(ctx context.Context, view checkout.View) []string {
	if len(view.SelectedKeys) > 0 {
		return view.SelectedKeys
	}

	snapshot, err := o.cart.Read(ctx)
	if err != nil {
		o.logger.Warn("could not read cart for product key fallback", "error", err)
		return nil
	}
	return snapshot.ProductKeys()
}

// cleanupAfterOrder clears the cart and the captured selection. The order
// already exists, so neither failure changes the outcome; they are logged and
// swallowed.
func (o *Orchestrator) cleanupAfterOrder(ctx context.Context, logger *slog.Logger) {
	if err := o.cart.Clear(ctx); err != nil {
		logger.Warn("cart clear after order skipped", "error", err)
	}
	if err := o.selection.Clear(ctx); err != nil {
		logger.Warn("selection clear after order skipped", "error", err)
	}
}
