package payment

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/theabhishek-hub/ecommerce-storefront/internal/api"
	"github.com/theabhishek-hub/ecommerce-storefront/internal/checkout"
	"github.com/theabhishek-hub/ecommerce-storefront/internal/domain"
	"github.com/theabhishek-hub/ecommerce-storefront/internal/notify"
)

// Payment method values the order endpoint understands.
const (
	MethodCOD    = "COD"
	MethodOnline = "ONLINE"
)

// GatewayAPI is the slice of the backend API the orchestrator needs.
type GatewayAPI interface {
	GatewayEnabled(ctx context.Context) (api.GatewayConfig, error)
	PrepareGatewayOrder(ctx context.Context, amountMinor int64, currency string) (api.GatewayOrder, error)
	VerifyPaymentSignature(ctx context.Context, ref api.PaymentReference) error
}

// OrderSubmitter places the order once payment is settled.
type OrderSubmitter interface {
	Submit(ctx context.Context, paymentMethod string, productKeys []string) (string, error)
}

// CartAccess covers what the orchestrator does with the cart: re-read it for
// the product key fallback and clear it after a committed order.
type CartAccess interface {
	Read(ctx context.Context) (domain.CartSnapshot, error)
	Clear(ctx context.Context) error
}

// SelectionCleaner drops the captured selection after a committed order.
type SelectionCleaner interface {
	Clear(ctx context.Context) error
}

// Result is the outcome of a finished payment attempt.
type Result struct {
	AttemptID    string
	Status       domain.PaymentStatus
	RedirectPath string
}

// Orchestrator drives a payment attempt from idle to a terminal state. One
// attempt runs at a time; the busy flag is the only concurrency guard, the
// same role the disabled button plays in a browser.
type Orchestrator struct {
	gateway   GatewayAPI
	submitter OrderSubmitter
	cart      CartAccess
	selection SelectionCleaner
	ui        UserInterface
	notifier  notify.Notifier
	currency  string
	logger    *slog.Logger

	busy atomic.Bool
}

type OrchestratorConfig struct {
	Currency string
}

func NewOrchestrator(
	cfg OrchestratorConfig,
	gateway GatewayAPI,
	submitter OrderSubmitter,
	cart CartAccess,
	selection SelectionCleaner,
	ui UserInterface,
	notifier notify.Notifier,
	logger *slog.Logger,
) *Orchestrator {
	currency := cfg.Currency
	if currency == "" {
		currency = "INR"
	}
	return &Orchestrator{
		gateway:   gateway,
		submitter: submitter,
		cart:      cart,
		selection: selection,
		ui:        ui,
		notifier:  notifier,
		currency:  currency,
		logger:    logger,
	}
}

// Busy reports whether an attempt is currently running.
func (o *Orchestrator) Busy() bool {
	return o.busy.Load()
}

func (o *Orchestrator) acquire() bool {
	return o.busy.CompareAndSwap(false, true)
}

func (o *Orchestrator) release() {
	o.busy.Store(false)
}

// ProbeGateway asks the backend whether online payment is configured. A
// failed probe is not fatal; it just means cash on delivery only.
func (o *Orchestrator) ProbeGateway(ctx context.Context) api.GatewayConfig {
	cfg, err := o.gateway.GatewayEnabled(ctx)
	if err != nil {
		o.logger.Warn("payment gateway probe failed, online payment disabled", "error", err)
		return api.GatewayConfig{}
	}
	return cfg
}

// amountMinor converts checkout totals into the gateway's minor currency
// units.
func amountMinor(view checkout.View) int64 {
	return view.Totals.TotalMinorUnits()
}
