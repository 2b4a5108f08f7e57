package checkout

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/theabhishek-hub/ecommerce-storefront/internal/api"
	"github.com/theabhishek-hub/ecommerce-storefront/internal/cartstore"
	"github.com/theabhishek-hub/ecommerce-storefront/internal/domain"
)

// SelectionSource provides the product keys captured on the cart page.
type SelectionSource interface {
	Consume(ctx context.Context) ([]string, error)
}

// View is everything the checkout page needs to render an order summary.
type View struct {
	Items        []domain.LineItem
	Totals       domain.CheckoutTotals
	SelectedKeys []string
}

// Aggregator assembles the checkout view from the active cart backend and the
// captured selection.
type Aggregator struct {
	cart      cartstore.Store
	selection SelectionSource
	taxRate   decimal.Decimal
	logger    *slog.Logger
}

func NewAggregator(cart cartstore.Store, selection SelectionSource, taxRate decimal.Decimal, logger *slog.Logger) *Aggregator {
	return &Aggregator{
		cart:      cart,
		selection: selection,
		taxRate:   taxRate,
		logger:    logger,
	}
}

// BuildView reads the cart, narrows it to the captured selection and computes
// totals. A selection naming only products no longer in the cart is stale and
// falls back to the full cart. An empty cart returns ErrEmptyCart.
//
// Cart read failures other than a missing session degrade to an empty cart,
// which surfaces as ErrEmptyCart; checkout never renders guessed-at items.
func (a *Aggregator) BuildView(ctx context.Context) (View, error) {
	snapshot, err := a.cart.Read(ctx)
	if err != nil {
		if errors.Is(err, api.ErrAuthenticationRequired) {
			return View{}, err
		}
		a.logger.Warn("cart read failed, treating cart as empty", "error", err)
		snapshot = domain.CartSnapshot{}
	}

	keys, err := a.selection.Consume(ctx)
	if err != nil {
		a.logger.Warn("failed to read checkout selection", "error", err)
		keys = nil
	}

	items := snapshot.Items
	if keys != nil {
		selected := snapshot.FilterByKeys(keys)
		if selected.IsEmpty() && !snapshot.IsEmpty() {
			a.logger.Warn("captured selection matches nothing in the cart, checking out full cart",
				"selected_keys", len(keys))
		} else {
			items = selected.Items
		}
	}

	if len(items) == 0 {
		return View{}, ErrEmptyCart
	}

	view := View{
		Items:  items,
		Totals: domain.ComputeTotals(items, a.taxRate),
	}
	for _, item := range items {
		view.SelectedKeys = append(view.SelectedKeys, item.ProductKey())
	}
	return view, nil
}
