package checkout

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theabhishek-hub/ecommerce-storefront/internal/api"
	"github.com/theabhishek-hub/ecommerce-storefront/internal/domain"
)

// MockCartStore implements cartstore.Store for testing
type MockCartStore struct {
	Snapshot domain.CartSnapshot
	ReadErr  error
}

func (m *MockCartStore) Read(_ context.Context) (domain.CartSnapshot, error) {
	return m.Snapshot, m.ReadErr
}

func (m *MockCartStore) Add(_ context.Context, _ domain.LineItem) (domain.CartSnapshot, error) {
	return m.Snapshot, nil
}

func (m *MockCartStore) SetQuantity(_ context.Context, _ int64, _ int32) (domain.CartSnapshot, error) {
	return m.Snapshot, nil
}

func (m *MockCartStore) Remove(_ context.Context, _ int64) (domain.CartSnapshot, error) {
	return m.Snapshot, nil
}

func (m *MockCartStore) Clear(_ context.Context) error {
	return nil
}

// MockSelection implements SelectionSource for testing
type MockSelection struct {
	Keys     []string
	Err      error
	Consumed int
}

func (m *MockSelection) Consume(_ context.Context) ([]string, error) {
	m.Consumed++
	return m.Keys, m.Err
}

func lineItem(id int64, price string, qty int32) domain.LineItem {
	return domain.LineItem{
		ProductID: id,
		Name:      "product",
		UnitPrice: decimal.RequireFromString(price),
		Quantity:  qty,
	}
}

func newAggregator(cart *MockCartStore, sel *MockSelection) *Aggregator {
	return NewAggregator(cart, sel, decimal.RequireFromString("0.05"), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestBuildView_SelectionNarrowsCart(t *testing.T) {
	cart := &MockCartStore{Snapshot: domain.CartSnapshot{Items: []domain.LineItem{
		lineItem(1, "799", 2),
		lineItem(2, "3499", 1),
		lineItem(3, "1299.50", 1),
	}}}
	sel := &MockSelection{Keys: []string{"1", "3"}}

	view, err := newAggregator(cart, sel).BuildView(context.Background())

	require.NoError(t, err)
	require.Len(t, view.Items, 2)
	assert.Equal(t, []string{"1", "3"}, view.SelectedKeys)
	assert.Equal(t, 1, sel.Consumed)
	// 799*2 + 1299.50 = 2897.50, tax 144.88
	assert.Equal(t, "2897.5", view.Totals.Subtotal.String())
	assert.Equal(t, "144.88", view.Totals.Tax.String())
	assert.Equal(t, "3042.38", view.Totals.Total.String())
}

func TestBuildView_NoSelectionMeansFullCart(t *testing.T) {
	cart := &MockCartStore{Snapshot: domain.CartSnapshot{Items: []domain.LineItem{
		lineItem(1, "799", 1),
		lineItem(2, "3499", 1),
	}}}
	sel := &MockSelection{Keys: nil}

	view, err := newAggregator(cart, sel).BuildView(context.Background())

	require.NoError(t, err)
	assert.Len(t, view.Items, 2)
	assert.Equal(t, []string{"1", "2"}, view.SelectedKeys)
}

func TestBuildView_StaleSelectionFallsBackToFullCart(t *testing.T) {
	cart := &MockCartStore{Snapshot: domain.CartSnapshot{Items: []domain.LineItem{
		lineItem(1, "799", 1),
	}}}
	// Selection refers to products that have since left the cart.
	sel := &MockSelection{Keys: []string{"41", "42"}}

	view, err := newAggregator(cart, sel).BuildView(context.Background())

	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, int64(1), view.Items[0].ProductID)
}

func TestBuildView_EmptyCart(t *testing.T) {
	cart := &MockCartStore{}
	sel := &MockSelection{}

	_, err := newAggregator(cart, sel).BuildView(context.Background())

	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestBuildView_ReadFailureDegradesToEmpty(t *testing.T) {
	cart := &MockCartStore{ReadErr: errors.New("connection refused")}
	sel := &MockSelection{}

	_, err := newAggregator(cart, sel).BuildView(context.Background())

	// Never render guessed-at items; an unreadable cart checks out nothing.
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestBuildView_AuthenticationFailurePropagates(t *testing.T) {
	cart := &MockCartStore{ReadErr: api.ErrAuthenticationRequired}
	sel := &MockSelection{}

	_, err := newAggregator(cart, sel).BuildView(context.Background())

	assert.ErrorIs(t, err, api.ErrAuthenticationRequired)
}
