package payment

import (
	"context"

	"github.com/theabhishek-hub/ecommerce-storefront/internal/api"
	"github.com/theabhishek-hub/ecommerce-storefront/internal/domain"
)

// MockGateway implements GatewayAPI for testing
type MockGateway struct {
	Config     api.GatewayConfig
	ConfigErr  error
	Order      api.GatewayOrder
	PrepareErr error
	VerifyErr  error

	PrepareCalls int
	VerifyCalls  int
	VerifiedRef  api.PaymentReference
}

func (m *MockGateway) GatewayEnabled(_ context.Context) (api.GatewayConfig, error) {
	return m.Config, m.ConfigErr
}

func (m *MockGateway) PrepareGatewayOrder(_ context.Context, amount int64, currency string) (api.GatewayOrder, error) {
	m.PrepareCalls++
	if m.PrepareErr != nil {
		return api.GatewayOrder{}, m.PrepareErr
	}
	order := m.Order
	if order.GatewayOrderID == "" {
		order = api.GatewayOrder{GatewayOrderID: "order_test", Amount: amount, Currency: currency}
	}
	return order, nil
}

func (m *MockGateway) VerifyPaymentSignature(_ context.Context, ref api.PaymentReference) error {
	m.VerifyCalls++
	m.VerifiedRef = ref
	return m.VerifyErr
}

// MockSubmitter implements OrderSubmitter for testing
type MockSubmitter struct {
	Redirect string
	Err      error

	Calls   int
	Method  string
	Keys    []string
	Release chan struct{} // when non-nil, Submit blocks until closed
}

func (m *MockSubmitter) Submit(_ context.Context, paymentMethod string, productKeys []string) (string, error) {
	m.Calls++
	m.Method = paymentMethod
	m.Keys = productKeys
	if m.Release != nil {
		<-m.Release
	}
	if m.Err != nil {
		return "", m.Err
	}
	if m.Redirect == "" {
		return "/orders/test", nil
	}
	return m.Redirect, nil
}

// MockCart implements CartAccess for testing
type MockCart struct {
	Snapshot domain.CartSnapshot
	ReadErr  error
	ClearErr error

	Cleared int
}

func (m *MockCart) Read(_ context.Context) (domain.CartSnapshot, error) {
	return m.Snapshot, m.ReadErr
}

func (m *MockCart) Clear(_ context.Context) error {
	m.Cleared++
	return m.ClearErr
}

// MockSelectionCleaner implements SelectionCleaner for testing
type MockSelectionCleaner struct {
	Cleared int
	Err     error
}

func (m *MockSelectionCleaner) Clear(_ context.Context) error {
	m.Cleared++
	return m.Err
}

// MockUI implements UserInterface for testing
type MockUI struct {
	Result UIResult
	Err    error

	Presented int
	LastOrder api.GatewayOrder
	LastKeyID string
}

func (m *MockUI) Present(_ context.Context, order api.GatewayOrder, keyID string) (UIResult, error) {
	m.Presented++
	m.LastOrder = order
	m.LastKeyID = keyID
	if m.Err != nil {
		return UIResult{}, m.Err
	}
	if m.Result.Outcome == "" {
		return UIResult{
			Outcome: UICompleted,
			Reference: api.PaymentReference{
				GatewayOrderID: order.GatewayOrderID,
				PaymentID:      "pay_test",
				Signature:      "sig_test",
			},
		}, nil
	}
	return m.Result, nil
}
