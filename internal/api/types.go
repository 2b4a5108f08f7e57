package api

import (
	"github.com/shopspring/decimal"

	"github.com/theabhishek-hub/ecommerce-storefront/internal/domain"
)

// cartItemDTO mirrors the authenticated cart endpoint's item shape.
type cartItemDTO struct {
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName"`
	PriceAmount decimal.Decimal `json:"priceAmount"`
	Quantity    int32           `json:"quantity"`
	ImageURL    string          `json:"imageUrl,omitempty"`
}

type cartDTO struct {
	Items []cartItemDTO `json:"items"`
}

func (c cartDTO) toSnapshot() domain.CartSnapshot {
	var snapshot domain.CartSnapshot
	for _, it := range c.Items {
		snapshot.Items = append(snapshot.Items, domain.LineItem{
			ProductID: it.ProductID,
			Name:      it.ProductName,
			UnitPrice: it.PriceAmount,
			Quantity:  it.Quantity,
			ImageURL:  it.ImageURL,
		})
	}
	return snapshot
}

type addItemRequestDTO struct {
	ProductID int64 `json:"productId"`
	Quantity  int32 `json:"quantity"`
}

type updateQuantityRequestDTO struct {
	Quantity int32 `json:"quantity"`
}

type prepareOrderRequestDTO struct {
	Amount   int64  `json:"amount"` // minor units
	Currency string `json:"currency"`
}

// GatewayOrder is the payment provider's handle for an amount to be charged.
// Its creation never creates a server-side order record.
type GatewayOrder struct {
	GatewayOrderID string `json:"razorpayOrderId"`
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
}

// PaymentReference is the signed proof of a completed gateway payment,
// produced by the payment UI and checked by the verification endpoint.
type PaymentReference struct {
	GatewayOrderID string `json:"razorpayOrderId"`
	PaymentID      string `json:"razorpayPaymentId"`
	Signature      string `json:"razorpaySignature"`
}

// GatewayConfig is the feature flag plus the public key the payment UI needs.
type GatewayConfig struct {
	Enabled bool   `json:"enabled"`
	KeyID   string `json:"keyId"`
}
