package domain

import "github.com/shopspring/decimal"

// CheckoutTotals is derived from a set of line items, never stored.
type CheckoutTotals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
}

// ComputeTotals calculates subtotal, tax and total for items at the given tax
// rate. Tax is rounded to two decimal places; shipping is currently free.
func ComputeTotals(items []LineItem, taxRate decimal.Decimal) CheckoutTotals {
	subtotal := decimal.Zero
	for _, li := range items {
		subtotal = subtotal.Add(li.Subtotal())
	}

	tax := subtotal.Mul(taxRate).Round(2)
	shipping := decimal.Zero

	return CheckoutTotals{
		Subtotal: subtotal,
		Tax:      tax,
		Shipping: shipping,
		Total:    subtotal.Add(tax).Add(shipping),
	}
}

// TotalMinorUnits converts the total into integer minor units (cents, paise)
// for sizing a gateway order.
func (t CheckoutTotals) TotalMinorUnits() int64 {
	return t.Total.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
