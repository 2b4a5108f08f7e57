package domain

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// LineItem is one product's quantity within a cart or order, with the unit
// price captured from whichever store is authoritative for the session.
type LineItem struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int32           `json:"quantity"`
	ImageURL  string          `json:"image_url,omitempty"`
}

// Subtotal is unit price times quantity.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt32(li.Quantity))
}

// ProductKey is the canonical string form of the product identifier. The
// selection set is keyed by strings because selections originate from UI
// element attributes.
func (li LineItem) ProductKey() string {
	return strconv.FormatInt(li.ProductID, 10)
}

// CartSnapshot is an ordered sequence of line items, unique by product ID.
type CartSnapshot struct {
	Items []LineItem `json:"items"`
}

// IsEmpty reports whether the snapshot has no line items.
func (c CartSnapshot) IsEmpty() bool {
	return len(c.Items) == 0
}

// Find returns the index of the line for productID, or -1.
func (c CartSnapshot) Find(productID int64) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// Accumulate merges item into the snapshot: an existing line for the same
// product has its quantity incremented, otherwise the item is appended.
// Duplicate product rows never exist.
func (c *CartSnapshot) Accumulate(item LineItem) {
	if i := c.Find(item.ProductID); i >= 0 {
		c.Items[i].Quantity += item.Quantity
		return
	}
	c.Items = append(c.Items, item)
}

// Remove deletes the line for productID, preserving order of the rest.
func (c *CartSnapshot) Remove(productID int64) {
	if i := c.Find(productID); i >= 0 {
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
	}
}

// ProductKeys returns the string product IDs of every line, in order.
func (c CartSnapshot) ProductKeys() []string {
	keys := make([]string, 0, len(c.Items))
	for _, li := range c.Items {
		keys = append(keys, li.ProductKey())
	}
	return keys
}

// FilterByKeys returns a snapshot holding only the lines whose product key is
// in keys. Order is preserved.
func (c CartSnapshot) FilterByKeys(keys []string) CartSnapshot {
	wanted := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		wanted[k] = struct{}{}
	}

	var out CartSnapshot
	for _, li := range c.Items {
		if _, ok := wanted[li.ProductKey()]; ok {
			out.Items = append(out.Items, li)
		}
	}
	return out
}
