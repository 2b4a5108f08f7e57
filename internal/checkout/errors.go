package checkout

import "errors"

var (
	// ErrEmptyCart signals there is nothing to check out; callers send the
	// user back to the cart page.
	ErrEmptyCart = errors.New("cart is empty, nothing to checkout")
)
