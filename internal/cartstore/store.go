// Package cartstore presents one uniform line-item view over the two cart
// backends: the server-authoritative cart of an authenticated session and the
// device-local persisted cart of an anonymous one. The two are never merged;
// the session's authentication flag picks the backend once per page view.
package cartstore

import (
	"context"
	"errors"

	"github.com/theabhishek-hub/ecommerce-storefront/internal/domain"
)

var ErrItemNotFound = errors.New("item not found in cart")

// Store is the uniform cart contract. Mutations return the cart state that
// results, re-read from the backend: no optimistic local update is trusted.
type Store interface {
	Read(ctx context.Context) (domain.CartSnapshot, error)
	Add(ctx context.Context, item domain.LineItem) (domain.CartSnapshot, error)
	SetQuantity(ctx context.Context, productID int64, quantity int32) (domain.CartSnapshot, error)
	Remove(ctx context.Context, productID int64) (domain.CartSnapshot, error)
	Clear(ctx context.Context) error
}

// ForSession selects the backend for the lifetime of a page view. The choice
// is made exactly once; operations never re-check authentication mid-flight.
func ForSession(authenticated bool, remote *Remote, local *Local) Store {
	if authenticated {
		return remote
	}
	return local
}
