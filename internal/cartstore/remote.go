package cartstore

import (
	"context"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"github.com/theabhishek-hub/ecommerce-storefront/internal/api"
	"github.com/theabhishek-hub/ecommerce-storefront/internal/domain"
)

// Remote forwards every operation to the server cart endpoints. The server is
// the only authority for authenticated carts, so each mutation is followed by
// a full re-read and the result of that re-read is what callers render.
type Remote struct {
	client *api.Client
	sfg    singleflight.Group // Prevents duplicate concurrent reads
	logger *slog.Logger
}

func NewRemote(client *api.Client, logger *slog.Logger) *Remote {
	return &Remote{
		client: client,
		logger: logger,
	}
}

func (r *Remote) Read(ctx context.Context) (domain.CartSnapshot, error) {
	v, err, _ := r.sfg.Do("cart", func() (interface{}, error) {
		return r.client.GetCart(ctx)
	})
	if err != nil {
		// Callers render an empty cart on read failure. Falling back to the
		// anonymous store here would mix identities.
		r.logger.Warn("cart read failed", "error", err)
		return domain.CartSnapshot{}, err
	}
	return v.(domain.CartSnapshot), nil
}

func (r *Remote) Add(ctx context.Context, item domain.LineItem) (domain.CartSnapshot, error) {
	if err := r.client.AddItem(ctx, item.ProductID, item.Quantity); err != nil {
		return domain.CartSnapshot{}, err
	}
	return r.Read(ctx)
}

func (r *Remote) SetQuantity(ctx context.Context, productID int64, quantity int32) (domain.CartSnapshot, error) {
	// Quantity policy for authenticated carts is server-defined; the value is
	// forwarded as-is.
	if err := r.client.UpdateQuantity(ctx, productID, quantity); err != nil {
		return domain.CartSnapshot{}, err
	}
	return r.Read(ctx)
}

func (r *Remote) Remove(ctx context.Context, productID int64) (domain.CartSnapshot, error) {
	if err := r.client.RemoveItem(ctx, productID); err != nil {
		return domain.CartSnapshot{}, err
	}
	return r.Read(ctx)
}

func (r *Remote) Clear(ctx context.Context) error {
	return r.client.ClearCart(ctx)
}
