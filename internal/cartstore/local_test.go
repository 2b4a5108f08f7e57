package cartstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theabhishek-hub/ecommerce-storefront/internal/domain"
	"github.com/theabhishek-hub/ecommerce-storefront/internal/storage"
)

func newLocalStore(t *testing.T) *Local {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.RunMigrations())
	return NewLocal(db)
}

func lineItem(id int64, name, price string, qty int32) domain.LineItem {
	return domain.LineItem{
		ProductID: id,
		Name:      name,
		UnitPrice: decimal.RequireFromString(price),
		Quantity:  qty,
	}
}

func TestLocalAdd_NewItem(t *testing.T) {
	store := newLocalStore(t)
	ctx := context.Background()

	cart, err := store.Add(ctx, lineItem(1, "Mouse", "799", 2))

	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "Mouse", cart.Items[0].Name)
	assert.Equal(t, "799", cart.Items[0].UnitPrice.String())
	assert.Equal(t, int32(2), cart.Items[0].Quantity)
}

func TestLocalAdd_SameProductAccumulatesQuantity(t *testing.T) {
	store := newLocalStore(t)
	ctx := context.Background()

	_, err := store.Add(ctx, lineItem(1, "Mouse", "799", 2))
	require.NoError(t, err)
	cart, err := store.Add(ctx, lineItem(1, "Mouse", "799", 3))
	require.NoError(t, err)

	require.Len(t, cart.Items, 1, "same product must never produce a second row")
	assert.Equal(t, int32(5), cart.Items[0].Quantity)
}

func TestLocalRead_PreservesInsertionOrder(t *testing.T) {
	store := newLocalStore(t)
	ctx := context.Background()

	_, err := store.Add(ctx, lineItem(3, "Hub", "1299.50", 1))
	require.NoError(t, err)
	_, err = store.Add(ctx, lineItem(1, "Mouse", "799", 1))
	require.NoError(t, err)
	cart, err := store.Read(ctx)
	require.NoError(t, err)

	require.Len(t, cart.Items, 2)
	assert.Equal(t, int64(3), cart.Items[0].ProductID)
	assert.Equal(t, int64(1), cart.Items[1].ProductID)
}

func TestLocalSetQuantity_ClampsToOne(t *testing.T) {
	store := newLocalStore(t)
	ctx := context.Background()

	_, err := store.Add(ctx, lineItem(1, "Mouse", "799", 2))
	require.NoError(t, err)

	cart, err := store.SetQuantity(ctx, 1, 0)

	require.NoError(t, err)
	require.Len(t, cart.Items, 1, "setting quantity below one must not remove the line")
	assert.Equal(t, int32(1), cart.Items[0].Quantity)
}

func TestLocalSetQuantity_UnknownProduct(t *testing.T) {
	store := newLocalStore(t)

	_, err := store.SetQuantity(context.Background(), 99, 2)

	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestLocalRemove_DeletesLine(t *testing.T) {
	store := newLocalStore(t)
	ctx := context.Background()

	_, err := store.Add(ctx, lineItem(1, "Mouse", "799", 1))
	require.NoError(t, err)
	_, err = store.Add(ctx, lineItem(2, "Keyboard", "3499", 1))
	require.NoError(t, err)

	cart, err := store.Remove(ctx, 1)

	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, int64(2), cart.Items[0].ProductID)
}

func TestLocalClear_EmptiesCart(t *testing.T) {
	store := newLocalStore(t)
	ctx := context.Background()

	_, err := store.Add(ctx, lineItem(1, "Mouse", "799", 1))
	require.NoError(t, err)

	require.NoError(t, store.Clear(ctx))

	cart, err := store.Read(ctx)
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}

func TestLocalItemCount(t *testing.T) {
	store := newLocalStore(t)
	ctx := context.Background()

	_, err := store.Add(ctx, lineItem(1, "Mouse", "799", 2))
	require.NoError(t, err)
	_, err = store.Add(ctx, lineItem(2, "Keyboard", "3499", 3))
	require.NoError(t, err)

	count, err := store.ItemCount(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(5), count)
}
