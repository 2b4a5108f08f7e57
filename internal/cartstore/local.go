package cartstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theabhishek-hub/ecommerce-storefront/internal/domain"
	"github.com/theabhishek-hub/ecommerce-storefront/internal/storage"
)

// Local persists the anonymous cart in the device state database. Quantities
// set below 1 are clamped to 1; a line only disappears through Remove.
type Local struct {
	db *sql.DB
}

func NewLocal(db *storage.DB) *Local {
	return &Local{db: db.SQL()}
}

func (l *Local) Read(ctx context.Context) (domain.CartSnapshot, error) {
	query := `
		SELECT product_id, name, unit_price, quantity, image_url
		FROM local_cart_items
		ORDER BY position
	`

	rows, err := l.db.QueryContext(ctx, query)
	if err != nil {
		return domain.CartSnapshot{}, fmt.Errorf("failed to query cart items: %w", err)
	}
	defer rows.Close()

	var snapshot domain.CartSnapshot
	for rows.Next() {
		var (
			item  domain.LineItem
			price string
		)
		if err := rows.Scan(&item.ProductID, &item.Name, &price, &item.Quantity, &item.ImageURL); err != nil {
			return domain.CartSnapshot{}, fmt.Errorf("failed to scan cart item: %w", err)
		}
		item.UnitPrice, err = decimal.NewFromString(price)
		if err != nil {
			return domain.CartSnapshot{}, fmt.Errorf("corrupt unit price for product %d: %w", item.ProductID, err)
		}
		snapshot.Items = append(snapshot.Items, item)
	}

	if err := rows.Err(); err != nil {
		return domain.CartSnapshot{}, fmt.Errorf("row iteration error: %w", err)
	}

	return snapshot, nil
}

func (l *Local) Add(ctx context.Context, item domain.LineItem) (domain.CartSnapshot, error) {
	if item.Quantity < 1 {
		item.Quantity = 1
	}

	// Adding an existing product accumulates quantity instead of appending a
	// duplicate row.
	query := `
		INSERT INTO local_cart_items (product_id, name, unit_price, quantity, image_url, position, added_at)
		VALUES ($1, $2, $3, $4, $5,
			(SELECT COALESCE(MAX(position), 0) + 1 FROM local_cart_items), $6)
		ON CONFLICT (product_id) DO UPDATE SET quantity = quantity + excluded.quantity
	`
	_, err := l.db.ExecContext(ctx, query,
		item.ProductID, item.Name, item.UnitPrice.String(), item.Quantity, item.ImageURL, time.Now())
	if err != nil {
		return domain.CartSnapshot{}, fmt.Errorf("failed to add cart item: %w", err)
	}

	return l.Read(ctx)
}

func (l *Local) SetQuantity(ctx context.Context, productID int64, quantity int32) (domain.CartSnapshot, error) {
	if quantity < 1 {
		quantity = 1
	}

	result, err := l.db.ExecContext(ctx,
		`UPDATE local_cart_items SET quantity = $1 WHERE product_id = $2`, quantity, productID)
	if err != nil {
		return domain.CartSnapshot{}, fmt.Errorf("failed to update quantity: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return domain.CartSnapshot{}, fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return domain.CartSnapshot{}, ErrItemNotFound
	}

	return l.Read(ctx)
}

func (l *Local) Remove(ctx context.Context, productID int64) (domain.CartSnapshot, error) {
	result, err := l.db.ExecContext(ctx,
		`DELETE FROM local_cart_items WHERE product_id = $1`, productID)
	if err != nil {
		return domain.CartSnapshot{}, fmt.Errorf("failed to remove cart item: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return domain.CartSnapshot{}, fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return domain.CartSnapshot{}, ErrItemNotFound
	}

	return l.Read(ctx)
}

func (l *Local) Clear(ctx context.Context) error {
	if _, err := l.db.ExecContext(ctx, `DELETE FROM local_cart_items`); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// ItemCount sums the quantities of every line, for the cart badge.
func (l *Local) ItemCount(ctx context.Context) (int64, error) {
	var count sql.NullInt64
	err := l.db.QueryRowContext(ctx,
		`SELECT SUM(quantity) FROM local_cart_items`).Scan(&count)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("failed to count cart items: %w", err)
	}
	return count.Int64, nil
}
