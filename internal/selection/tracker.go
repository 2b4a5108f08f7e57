package selection

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/theabhishek-hub/ecommerce-storefront/internal/storage"
)

// Tracker remembers which cart lines the user picked before navigating to
// checkout. The set survives only until checkout consumes it; an absent set
// means "check out everything".
type Tracker struct {
	db *sql.DB
}

func NewTracker(db *storage.DB) *Tracker {
	return &Tracker{db: db.SQL()}
}

// Capture replaces any previous selection with the given product keys.
func (t *Tracker) Capture(ctx context.Context, productKeys []string) error {
	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM checkout_selection`); err != nil {
		return fmt.Errorf("failed to reset selection: %w", err)
	}

	now := time.Now()
	for i, key := range productKeys {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO checkout_selection (product_key, position, captured_at) VALUES ($1, $2, $3)`,
			key, i, now)
		if err != nil {
			return fmt.Errorf("failed to store selection: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit selection: %w", err)
	}
	return nil
}

// Peek returns the captured keys without removing them. A nil slice means no
// selection was captured.
func (t *Tracker) Peek(ctx context.Context) ([]string, error) {
	rows, err := t.db.QueryContext(ctx,
		`SELECT product_key FROM checkout_selection ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query selection: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan selection: %w", err)
		}
		keys = append(keys, key)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return keys, nil
}

// Consume returns the captured keys without clearing them; reading twice
// yields the same set. Clearing is always an explicit caller act, on order
// success or on re-entering the cart page. An absent selection is nil, nil.
func (t *Tracker) Consume(ctx context.Context) ([]string, error) {
	return t.Peek(ctx)
}

// Clear drops any captured selection, so an old selection never leaks into a
// later checkout.
func (t *Tracker) Clear(ctx context.Context) error {
	if _, err := t.db.ExecContext(ctx, `DELETE FROM checkout_selection`); err != nil {
		return fmt.Errorf("failed to clear selection: %w", err)
	}
	return nil
}
