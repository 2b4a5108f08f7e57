package selection

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theabhishek-hub/ecommerce-storefront/internal/storage"
)

func newTracker(t *testing.T) *Tracker {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.RunMigrations())
	return NewTracker(db)
}

func TestCapture_OverwritesPreviousSelection(t *testing.T) {
	tracker := newTracker(t)
	ctx := context.Background()

	require.NoError(t, tracker.Capture(ctx, []string{"1", "2"}))
	require.NoError(t, tracker.Capture(ctx, []string{"3"}))

	keys, err := tracker.Peek(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"3"}, keys)
}

func TestConsume_IsIdempotentAndOrdered(t *testing.T) {
	tracker := newTracker(t)
	ctx := context.Background()

	require.NoError(t, tracker.Capture(ctx, []string{"2", "1", "3"}))

	keys, err := tracker.Consume(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "1", "3"}, keys)

	// Consume does not clear; only Capture or Clear changes the set.
	keys, err = tracker.Consume(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "1", "3"}, keys)
}

func TestConsume_AbsentSelectionIsNil(t *testing.T) {
	tracker := newTracker(t)

	keys, err := tracker.Consume(context.Background())

	require.NoError(t, err)
	assert.Nil(t, keys)
}

func TestClear_DropsCapturedSelection(t *testing.T) {
	tracker := newTracker(t)
	ctx := context.Background()

	require.NoError(t, tracker.Capture(ctx, []string{"1"}))
	require.NoError(t, tracker.Clear(ctx))

	keys, err := tracker.Peek(ctx)
	require.NoError(t, err)
	assert.Nil(t, keys)
}

func TestCapture_EmptySelectionIsStillASelection(t *testing.T) {
	tracker := newTracker(t)
	ctx := context.Background()

	require.NoError(t, tracker.Capture(ctx, []string{}))

	keys, err := tracker.Consume(ctx)
	require.NoError(t, err)
	assert.Nil(t, keys, "capturing no keys stores nothing")
}
