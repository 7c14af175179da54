package datastore

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_InsertSelectOrder(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.Insert(ctx, "order_items",
		Record{"id": "b", "order_id": "o1", "position": 1, "unit_price": decimal.RequireFromString("10.00")},
		Record{"id": "a", "order_id": "o1", "position": 0, "unit_price": decimal.RequireFromString("49.90")},
		Record{"id": "c", "order_id": "o2", "position": 0},
	)
	require.NoError(t, err)

	rows, err := store.Select(ctx, "order_items", Filter{"order_id": "o1"}, Asc("position"))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "a", rows[0]["id"])
	require.Equal(t, "b", rows[1]["id"])

	rows, err = store.Select(ctx, "order_items", Filter{"unit_price": decimal.RequireFromString("49.9")})
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	inserted, err := store.Insert(ctx, "orders", Record{"id": "o1", "status": "pending"})
	require.NoError(t, err)
	inserted[0]["status"] = "tampered"

	rows, err := store.Select(ctx, "orders", Filter{"id": "o1"})
	require.NoError(t, err)
	require.Equal(t, "pending", rows[0]["status"])
}

func TestMemoryStore_UniqueColumnRejectsWholeBatch(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(WithUniqueColumn("orders", "order_number"))
	_, err := store.Insert(ctx, "orders", Record{"id": "o1", "order_number": "ORD-1"})
	require.NoError(t, err)

	_, err = store.Insert(ctx, "orders",
		Record{"id": "o2", "order_number": "ORD-2"},
		Record{"id": "o3", "order_number": "ORD-1"},
	)
	require.ErrorIs(t, err, ErrDuplicateKey)
	require.Equal(t, 1, store.Len("orders"))
}

func TestMemoryStore_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	_, err := store.Insert(ctx, "orders", Record{"id": "o1", "status": "pending"}, Record{"id": "o2", "status": "pending"})
	require.NoError(t, err)

	updated, err := store.Update(ctx, "orders", Record{"status": "processing"}, Filter{"id": "o2"})
	require.NoError(t, err)
	require.Len(t, updated, 1)
	require.Equal(t, "processing", updated[0]["status"])

	require.NoError(t, store.Delete(ctx, "orders", Filter{"id": "o1"}))
	require.NoError(t, store.Delete(ctx, "orders", Filter{"id": "missing"}))
	rows, err := store.Select(ctx, "orders", nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "o2", rows[0]["id"])

	require.ErrorIs(t, store.Delete(ctx, "orders", nil), ErrUnfilteredWrite)
	_, err = store.Update(ctx, "orders", Record{"status": "x"}, Filter{})
	require.ErrorIs(t, err, ErrUnfilteredWrite)
	_, err = store.Select(ctx, "", nil)
	require.ErrorIs(t, err, ErrEmptyTable)
}
