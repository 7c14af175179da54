package domain

import (
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func product(id int64, price string) Product {
	return Product{ID: id, Name: "Product", Price: decimal.RequireFromString(price)}
}

func requireTotalsReconcile(t *testing.T, c *Cart) {
	t.Helper()
	total := decimal.Zero
	count := 0
	seen := map[int64]bool{}
	for _, item := range c.Items {
		require.False(t, seen[item.ID], "duplicate line item %d", item.ID)
		seen[item.ID] = true
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		count += item.Quantity
	}
	require.True(t, c.Total.Equal(total), "total %s != %s", c.Total, total)
	require.Equal(t, count, c.ItemCount)
}

func TestCart_TotalsReconcileAcrossRandomOperations(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	prices := []string{"49.90", "10.00", "0.99", "129.50", "5"}
	now := time.Now()

	for run := 0; run < 50; run++ {
		c := New()
		for step := 0; step < 40; step++ {
			id := int64(rng.Intn(len(prices)) + 1)
			switch rng.Intn(3) {
			case 0:
				require.NoError(t, c.Add(product(id, prices[id-1]), rng.Intn(4)+1, now))
			case 1:
				require.NoError(t, c.UpdateQuantity(id, rng.Intn(6)-2))
			default:
				c.Remove(id)
			}
			requireTotalsReconcile(t, c)
		}
	}
}

func TestCart_AddMergesExistingLineItem(t *testing.T) {
	c := New()
	camiseta := Product{ID: 1, Name: "Camiseta", Price: decimal.RequireFromString("49.90")}
	require.NoError(t, c.Add(camiseta, 1, time.Now()))
	require.NoError(t, c.Add(camiseta, 2, time.Now()))

	require.Len(t, c.Items, 1)
	require.Equal(t, 3, c.Items[0].Quantity)
	require.Equal(t, 3, c.ItemCount)
	require.True(t, c.Total.Equal(decimal.RequireFromString("149.70")))
}

func TestCart_AddKeepsInsertionOrder(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(product(3, "1"), 1, time.Now()))
	require.NoError(t, c.Add(product(1, "1"), 1, time.Now()))
	require.NoError(t, c.Add(product(3, "1"), 1, time.Now()))
	require.Equal(t, int64(3), c.Items[0].ID)
	require.Equal(t, int64(1), c.Items[1].ID)
}

func TestCart_AddRejectsInvalidInput(t *testing.T) {
	c := New()
	require.ErrorIs(t, c.Add(product(0, "1"), 1, time.Now()), ErrInvalidProductID)
	require.ErrorIs(t, c.Add(product(1, "1"), 0, time.Now()), ErrInvalidQuantity)
	require.ErrorIs(t, c.Add(product(1, "-1"), 1, time.Now()), ErrInvalidPrice)
	require.ErrorIs(t, c.Add(product(1, "10.005"), 2, time.Now()), ErrInvalidPrice)
	require.ErrorIs(t, c.Add(product(1, "1"), MaxQuantity+1, time.Now()), ErrInvalidQuantity)
	require.True(t, c.IsEmpty())
}

func TestCart_AddAcceptsTrailingZeroPrecision(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(product(1, "10.500"), 2, time.Now()))
	require.True(t, c.Total.Equal(decimal.RequireFromString("21")))
}

func TestCart_MergeCannotExceedMaxQuantity(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(product(1, "10"), MaxQuantity, time.Now()))

	require.ErrorIs(t, c.Add(product(1, "10"), 1, time.Now()), ErrInvalidQuantity)
	require.Equal(t, MaxQuantity, c.Items[0].Quantity)
	require.Equal(t, MaxQuantity, c.ItemCount)
	require.True(t, c.Total.IsPositive())
	requireTotalsReconcile(t, c)
}

func TestCart_UpdateQuantityRejectsAboveMax(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(product(1, "10"), 2, time.Now()))

	require.ErrorIs(t, c.UpdateQuantity(1, MaxQuantity+1), ErrInvalidQuantity)
	require.Equal(t, 2, c.Items[0].Quantity)
	require.NoError(t, c.UpdateQuantity(1, MaxQuantity))
	require.Equal(t, MaxQuantity, c.ItemCount)
}

func TestCart_NonPositiveQuantityRemoves(t *testing.T) {
	for _, qty := range []int{0, -1, -10} {
		c := New()
		require.NoError(t, c.Add(product(1, "10"), 2, time.Now()))
		require.NoError(t, c.Add(product(2, "5"), 3, time.Now()))
		before := c.ItemCount

		require.NoError(t, c.UpdateQuantity(1, qty))

		_, found := c.Item(1)
		require.False(t, found)
		require.Equal(t, before-2, c.ItemCount)
		requireTotalsReconcile(t, c)
	}
}

func TestCart_UnknownIDIsNoop(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(product(1, "10"), 2, time.Now()))
	require.NoError(t, c.UpdateQuantity(99, 5))
	c.Remove(99)
	require.Len(t, c.Items, 1)
	require.Equal(t, 2, c.ItemCount)
}

func TestCart_NoticeExpiresAfterWindow(t *testing.T) {
	c := New()
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	require.NoError(t, c.Add(product(1, "10"), 1, now))

	notice, ok := c.ActiveNotice(now.Add(time.Second))
	require.True(t, ok)
	require.Equal(t, int64(1), notice.Product.ID)

	_, ok = c.ActiveNotice(now.Add(NoticeWindow))
	require.False(t, ok)

	c.Clear()
	_, ok = c.ActiveNotice(now)
	require.False(t, ok)
	require.True(t, c.Total.IsZero())
	require.Zero(t, c.ItemCount)
}

func TestCart_CloneIsIndependent(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(product(1, "10"), 1, time.Now()))
	clone := c.Clone()
	require.NoError(t, clone.UpdateQuantity(1, 5))
	require.Equal(t, 1, c.Items[0].Quantity)
	require.Equal(t, 5, clone.Items[0].Quantity)
}

func TestCart_DeductKeepsLinesAddedAfterSnapshot(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(product(1, "10"), 2, time.Now()))
	snapshot := c.Clone().Items

	require.NoError(t, c.Add(product(1, "10"), 1, time.Now()))
	require.NoError(t, c.Add(product(2, "5"), 3, time.Now()))
	c.Deduct(snapshot)

	require.Len(t, c.Items, 2)
	first, ok := c.Item(1)
	require.True(t, ok)
	require.Equal(t, 1, first.Quantity)
	require.Equal(t, 4, c.ItemCount)
	requireTotalsReconcile(t, c)

	c.Deduct([]LineItem{{ID: 1, Quantity: 1}, {ID: 2, Quantity: 3}, {ID: 99, Quantity: 1}})
	require.True(t, c.IsEmpty())
	require.True(t, c.Total.IsZero())
}
