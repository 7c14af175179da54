package application

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	cartmemory "github.com/Apurer/storefront-api/internal/domains/cart/adapters/memory"
	"github.com/Apurer/storefront-api/internal/domains/cart/domain"
)

func newTestService(now time.Time) *Service {
	return NewService(cartmemory.NewRepository(), WithClock(func() time.Time { return now }))
}

var camiseta = domain.Product{ID: 1, Name: "Camiseta", Price: decimal.RequireFromString("49.90"), ImageURL: "https://cdn.example/camiseta.jpg"}

func TestAddToCart_PersistsPerSession(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(time.Now())

	_, err := svc.AddToCart(ctx, "session-a", camiseta, 2)
	require.NoError(t, err)

	cartA, err := svc.GetCart(ctx, "session-a")
	require.NoError(t, err)
	require.Equal(t, 2, cartA.ItemCount)
	require.True(t, cartA.Total.Equal(decimal.RequireFromString("99.80")))

	cartB, err := svc.GetCart(ctx, "session-b")
	require.NoError(t, err)
	require.True(t, cartB.IsEmpty())
}

func TestAddToCart_EmitsNotice(t *testing.T) {
	now := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	svc := newTestService(now)

	cart, err := svc.AddToCart(context.Background(), "s", camiseta, 1)
	require.NoError(t, err)
	notice, ok := cart.ActiveNotice(now)
	require.True(t, ok)
	require.Equal(t, camiseta.ID, notice.Product.ID)
	require.Equal(t, now.Add(domain.NoticeWindow), notice.VisibleUntil)
}

func TestAddToCart_InvalidQuantity(t *testing.T) {
	svc := newTestService(time.Now())
	_, err := svc.AddToCart(context.Background(), "s", camiseta, 0)
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestUpdateAndRemove(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(time.Now())
	_, err := svc.AddToCart(ctx, "s", camiseta, 1)
	require.NoError(t, err)

	cart, err := svc.UpdateQuantity(ctx, "s", camiseta.ID, 4)
	require.NoError(t, err)
	require.Equal(t, 4, cart.ItemCount)

	cart, err = svc.UpdateQuantity(ctx, "s", camiseta.ID, 0)
	require.NoError(t, err)
	require.True(t, cart.IsEmpty())

	_, err = svc.AddToCart(ctx, "s", camiseta, 1)
	require.NoError(t, err)
	cart, err = svc.RemoveFromCart(ctx, "s", camiseta.ID)
	require.NoError(t, err)
	require.True(t, cart.IsEmpty())
}

func TestClearCart(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(time.Now())
	_, err := svc.AddToCart(ctx, "s", camiseta, 3)
	require.NoError(t, err)

	require.NoError(t, svc.ClearCart(ctx, "s"))
	cart, err := svc.GetCart(ctx, "s")
	require.NoError(t, err)
	require.True(t, cart.IsEmpty())
	require.True(t, cart.Total.IsZero())
}

func TestMissingSession(t *testing.T) {
	svc := newTestService(time.Now())
	_, err := svc.GetCart(context.Background(), " ")
	require.ErrorIs(t, err, ErrMissingSession)
	require.ErrorIs(t, svc.ClearCart(context.Background(), ""), ErrMissingSession)
}

func TestRemoveOrdered_KeepsLaterAdditions(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(time.Now())
	cart, err := svc.AddToCart(ctx, "s", camiseta, 2)
	require.NoError(t, err)
	ordered := cart.Clone().Items

	meia := domain.Product{ID: 2, Name: "Meia", Price: decimal.RequireFromString("12.50")}
	_, err = svc.AddToCart(ctx, "s", meia, 1)
	require.NoError(t, err)

	cart, err = svc.RemoveOrdered(ctx, "s", ordered)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	require.Equal(t, meia.ID, cart.Items[0].ID)
	require.True(t, cart.Total.Equal(decimal.RequireFromString("12.50")))
}

func TestUpdateQuantity_AboveMaxIsInvalidInput(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(time.Now())
	_, err := svc.AddToCart(ctx, "s", camiseta, domain.MaxQuantity)
	require.NoError(t, err)

	_, err = svc.AddToCart(ctx, "s", camiseta, 1)
	require.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.UpdateQuantity(ctx, "s", camiseta.ID, domain.MaxQuantity+1)
	require.ErrorIs(t, err, domain.ErrInvalidQuantity)

	cart, err := svc.GetCart(ctx, "s")
	require.NoError(t, err)
	require.Equal(t, domain.MaxQuantity, cart.ItemCount)
}

func TestSessionLocksAreReleased(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(time.Now())
	for _, session := range []string{"a", "b", "c"} {
		_, err := svc.AddToCart(ctx, session, camiseta, 1)
		require.NoError(t, err)
		require.NoError(t, svc.ClearCart(ctx, session))
	}
	require.Zero(t, svc.locks.Len())
}
