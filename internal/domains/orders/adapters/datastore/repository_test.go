package datastore

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartdomain "github.com/Apurer/storefront-api/internal/domains/cart/domain"
	checkoutdomain "github.com/Apurer/storefront-api/internal/domains/checkout/domain"
	"github.com/Apurer/storefront-api/internal/domains/orders/domain"
	"github.com/Apurer/storefront-api/internal/domains/orders/ports"
	"github.com/Apurer/storefront-api/internal/platform/datastore"
)

func newMemoryStore() *datastore.MemoryStore {
	return datastore.NewMemoryStore(datastore.WithUniqueColumn(OrdersTable, "order_number"))
}

func sampleOrder(t *testing.T) *domain.Order {
	t.Helper()
	billing := checkoutdomain.Address{Street: "Av. Paulista", Number: "1000", Neighborhood: "Bela Vista", City: "São Paulo", State: "SP", ZipCode: "01310-100"}
	order, err := domain.BuildOrder(
		[]cartdomain.LineItem{
			{ID: 1, Name: "Camiseta", Price: decimal.RequireFromString("49.90"), Quantity: 2, Size: "M"},
			{ID: 2, Name: "Boné", Price: decimal.RequireFromString("39.90"), Quantity: 1, Color: "preto"},
		},
		checkoutdomain.Data{
			CustomerName:    "Maria Silva",
			CustomerEmail:   "maria@example.com",
			CustomerPhone:   "11999999999",
			ShippingAddress: checkoutdomain.Address{Street: "Rua das Flores", Number: "123", Neighborhood: "Centro", City: "São Paulo", State: "SP", ZipCode: "01000-000"},
			BillingAddress:  &billing,
			ShippingMethod:  checkoutdomain.ShippingCorreiosPAC,
			PaymentMethod:   checkoutdomain.PaymentCreditCard,
		},
	)
	require.NoError(t, err)
	return order
}

func TestCreateAndLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 14, 18, 30, 0, 0, time.UTC)
	repo := NewRepository(newMemoryStore(), WithClock(func() time.Time { return now }))
	order := sampleOrder(t)

	header, err := repo.CreateHeader(ctx, order)
	require.NoError(t, err)
	require.NotEmpty(t, header.ID)
	assert.Regexp(t, `^ORD-20261014-[0-9A-F]{6}$`, header.OrderNumber)
	assert.Empty(t, header.Items)

	items, err := repo.CreateItems(ctx, header.ID, order.Items)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, header.ID, items[0].OrderID)

	loaded, err := repo.GetByNumber(ctx, header.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, header.ID, loaded.ID)
	assert.Equal(t, "Rua das Flores", loaded.ShippingAddress.Street)
	require.NotNil(t, loaded.BillingAddress)
	assert.Equal(t, "Av. Paulista", loaded.BillingAddress.Street)
	assert.True(t, loaded.TotalAmount.Equal(order.TotalAmount))
	require.Len(t, loaded.Items, 2)
	assert.Equal(t, int64(1), loaded.Items[0].ProductID)
	assert.Equal(t, "M", loaded.Items[0].Size)
	assert.Equal(t, int64(2), loaded.Items[1].ProductID)
	require.NoError(t, loaded.Validate())

	byID, err := repo.GetByID(ctx, header.ID)
	require.NoError(t, err)
	assert.Equal(t, header.OrderNumber, byID.OrderNumber)
}

func TestCreateHeaderRetriesDuplicateOrderNumber(t *testing.T) {
	ctx := context.Background()
	numbers := []string{"ORD-20261014-AAAAAA", "ORD-20261014-AAAAAA", "ORD-20261014-BBBBBB"}
	calls := 0
	repo := NewRepository(newMemoryStore(), WithOrderNumbers(func(time.Time) string {
		n := numbers[calls]
		calls++
		return n
	}))

	first, err := repo.CreateHeader(ctx, sampleOrder(t))
	require.NoError(t, err)
	assert.Equal(t, "ORD-20261014-AAAAAA", first.OrderNumber)

	second, err := repo.CreateHeader(ctx, sampleOrder(t))
	require.NoError(t, err)
	assert.Equal(t, "ORD-20261014-BBBBBB", second.OrderNumber)
	assert.Equal(t, 3, calls)
}

func TestCreateHeaderGivesUpAfterThreeCollisions(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(newMemoryStore(), WithOrderNumbers(func(time.Time) string { return "ORD-20261014-FIXED0" }))
	_, err := repo.CreateHeader(ctx, sampleOrder(t))
	require.NoError(t, err)

	_, err = repo.CreateHeader(ctx, sampleOrder(t))
	require.ErrorIs(t, err, datastore.ErrDuplicateKey)
}

func TestDeleteOrderRemovesItemsThenHeader(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	repo := NewRepository(store)
	order := sampleOrder(t)

	header, err := repo.CreateHeader(ctx, order)
	require.NoError(t, err)
	_, err = repo.CreateItems(ctx, header.ID, order.Items)
	require.NoError(t, err)

	require.NoError(t, repo.DeleteOrder(ctx, header.ID))
	assert.Zero(t, store.Len(OrdersTable))
	assert.Zero(t, store.Len(OrderItemsTable))
	_, err = repo.GetByID(ctx, header.ID)
	require.ErrorIs(t, err, ports.ErrNotFound)

	require.NoError(t, repo.DeleteOrder(ctx, header.ID), "deleting twice is a no-op")
}

func TestGetByNumberNotFound(t *testing.T) {
	_, err := NewRepository(newMemoryStore()).GetByNumber(context.Background(), "ORD-NOPE")
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestAsDecimalAcceptsDriverRepresentations(t *testing.T) {
	for _, value := range []any{"114.80", []byte("114.80"), decimal.RequireFromString("114.8"), 114.8} {
		got, err := asDecimal(value)
		require.NoError(t, err)
		assert.True(t, got.Equal(decimal.RequireFromString("114.80")), "%T", value)
	}
}
