package application

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartmemory "github.com/Apurer/storefront-api/internal/domains/cart/adapters/memory"
	cartapp "github.com/Apurer/storefront-api/internal/domains/cart/application"
	cartdomain "github.com/Apurer/storefront-api/internal/domains/cart/domain"
	checkoutmemory "github.com/Apurer/storefront-api/internal/domains/checkout/adapters/memory"
	checkoutorders "github.com/Apurer/storefront-api/internal/domains/checkout/adapters/orders"
	"github.com/Apurer/storefront-api/internal/domains/checkout/domain"
	"github.com/Apurer/storefront-api/internal/domains/checkout/ports"
	orderstore "github.com/Apurer/storefront-api/internal/domains/orders/adapters/datastore"
	orderworkflows "github.com/Apurer/storefront-api/internal/domains/orders/adapters/workflows"
	orderapp "github.com/Apurer/storefront-api/internal/domains/orders/application"
	"github.com/Apurer/storefront-api/internal/platform/datastore"
)

type placerFunc func(ctx context.Context, sessionID string, items []cartdomain.LineItem, data domain.Data) (domain.PlacedOrder, error)

func (f placerFunc) PlaceOrder(ctx context.Context, sessionID string, items []cartdomain.LineItem, data domain.Data) (domain.PlacedOrder, error) {
	return f(ctx, sessionID, items, data)
}

type fixture struct {
	carts *cartapp.Service
	svc   *Service
	store *datastore.MemoryStore
}

func newFixture(t *testing.T, placer ports.OrderPlacer) fixture {
	t.Helper()
	carts := cartapp.NewService(cartmemory.NewRepository())
	store := datastore.NewMemoryStore()
	if placer == nil {
		orders := orderapp.NewService(orderstore.NewRepository(store))
		placer = checkoutorders.NewPlacer(orderworkflows.NewInlineOrderWorkflows(orders))
	}
	return fixture{carts: carts, svc: NewService(checkoutmemory.NewRepository(), carts, placer), store: store}
}

func (f fixture) addCamiseta(t *testing.T, sessionID string) {
	t.Helper()
	_, err := f.carts.AddToCart(context.Background(), sessionID, cartdomain.Product{ID: 1, Name: "Camiseta", Price: decimal.RequireFromString("49.90")}, 2)
	require.NoError(t, err)
}

func (f fixture) fillSteps(t *testing.T, sessionID string) {
	t.Helper()
	ctx := context.Background()
	_, err := f.svc.Begin(ctx, sessionID)
	require.NoError(t, err)
	_, err = f.svc.UpdateCustomer(ctx, sessionID, ports.CustomerInput{Name: "Maria Silva", Email: "maria@example.com", Phone: "11999999999"})
	require.NoError(t, err)
	_, err = f.svc.Next(ctx, sessionID)
	require.NoError(t, err)
	_, err = f.svc.UpdateShippingAddress(ctx, sessionID, domain.Address{Street: "Rua das Flores", Number: "123", Neighborhood: "Centro", City: "São Paulo", State: "SP", ZipCode: "01000-000"})
	require.NoError(t, err)
	_, err = f.svc.Next(ctx, sessionID)
	require.NoError(t, err)
	_, err = f.svc.SelectShippingMethod(ctx, sessionID, domain.ShippingCorreiosPAC)
	require.NoError(t, err)
	summary, err := f.svc.Next(ctx, sessionID)
	require.NoError(t, err)
	require.Equal(t, domain.StepPaymentMethod, summary.Step)
}

func TestBegin_EmptyCartNeverStarts(t *testing.T) {
	f := newFixture(t, nil)
	_, err := f.svc.Begin(context.Background(), "s")
	require.ErrorIs(t, err, domain.ErrEmptyCart)

	_, err = f.svc.Get(context.Background(), "s")
	require.ErrorIs(t, err, ErrNotStarted)
}

func TestNext_ValidationFailureIsKeptOnStep(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	f.addCamiseta(t, "s")
	_, err := f.svc.Begin(ctx, "s")
	require.NoError(t, err)

	_, err = f.svc.Next(ctx, "s")
	require.ErrorIs(t, err, domain.ErrValidation)

	summary, err := f.svc.Get(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, domain.StepCustomerInfo, summary.Step)
	assert.Equal(t, domain.CustomerInfoMessage, summary.Banner)
}

func TestSubmit_CreatesOrderAndClearsCart(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	f.addCamiseta(t, "s")
	f.fillSteps(t, "s")

	before, err := f.svc.Get(ctx, "s")
	require.NoError(t, err)
	assert.True(t, before.FinalTotal.Equal(decimal.RequireFromString("114.80")))

	summary, err := f.svc.Submit(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, domain.StepSuccess, summary.Step)
	require.NotNil(t, summary.Order)
	assert.NotEmpty(t, summary.Order.OrderNumber)
	assert.True(t, summary.FinalTotal.Equal(decimal.RequireFromString("114.80")))

	cart, err := f.carts.GetCart(ctx, "s")
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
	assert.Equal(t, 1, f.store.Len(orderstore.OrdersTable))
	assert.Equal(t, 1, f.store.Len(orderstore.OrderItemsTable))
}

func TestSubmit_FailureReturnsToPaymentAndKeepsCart(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, placerFunc(func(context.Context, string, []cartdomain.LineItem, domain.Data) (domain.PlacedOrder, error) {
		return domain.PlacedOrder{}, errors.New("insert order_items: timeout")
	}))
	f.addCamiseta(t, "s")
	f.fillSteps(t, "s")

	_, err := f.svc.Submit(ctx, "s")
	require.ErrorIs(t, err, ErrOrderFailed)

	summary, err := f.svc.Get(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, domain.StepPaymentMethod, summary.Step)
	assert.Equal(t, domain.SubmissionFailedMessage, summary.Banner)

	cart, err := f.carts.GetCart(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, 2, cart.ItemCount)
}

func TestSubmit_SecondSubmissionWhilePendingIsRejected(t *testing.T) {
	ctx := context.Background()
	entered := make(chan struct{})
	release := make(chan struct{})
	f := newFixture(t, placerFunc(func(context.Context, string, []cartdomain.LineItem, domain.Data) (domain.PlacedOrder, error) {
		close(entered)
		<-release
		return domain.PlacedOrder{ID: "1", OrderNumber: "ORD-20261014-AAAAAA"}, nil
	}))
	f.addCamiseta(t, "s")
	f.fillSteps(t, "s")

	done := make(chan error, 1)
	go func() {
		_, err := f.svc.Submit(ctx, "s")
		done <- err
	}()
	<-entered

	_, err := f.svc.Submit(ctx, "s")
	require.ErrorIs(t, err, domain.ErrSubmissionInProgress)
	summary, err := f.svc.Begin(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, domain.StepSubmitting, summary.Step)

	close(release)
	require.NoError(t, <-done)
}

func TestSubmit_KeepsItemsAddedWhileOrderIsPlaced(t *testing.T) {
	ctx := context.Background()
	var f fixture
	f = newFixture(t, placerFunc(func(ctx context.Context, sessionID string, items []cartdomain.LineItem, _ domain.Data) (domain.PlacedOrder, error) {
		require.Len(t, items, 1)
		_, err := f.carts.AddToCart(ctx, sessionID, cartdomain.Product{ID: 2, Name: "Meia", Price: decimal.RequireFromString("12.50")}, 1)
		require.NoError(t, err)
		_, err = f.carts.AddToCart(ctx, sessionID, cartdomain.Product{ID: 1, Name: "Camiseta", Price: decimal.RequireFromString("49.90")}, 1)
		require.NoError(t, err)
		return domain.PlacedOrder{ID: "1", OrderNumber: "ORD-20261014-BBBBBB"}, nil
	}))
	f.addCamiseta(t, "s")
	f.fillSteps(t, "s")

	summary, err := f.svc.Submit(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, domain.StepSuccess, summary.Step)

	cart, err := f.carts.GetCart(ctx, "s")
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)
	camiseta, ok := cart.Item(1)
	require.True(t, ok)
	assert.Equal(t, 1, camiseta.Quantity)
	assert.Equal(t, 2, cart.ItemCount)
	assert.Zero(t, f.svc.locks.Len())
}

func TestSubmit_RevalidatesEarlierSteps(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	f.addCamiseta(t, "s")
	f.fillSteps(t, "s")
	_, err := f.svc.UpdateCustomer(ctx, "s", ports.CustomerInput{Name: "Maria Silva"})
	require.NoError(t, err)

	_, err = f.svc.Submit(ctx, "s")
	require.ErrorIs(t, err, domain.ErrValidation)
	summary, err := f.svc.Get(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, domain.StepCustomerInfo, summary.Step)
	assert.Zero(t, f.store.Len(orderstore.OrdersTable))
}

func TestBegin_ResumesAndRestarts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	f.addCamiseta(t, "s")
	f.fillSteps(t, "s")

	resumed, err := f.svc.Begin(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, domain.StepPaymentMethod, resumed.Step)

	for i := 0; i < 4; i++ {
		_, err = f.svc.Back(ctx, "s")
		require.NoError(t, err)
	}
	exited, err := f.svc.Get(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, domain.StepExited, exited.Step)

	restarted, err := f.svc.Begin(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, domain.StepCustomerInfo, restarted.Step)
	assert.Empty(t, restarted.Data.CustomerName)
}

func TestSelectUnknownMethodIsInvalidInput(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	f.addCamiseta(t, "s")
	_, err := f.svc.Begin(ctx, "s")
	require.NoError(t, err)

	_, err = f.svc.SelectPaymentMethod(ctx, "s", "cheque")
	require.ErrorIs(t, err, ErrInvalidInput)
	_, err = f.svc.SelectShippingMethod(ctx, "", domain.ShippingPickup)
	require.ErrorIs(t, err, ErrMissingSession)
}
