package orders

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/testsuite"
	"go.temporal.io/sdk/workflow"

	cartdomain "github.com/Apurer/storefront-api/internal/domains/cart/domain"
	checkoutdomain "github.com/Apurer/storefront-api/internal/domains/checkout/domain"
	orderstore "github.com/Apurer/storefront-api/internal/domains/orders/adapters/datastore"
	"github.com/Apurer/storefront-api/internal/domains/orders/application/types"
	"github.com/Apurer/storefront-api/internal/domains/orders/domain"
	"github.com/Apurer/storefront-api/internal/platform/datastore"
	orderactivities "github.com/Apurer/storefront-api/internal/platform/temporal/activities/orders"
)

type failingItemsStore struct {
	datastore.Store
}

func (f failingItemsStore) Insert(ctx context.Context, table string, records ...datastore.Record) ([]datastore.Record, error) {
	if table == orderstore.OrderItemsTable {
		return nil, errors.New("order_items unavailable")
	}
	return f.Store.Insert(ctx, table, records...)
}

func newEnv(t *testing.T, store datastore.Store) *testsuite.TestWorkflowEnvironment {
	t.Helper()
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()
	acts := orderactivities.NewActivities(orderstore.NewRepository(store))
	env.RegisterWorkflowWithOptions(OrderCreationWorkflow, workflow.RegisterOptions{Name: OrderCreationWorkflowName})
	env.RegisterActivityWithOptions(acts.CreateHeader, activity.RegisterOptions{Name: orderactivities.CreateHeaderActivityName})
	env.RegisterActivityWithOptions(acts.CreateItems, activity.RegisterOptions{Name: orderactivities.CreateItemsActivityName})
	env.RegisterActivityWithOptions(acts.DeleteOrder, activity.RegisterOptions{Name: orderactivities.DeleteOrderActivityName})
	return env
}

func workflowInput() OrderCreationWorkflowInput {
	return OrderCreationWorkflowInput{Command: types.CreateOrderInput{
		SessionID: "s",
		Items:     []cartdomain.LineItem{{ID: 1, Name: "Camiseta", Price: decimal.RequireFromString("49.90"), Quantity: 2}},
		Checkout: checkoutdomain.Data{
			CustomerName:   "Maria Silva",
			CustomerEmail:  "maria@example.com",
			CustomerPhone:  "11999999999",
			ShippingMethod: checkoutdomain.ShippingCorreiosPAC,
			PaymentMethod:  checkoutdomain.PaymentPix,
		},
	}}
}

func TestOrderCreationWorkflow_PersistsHeaderAndItems(t *testing.T) {
	store := datastore.NewMemoryStore()
	env := newEnv(t, store)

	env.ExecuteWorkflow(OrderCreationWorkflowName, workflowInput())
	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var order domain.Order
	require.NoError(t, env.GetWorkflowResult(&order))
	assert.NotEmpty(t, order.ID)
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("114.80")))
	require.Len(t, order.Items, 1)
	assert.Equal(t, 1, store.Len(orderstore.OrdersTable))
	assert.Equal(t, 1, store.Len(orderstore.OrderItemsTable))
}

func TestOrderCreationWorkflow_CompensatesHeader(t *testing.T) {
	mem := datastore.NewMemoryStore()
	env := newEnv(t, failingItemsStore{Store: mem})

	env.ExecuteWorkflow(OrderCreationWorkflowName, workflowInput())
	require.True(t, env.IsWorkflowCompleted())
	err := env.GetWorkflowError()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "order_items unavailable")
	assert.Zero(t, mem.Len(orderstore.OrdersTable), "header must be compensated")
}

func TestOrderCreationWorkflow_RejectsInvalidInputWithoutWrites(t *testing.T) {
	store := datastore.NewMemoryStore()
	env := newEnv(t, store)
	input := workflowInput()
	input.Command.Items = nil

	env.ExecuteWorkflow(OrderCreationWorkflowName, input)
	require.True(t, env.IsWorkflowCompleted())
	require.Error(t, env.GetWorkflowError())
	assert.Zero(t, store.Len(orderstore.OrdersTable))
}
