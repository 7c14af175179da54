package workflows

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"

	cartdomain "github.com/Apurer/storefront-api/internal/domains/cart/domain"
	checkoutdomain "github.com/Apurer/storefront-api/internal/domains/checkout/domain"
	orderstore "github.com/Apurer/storefront-api/internal/domains/orders/adapters/datastore"
	"github.com/Apurer/storefront-api/internal/domains/orders/application"
	"github.com/Apurer/storefront-api/internal/domains/orders/application/types"
	"github.com/Apurer/storefront-api/internal/platform/datastore"
)

func TestInlineOrderWorkflowsDelegatesToService(t *testing.T) {
	svc := application.NewService(orderstore.NewRepository(datastore.NewMemoryStore()))
	orchestrator := NewInlineOrderWorkflows(svc)

	order, err := orchestrator.CreateOrder(context.Background(), types.CreateOrderInput{
		Items:    []cartdomain.LineItem{{ID: 3, Name: "Meia", Price: decimal.RequireFromString("12.50"), Quantity: 4}},
		Checkout: checkoutdomain.Data{ShippingMethod: checkoutdomain.ShippingPickup, PaymentMethod: checkoutdomain.PaymentBoleto},
	})
	require.NoError(t, err)
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("50.00")))
}

func TestTemporalOrderWorkflowsRequiresClient(t *testing.T) {
	_, err := NewTemporalOrderWorkflows(nil).CreateOrder(context.Background(), types.CreateOrderInput{})
	require.Error(t, err)
}

func TestWorkflowIDUsesSessionAndTrace(t *testing.T) {
	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID}))

	id := buildOrderCreationWorkflowID(types.CreateOrderInput{SessionID: "abc"}, workflowTraceComponent(ctx))
	assert.Equal(t, "order-creation-abc-4bf92f3577b34da6a3ce929d0e0e4736", id)
	assert.Contains(t, buildOrderCreationWorkflowID(types.CreateOrderInput{}, "t"), "anonymous")
}
