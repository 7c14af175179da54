package sequences

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/storefront-api/internal/domains/orders/application/types"
	"github.com/Apurer/storefront-api/internal/domains/orders/domain"
	orderactivities "github.com/Apurer/storefront-api/internal/platform/temporal/activities/orders"
)

// InvalidOrderErrorType tags non-retryable failures caused by the order input itself.
const InvalidOrderErrorType = "InvalidOrder"

// RunOrderCreationSequence writes the header, then the items, and deletes the
// header again on a disconnected context when the items cannot be written.
func RunOrderCreationSequence(ctx workflow.Context, input types.CreateOrderInput) (*domain.Order, error) {
	logger := workflow.GetLogger(ctx)
	writeOptions := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
		},
	}
	compensateOptions := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    30 * time.Second,
			MaximumAttempts:    10,
		},
	}

	order, err := domain.BuildOrder(input.Items, input.Checkout)
	if err != nil {
		return nil, temporal.NewNonRetryableApplicationError(err.Error(), InvalidOrderErrorType, err)
	}

	var orderID string
	if err := workflow.SideEffect(ctx, func(workflow.Context) interface{} {
		return uuid.NewString()
	}).Get(&orderID); err != nil {
		return nil, err
	}
	header := order.Header()
	header.ID = orderID
	logger.Info("order creation sequence started", "orderId", orderID, "items", len(order.Items))

	writeCtx := workflow.WithActivityOptions(ctx, writeOptions)
	var created domain.Order
	if err := workflow.ExecuteActivity(writeCtx, orderactivities.CreateHeaderActivityName, header).Get(ctx, &created); err != nil {
		logger.Error("order header write failed", "orderId", orderID, "error", err)
		return nil, err
	}

	var items []domain.Item
	itemsInput := types.CreateItemsInput{OrderID: created.ID, Items: order.Items}
	if err := workflow.ExecuteActivity(writeCtx, orderactivities.CreateItemsActivityName, itemsInput).Get(ctx, &items); err != nil {
		logger.Error("order items write failed; compensating", "orderId", created.ID, "error", err)
		disconnected, _ := workflow.NewDisconnectedContext(ctx)
		compensateCtx := workflow.WithActivityOptions(disconnected, compensateOptions)
		if cErr := workflow.ExecuteActivity(compensateCtx, orderactivities.DeleteOrderActivityName, types.OrderIdentifier{ID: created.ID}).Get(compensateCtx, nil); cErr != nil {
			logger.Error("order compensation failed", "orderId", created.ID, "error", cErr)
			return nil, errors.Join(err, fmt.Errorf("delete order %s: %w", created.ID, cErr))
		}
		return nil, err
	}
	created.Items = items
	logger.Info("order creation sequence completed", "orderId", created.ID, "orderNumber", created.OrderNumber)
	return &created, nil
}
