package orders

import (
	"context"
	"errors"
	"strings"

	"go.temporal.io/sdk/activity"

	"github.com/Apurer/storefront-api/internal/domains/orders/application/types"
	"github.com/Apurer/storefront-api/internal/domains/orders/domain"
	orderports "github.com/Apurer/storefront-api/internal/domains/orders/ports"
)

const (
	// CreateHeaderActivityName writes the order header row.
	CreateHeaderActivityName = "orders.activities.CreateHeader"
	// CreateItemsActivityName writes the order item rows as one batch.
	CreateItemsActivityName = "orders.activities.CreateItems"
	// DeleteOrderActivityName compensates a header whose items could not be written.
	DeleteOrderActivityName = "orders.activities.DeleteOrder"
)

var errNotInitialized = errors.New("order activities not initialized")

// Activities groups the order persistence steps executed by the creation workflow.
// Each activity tolerates being retried after a partially observed success.
type Activities struct {
	repo orderports.Repository
}

func NewActivities(repo orderports.Repository) *Activities {
	return &Activities{repo: repo}
}

// CreateHeader persists the header. The workflow assigns the id up front, so a
// retry finds the row written by an earlier attempt and returns it.
func (a *Activities) CreateHeader(ctx context.Context, header *domain.Order) (*domain.Order, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.repo == nil {
		return nil, errNotInitialized
	}
	if header == nil || strings.TrimSpace(header.ID) == "" {
		return nil, errors.New("order header requires an id")
	}
	if existing, err := a.repo.GetByID(ctx, header.ID); err == nil {
		logger.Info("CreateHeader found header from earlier attempt", "orderId", header.ID)
		return existing.Header(), nil
	} else if !errors.Is(err, orderports.ErrNotFound) {
		return nil, err
	}
	created, err := a.repo.CreateHeader(ctx, header)
	if err != nil {
		logger.Error("CreateHeader activity failed", "orderId", header.ID, "error", err)
		return nil, err
	}
	logger.Info("CreateHeader activity completed", "orderId", created.ID, "orderNumber", created.OrderNumber)
	return created, nil
}

// CreateItems writes the order lines unless an earlier attempt already did.
func (a *Activities) CreateItems(ctx context.Context, input types.CreateItemsInput) ([]domain.Item, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.repo == nil {
		return nil, errNotInitialized
	}
	existing, err := a.repo.GetByID(ctx, input.OrderID)
	if err != nil {
		logger.Error("CreateItems could not load order", "orderId", input.OrderID, "error", err)
		return nil, err
	}
	if len(existing.Items) > 0 {
		logger.Info("CreateItems found items from earlier attempt", "orderId", input.OrderID)
		return existing.Items, nil
	}
	items, err := a.repo.CreateItems(ctx, input.OrderID, input.Items)
	if err != nil {
		logger.Error("CreateItems activity failed", "orderId", input.OrderID, "error", err)
		return nil, err
	}
	logger.Info("CreateItems activity completed", "orderId", input.OrderID, "count", len(items))
	return items, nil
}

func (a *Activities) DeleteOrder(ctx context.Context, input types.OrderIdentifier) error {
	logger := activity.GetLogger(ctx)
	if a == nil || a.repo == nil {
		return errNotInitialized
	}
	if err := a.repo.DeleteOrder(ctx, input.ID); err != nil {
		logger.Error("DeleteOrder activity failed", "orderId", input.ID, "error", err)
		return err
	}
	logger.Info("DeleteOrder activity completed", "orderId", input.ID)
	return nil
}
