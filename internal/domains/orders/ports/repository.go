package ports

import (
	"context"
	"errors"

	"github.com/Apurer/storefront-api/internal/domains/orders/domain"
)

var ErrNotFound = errors.New("order not found")

// Repository persists orders as a header row plus dependent item rows.
type Repository interface {
	// CreateHeader stores the order without items and assigns ID and OrderNumber.
	CreateHeader(ctx context.Context, order *domain.Order) (*domain.Order, error)
	CreateItems(ctx context.Context, orderID string, items []domain.Item) ([]domain.Item, error)
	// DeleteOrder removes the items and then the header. Deleting an absent order is not an error.
	DeleteOrder(ctx context.Context, orderID string) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	GetByNumber(ctx context.Context, orderNumber string) (*domain.Order, error)
}
