package ports

import (
	"context"

	"github.com/Apurer/storefront-api/internal/domains/cart/domain"
)

// Service exposes the cart use cases to adapters.
type Service interface {
	GetCart(ctx context.Context, sessionID string) (*domain.Cart, error)
	AddToCart(ctx context.Context, sessionID string, product domain.Product, quantity int) (*domain.Cart, error)
	UpdateQuantity(ctx context.Context, sessionID string, productID int64, quantity int) (*domain.Cart, error)
	RemoveFromCart(ctx context.Context, sessionID string, productID int64) (*domain.Cart, error)
	RemoveOrdered(ctx context.Context, sessionID string, ordered []domain.LineItem) (*domain.Cart, error)
	ClearCart(ctx context.Context, sessionID string) error
}
