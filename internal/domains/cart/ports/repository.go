package ports

import (
	"context"

	"github.com/Apurer/storefront-api/internal/domains/cart/domain"
)

// Repository keeps one cart per browsing session.
type Repository interface {
	// Load returns the session cart, or an empty cart when the session has none.
	Load(ctx context.Context, sessionID string) (*domain.Cart, error)
	Save(ctx context.Context, sessionID string, cart *domain.Cart) error
	Delete(ctx context.Context, sessionID string) error
}
