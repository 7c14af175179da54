package ports

import (
	"context"

	"github.com/Apurer/storefront-api/internal/domains/favorites/domain"
)

// View is the favorites collection as seen by a session at a point in time.
type View struct {
	Items           []domain.Item
	FeedbackVisible bool
}

// Service exposes the favorites use cases to adapters.
type Service interface {
	List(ctx context.Context, sessionID string) (View, error)
	Toggle(ctx context.Context, sessionID string, item domain.Item) (domain.ToggleResult, View, error)
	Favorite(ctx context.Context, sessionID string, item domain.Item) (View, error)
	Unfavorite(ctx context.Context, sessionID string, productID int64) (View, error)
	IsFavorite(ctx context.Context, sessionID string, productID int64) (bool, error)
	Clear(ctx context.Context, sessionID string) error
}
