package application

import (
	"context"
	"strings"
	"time"

	"github.com/Apurer/storefront-api/internal/domains/cart/domain"
	"github.com/Apurer/storefront-api/internal/domains/cart/ports"
	"github.com/Apurer/storefront-api/internal/shared/sessionlock"
)

// Service orchestrates the cart use cases for each browsing session.
type Service struct {
	repo  ports.Repository
	now   func() time.Time
	locks sessionlock.Locks
}

// Option configures the cart service.
type Option func(*Service)

// WithClock overrides the time source used for the "just added" notice.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService wires the cart service with its repository.
func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{repo: repo, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// GetCart returns the session cart.
func (s *Service) GetCart(ctx context.Context, sessionID string) (*domain.Cart, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, ErrMissingSession
	}
	return s.repo.Load(ctx, sessionID)
}

// AddToCart merges the product into the session cart.
func (s *Service) AddToCart(ctx context.Context, sessionID string, product domain.Product, quantity int) (*domain.Cart, error) {
	return s.mutate(ctx, sessionID, func(c *domain.Cart) error {
		return c.Add(product, quantity, s.now())
	})
}

// UpdateQuantity replaces a line item quantity; non-positive values remove it.
func (s *Service) UpdateQuantity(ctx context.Context, sessionID string, productID int64, quantity int) (*domain.Cart, error) {
	return s.mutate(ctx, sessionID, func(c *domain.Cart) error {
		return c.UpdateQuantity(productID, quantity)
	})
}

// RemoveFromCart drops a line item.
func (s *Service) RemoveFromCart(ctx context.Context, sessionID string, productID int64) (*domain.Cart, error) {
	return s.mutate(ctx, sessionID, func(c *domain.Cart) error {
		c.Remove(productID)
		return nil
	})
}

// RemoveOrdered deducts the ordered lines from the session cart.
func (s *Service) RemoveOrdered(ctx context.Context, sessionID string, ordered []domain.LineItem) (*domain.Cart, error) {
	return s.mutate(ctx, sessionID, func(c *domain.Cart) error {
		c.Deduct(ordered)
		return nil
	})
}

// ClearCart empties the session cart.
func (s *Service) ClearCart(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return ErrMissingSession
	}
	unlock := s.locks.Lock(sessionID)
	defer unlock()
	return s.repo.Delete(ctx, sessionID)
}

// mutate serializes load-modify-save per session.
func (s *Service) mutate(ctx context.Context, sessionID string, apply func(*domain.Cart) error) (*domain.Cart, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, ErrMissingSession
	}
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	cart, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := apply(cart); err != nil {
		return nil, mapError(err)
	}
	if err := s.repo.Save(ctx, sessionID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

var _ ports.Service = (*Service)(nil)
