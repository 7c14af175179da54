package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Apurer/storefront-api/internal/domains/orders/application/types"
	"github.com/Apurer/storefront-api/internal/domains/orders/domain"
	"github.com/Apurer/storefront-api/internal/domains/orders/ports"
)

// Service orchestrates order use cases.
type Service struct {
	repo   ports.Repository
	logger *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{repo: repo, logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// CreateOrder writes the header, then the items. When the item write fails the
// header is deleted again before the failure is returned, so no header is ever
// left without items.
func (s *Service) CreateOrder(ctx context.Context, input types.CreateOrderInput) (*domain.Order, error) {
	order, err := domain.BuildOrder(input.Items, input.Checkout)
	if err != nil {
		return nil, mapError(err)
	}

	header, err := s.repo.CreateHeader(ctx, order.Header())
	if err != nil {
		return nil, fmt.Errorf("%w: create header: %w", ErrOrderNotCreated, err)
	}

	items, err := s.repo.CreateItems(ctx, header.ID, order.Items)
	if err != nil {
		return nil, s.compensate(ctx, header, err)
	}
	header.Items = items
	return header, nil
}

func (s *Service) compensate(ctx context.Context, header *domain.Order, cause error) error {
	s.logger.ErrorContext(ctx, "order items write failed; deleting header",
		slog.String("order.id", header.ID),
		slog.String("order.number", header.OrderNumber),
		slog.String("error", cause.Error()),
	)
	if err := s.repo.DeleteOrder(context.WithoutCancel(ctx), header.ID); err != nil {
		s.logger.ErrorContext(ctx, "order compensation failed",
			slog.String("order.id", header.ID),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("%w: create items: %w", ErrOrderNotCreated, errors.Join(cause, fmt.Errorf("delete order %s: %w", header.ID, err)))
	}
	return fmt.Errorf("%w (%w): create items: %w", ErrOrderNotCreated, ErrCompensated, cause)
}

func (s *Service) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ports.ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetOrderByNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	if strings.TrimSpace(orderNumber) == "" {
		return nil, ports.ErrNotFound
	}
	return s.repo.GetByNumber(ctx, orderNumber)
}

var _ ports.Service = (*Service)(nil)
