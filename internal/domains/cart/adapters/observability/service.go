package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/storefront-api/internal/domains/cart/domain"
	"github.com/Apurer/storefront-api/internal/domains/cart/ports"
)

const tracerName = "github.com/Apurer/storefront-api/internal/domains/cart/adapters/observability/service"

// Service decorates the cart application port with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

// WithMeter injects the meter used to create service metrics instruments.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wires a decorator around the core service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

func (s *Service) GetCart(ctx context.Context, sessionID string) (*domain.Cart, error) {
	ctx, span := s.tracer.Start(ctx, "Service.GetCart")
	defer span.End()

	cart, err := s.inner.GetCart(ctx, sessionID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load cart")
	}
	span.SetAttributes(attribute.Int("cart.item_count", cart.ItemCount))
	return cart, nil
}

// AddToCart records the added quantity under cart.service.items_added.
func (s *Service) AddToCart(ctx context.Context, sessionID string, product domain.Product, quantity int) (*domain.Cart, error) {
	ctx, span := s.tracer.Start(ctx, "Service.AddToCart", trace.WithAttributes(
		attribute.Int64("product.id", product.ID),
		attribute.Int("cart.quantity", quantity),
	))
	defer span.End()

	cart, err := s.inner.AddToCart(ctx, sessionID, product, quantity)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to add product to cart", slog.Int64("product.id", product.ID))
	}
	s.metrics.recordItemsAdded(ctx, quantity)
	s.logger.LogAttrs(ctx, slog.LevelInfo, "product added to cart",
		slog.Int64("product.id", product.ID),
		slog.Int("quantity", quantity),
		slog.Int("cart.item_count", cart.ItemCount),
	)
	return cart, nil
}

func (s *Service) UpdateQuantity(ctx context.Context, sessionID string, productID int64, quantity int) (*domain.Cart, error) {
	ctx, span := s.tracer.Start(ctx, "Service.UpdateQuantity", trace.WithAttributes(
		attribute.Int64("product.id", productID),
		attribute.Int("cart.quantity", quantity),
	))
	defer span.End()

	cart, err := s.inner.UpdateQuantity(ctx, sessionID, productID, quantity)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update cart quantity", slog.Int64("product.id", productID))
	}
	return cart, nil
}

func (s *Service) RemoveFromCart(ctx context.Context, sessionID string, productID int64) (*domain.Cart, error) {
	ctx, span := s.tracer.Start(ctx, "Service.RemoveFromCart", trace.WithAttributes(attribute.Int64("product.id", productID)))
	defer span.End()

	cart, err := s.inner.RemoveFromCart(ctx, sessionID, productID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to remove product from cart", slog.Int64("product.id", productID))
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "product removed from cart", slog.Int64("product.id", productID))
	return cart, nil
}

func (s *Service) RemoveOrdered(ctx context.Context, sessionID string, ordered []domain.LineItem) (*domain.Cart, error) {
	ctx, span := s.tracer.Start(ctx, "Service.RemoveOrdered", trace.WithAttributes(attribute.Int("cart.ordered_lines", len(ordered))))
	defer span.End()

	cart, err := s.inner.RemoveOrdered(ctx, sessionID, ordered)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to remove ordered items from cart")
	}
	if cart.IsEmpty() {
		s.metrics.recordCleared(ctx)
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "ordered items removed from cart",
		slog.Int("cart.ordered_lines", len(ordered)),
		slog.Int("cart.item_count", cart.ItemCount),
	)
	return cart, nil
}

func (s *Service) ClearCart(ctx context.Context, sessionID string) error {
	ctx, span := s.tracer.Start(ctx, "Service.ClearCart")
	defer span.End()

	if err := s.inner.ClearCart(ctx, sessionID); err != nil {
		return s.handleError(ctx, span, err, "failed to clear cart")
	}
	s.metrics.recordCleared(ctx)
	s.logger.LogAttrs(ctx, slog.LevelInfo, "cart cleared")
	return nil
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	attrs = append(attrs, slog.String("error", err.Error()))
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	return err
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceMetrics struct {
	itemsAdded   metric.Int64Counter
	cartsCleared metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	itemsAdded, _ := m.Int64Counter("cart.service.items_added", metric.WithDescription("Units added to shopping carts"))
	cartsCleared, _ := m.Int64Counter("cart.service.carts_cleared", metric.WithDescription("Number of carts emptied"))
	return serviceMetrics{itemsAdded: itemsAdded, cartsCleared: cartsCleared}
}

func (m serviceMetrics) recordItemsAdded(ctx context.Context, quantity int) {
	if m.itemsAdded == nil {
		return
	}
	m.itemsAdded.Add(ctx, int64(quantity))
}

func (m serviceMetrics) recordCleared(ctx context.Context) {
	if m.cartsCleared == nil {
		return
	}
	m.cartsCleared.Add(ctx, 1)
}

var _ ports.Service = (*Service)(nil)
