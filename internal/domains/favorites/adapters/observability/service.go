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

	"github.com/Apurer/storefront-api/internal/domains/favorites/domain"
	"github.com/Apurer/storefront-api/internal/domains/favorites/ports"
)

const tracerName = "github.com/Apurer/storefront-api/internal/domains/favorites/adapters/observability/service"

// Service decorates the favorites port with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	toggled metric.Int64Counter
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

// WithMeter registers the favorites.service.toggled counter.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		if m == nil {
			return
		}
		s.toggled, _ = m.Int64Counter("favorites.service.toggled", metric.WithDescription("Favorite toggles by result"))
	}
}

func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{inner: inner}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s
}

func (s *Service) List(ctx context.Context, sessionID string) (ports.View, error) {
	ctx, span := s.tracer.Start(ctx, "Service.List")
	defer span.End()
	view, err := s.inner.List(ctx, sessionID)
	if err != nil {
		return ports.View{}, s.fail(ctx, span, err, "failed to list favorites")
	}
	span.SetAttributes(attribute.Int("favorites.count", len(view.Items)))
	return view, nil
}

func (s *Service) Toggle(ctx context.Context, sessionID string, item domain.Item) (domain.ToggleResult, ports.View, error) {
	ctx, span := s.tracer.Start(ctx, "Service.Toggle", trace.WithAttributes(attribute.Int64("product.id", item.ID)))
	defer span.End()
	result, view, err := s.inner.Toggle(ctx, sessionID, item)
	if err != nil {
		return "", ports.View{}, s.fail(ctx, span, err, "failed to toggle favorite", slog.Int64("product.id", item.ID))
	}
	span.SetAttributes(attribute.String("favorites.toggle", string(result)))
	if s.toggled != nil {
		s.toggled.Add(ctx, 1, metric.WithAttributes(attribute.String("result", string(result))))
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "favorite toggled", slog.Int64("product.id", item.ID), slog.String("result", string(result)))
	return result, view, nil
}

func (s *Service) Favorite(ctx context.Context, sessionID string, item domain.Item) (ports.View, error) {
	ctx, span := s.tracer.Start(ctx, "Service.Favorite", trace.WithAttributes(attribute.Int64("product.id", item.ID)))
	defer span.End()
	view, err := s.inner.Favorite(ctx, sessionID, item)
	if err != nil {
		return ports.View{}, s.fail(ctx, span, err, "failed to favorite product", slog.Int64("product.id", item.ID))
	}
	return view, nil
}

func (s *Service) Unfavorite(ctx context.Context, sessionID string, productID int64) (ports.View, error) {
	ctx, span := s.tracer.Start(ctx, "Service.Unfavorite", trace.WithAttributes(attribute.Int64("product.id", productID)))
	defer span.End()
	view, err := s.inner.Unfavorite(ctx, sessionID, productID)
	if err != nil {
		return ports.View{}, s.fail(ctx, span, err, "failed to unfavorite product", slog.Int64("product.id", productID))
	}
	return view, nil
}

func (s *Service) IsFavorite(ctx context.Context, sessionID string, productID int64) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "Service.IsFavorite", trace.WithAttributes(attribute.Int64("product.id", productID)))
	defer span.End()
	ok, err := s.inner.IsFavorite(ctx, sessionID, productID)
	if err != nil {
		return false, s.fail(ctx, span, err, "failed to check favorite", slog.Int64("product.id", productID))
	}
	return ok, nil
}

func (s *Service) Clear(ctx context.Context, sessionID string) error {
	ctx, span := s.tracer.Start(ctx, "Service.Clear")
	defer span.End()
	if err := s.inner.Clear(ctx, sessionID); err != nil {
		return s.fail(ctx, span, err, "failed to clear favorites")
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "favorites cleared")
	return nil
}

func (s *Service) fail(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	attrs = append(attrs, slog.String("error", err.Error()))
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	return err
}

var _ ports.Service = (*Service)(nil)
