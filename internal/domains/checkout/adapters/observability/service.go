package observability

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/storefront-api/internal/domains/checkout/domain"
	"github.com/Apurer/storefront-api/internal/domains/checkout/ports"
)

const tracerName = "github.com/Apurer/storefront-api/internal/domains/checkout/adapters/observability/service"

// Service decorates the checkout port with tracing, logging, and metrics.
// Validation failures are expected user input and only annotate the span.
type Service struct {
	inner       ports.Service
	tracer      trace.Tracer
	logger      *slog.Logger
	submissions metric.Int64Counter
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

// WithMeter registers the checkout.service.submissions counter.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		if m == nil {
			return
		}
		s.submissions, _ = m.Int64Counter("checkout.service.submissions", metric.WithDescription("Checkout submissions by outcome"))
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

func (s *Service) Begin(ctx context.Context, sessionID string) (domain.Summary, error) {
	return s.trace(ctx, "Service.Begin", func(ctx context.Context) (domain.Summary, error) {
		return s.inner.Begin(ctx, sessionID)
	})
}

func (s *Service) Get(ctx context.Context, sessionID string) (domain.Summary, error) {
	return s.trace(ctx, "Service.Get", func(ctx context.Context) (domain.Summary, error) {
		return s.inner.Get(ctx, sessionID)
	})
}

func (s *Service) UpdateCustomer(ctx context.Context, sessionID string, input ports.CustomerInput) (domain.Summary, error) {
	return s.trace(ctx, "Service.UpdateCustomer", func(ctx context.Context) (domain.Summary, error) {
		return s.inner.UpdateCustomer(ctx, sessionID, input)
	})
}

func (s *Service) UpdateShippingAddress(ctx context.Context, sessionID string, addr domain.Address) (domain.Summary, error) {
	return s.trace(ctx, "Service.UpdateShippingAddress", func(ctx context.Context) (domain.Summary, error) {
		return s.inner.UpdateShippingAddress(ctx, sessionID, addr)
	})
}

func (s *Service) UpdateBillingAddress(ctx context.Context, sessionID string, addr *domain.Address) (domain.Summary, error) {
	return s.trace(ctx, "Service.UpdateBillingAddress", func(ctx context.Context) (domain.Summary, error) {
		return s.inner.UpdateBillingAddress(ctx, sessionID, addr)
	})
}

func (s *Service) SelectShippingMethod(ctx context.Context, sessionID string, method domain.ShippingMethod) (domain.Summary, error) {
	return s.trace(ctx, "Service.SelectShippingMethod", func(ctx context.Context) (domain.Summary, error) {
		return s.inner.SelectShippingMethod(ctx, sessionID, method)
	}, attribute.String("checkout.shipping_method", string(method)))
}

func (s *Service) SelectPaymentMethod(ctx context.Context, sessionID string, method domain.PaymentMethod) (domain.Summary, error) {
	return s.trace(ctx, "Service.SelectPaymentMethod", func(ctx context.Context) (domain.Summary, error) {
		return s.inner.SelectPaymentMethod(ctx, sessionID, method)
	}, attribute.String("checkout.payment_method", string(method)))
}

func (s *Service) SetNotes(ctx context.Context, sessionID string, notes string) (domain.Summary, error) {
	return s.trace(ctx, "Service.SetNotes", func(ctx context.Context) (domain.Summary, error) {
		return s.inner.SetNotes(ctx, sessionID, notes)
	})
}

func (s *Service) Next(ctx context.Context, sessionID string) (domain.Summary, error) {
	return s.trace(ctx, "Service.Next", func(ctx context.Context) (domain.Summary, error) {
		return s.inner.Next(ctx, sessionID)
	})
}

func (s *Service) Back(ctx context.Context, sessionID string) (domain.Summary, error) {
	return s.trace(ctx, "Service.Back", func(ctx context.Context) (domain.Summary, error) {
		return s.inner.Back(ctx, sessionID)
	})
}

func (s *Service) Submit(ctx context.Context, sessionID string) (domain.Summary, error) {
	summary, err := s.trace(ctx, "Service.Submit", func(ctx context.Context) (domain.Summary, error) {
		return s.inner.Submit(ctx, sessionID)
	})
	outcome := "success"
	switch {
	case errors.Is(err, domain.ErrSubmissionInProgress):
		outcome = "duplicate"
	case errors.Is(err, domain.ErrValidation):
		outcome = "invalid"
	case err != nil:
		outcome = "failed"
	}
	if s.submissions != nil {
		s.submissions.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	}
	if err == nil && summary.Order != nil {
		s.logger.LogAttrs(ctx, slog.LevelInfo, "checkout completed", slog.String("order.number", summary.Order.OrderNumber))
	}
	return summary, err
}

func (s *Service) trace(ctx context.Context, name string, call func(context.Context) (domain.Summary, error), attrs ...attribute.KeyValue) (domain.Summary, error) {
	ctx, span := s.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
	defer span.End()

	summary, err := call(ctx)
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, domain.ErrValidation) {
			return summary, err
		}
		span.SetStatus(codes.Error, err.Error())
		s.logger.LogAttrs(ctx, slog.LevelError, "checkout operation failed", slog.String("operation", name), slog.String("error", err.Error()))
		return summary, err
	}
	span.SetAttributes(attribute.String("checkout.step", string(summary.Step)))
	return summary, nil
}

var _ ports.Service = (*Service)(nil)
