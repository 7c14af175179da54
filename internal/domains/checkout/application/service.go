package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Apurer/storefront-api/internal/domains/checkout/domain"
	"github.com/Apurer/storefront-api/internal/domains/checkout/ports"
	"github.com/Apurer/storefront-api/internal/shared/sessionlock"
)

// Service drives the per-session checkout workflow and hands the cart to the
// order placer on submission.
type Service struct {
	repo   ports.Repository
	carts  ports.Carts
	orders ports.OrderPlacer
	logger *slog.Logger
	locks  sessionlock.Locks
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewService(repo ports.Repository, carts ports.Carts, orders ports.OrderPlacer, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		carts:  carts,
		orders: orders,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Begin enters checkout. An empty cart never starts the workflow; an
// interactive workflow is resumed, a finished one is replaced.
func (s *Service) Begin(ctx context.Context, sessionID string) (domain.Summary, error) {
	if err := requireSession(sessionID); err != nil {
		return domain.Summary{}, err
	}
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	cart, err := s.carts.GetCart(ctx, sessionID)
	if err != nil {
		return domain.Summary{}, err
	}
	workflow, found, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		return domain.Summary{}, err
	}
	if found && workflow.Step() == domain.StepSubmitting {
		return workflow.Summary(cart.Total), nil
	}
	if cart.IsEmpty() {
		return domain.Summary{}, domain.ErrEmptyCart
	}
	if !found || !workflow.Step().Interactive() {
		workflow = domain.NewWorkflow()
		if err := s.repo.Save(ctx, sessionID, workflow); err != nil {
			return domain.Summary{}, err
		}
	}
	return workflow.Summary(cart.Total), nil
}

func (s *Service) Get(ctx context.Context, sessionID string) (domain.Summary, error) {
	if err := requireSession(sessionID); err != nil {
		return domain.Summary{}, err
	}
	workflow, found, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		return domain.Summary{}, err
	}
	if !found {
		return domain.Summary{}, ErrNotStarted
	}
	return s.summarize(ctx, sessionID, workflow)
}

func (s *Service) UpdateCustomer(ctx context.Context, sessionID string, input ports.CustomerInput) (domain.Summary, error) {
	return s.mutate(ctx, sessionID, func(w *domain.Workflow) error {
		return w.UpdateCustomer(input.Name, input.Email, input.Phone, input.CPF)
	})
}

func (s *Service) UpdateShippingAddress(ctx context.Context, sessionID string, addr domain.Address) (domain.Summary, error) {
	return s.mutate(ctx, sessionID, func(w *domain.Workflow) error {
		return w.UpdateShippingAddress(addr)
	})
}

func (s *Service) UpdateBillingAddress(ctx context.Context, sessionID string, addr *domain.Address) (domain.Summary, error) {
	return s.mutate(ctx, sessionID, func(w *domain.Workflow) error {
		return w.UpdateBillingAddress(addr)
	})
}

func (s *Service) SelectShippingMethod(ctx context.Context, sessionID string, method domain.ShippingMethod) (domain.Summary, error) {
	return s.mutate(ctx, sessionID, func(w *domain.Workflow) error {
		return w.SelectShippingMethod(method)
	})
}

func (s *Service) SelectPaymentMethod(ctx context.Context, sessionID string, method domain.PaymentMethod) (domain.Summary, error) {
	return s.mutate(ctx, sessionID, func(w *domain.Workflow) error {
		return w.SelectPaymentMethod(method)
	})
}

func (s *Service) SetNotes(ctx context.Context, sessionID string, notes string) (domain.Summary, error) {
	return s.mutate(ctx, sessionID, func(w *domain.Workflow) error {
		return w.SetNotes(notes)
	})
}

// Next advances one step. A validation failure is persisted with its banner
// and reported to the caller.
func (s *Service) Next(ctx context.Context, sessionID string) (domain.Summary, error) {
	return s.mutate(ctx, sessionID, (*domain.Workflow).Next)
}

func (s *Service) Back(ctx context.Context, sessionID string) (domain.Summary, error) {
	return s.mutate(ctx, sessionID, (*domain.Workflow).Back)
}

// Submit places the order for the current cart. The session lock is only held
// around state transitions, so a concurrent Submit observes "submitting" and
// is rejected with domain.ErrSubmissionInProgress. On success only the ordered
// quantities leave the cart; anything added meanwhile stays.
func (s *Service) Submit(ctx context.Context, sessionID string) (domain.Summary, error) {
	if _, err := s.mutate(ctx, sessionID, (*domain.Workflow).BeginSubmission); err != nil {
		return domain.Summary{}, err
	}

	cart, err := s.carts.GetCart(ctx, sessionID)
	if err == nil && cart.IsEmpty() {
		err = domain.ErrEmptyCart
	}
	var placed domain.PlacedOrder
	if err == nil {
		var workflow *domain.Workflow
		workflow, err = s.load(ctx, sessionID)
		if err == nil {
			placed, err = s.orders.PlaceOrder(ctx, sessionID, cart.Items, workflow.Data())
		}
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "order submission failed", slog.String("error", err.Error()))
		if _, failErr := s.mutate(context.WithoutCancel(ctx), sessionID, (*domain.Workflow).FailSubmission); failErr != nil {
			s.logger.ErrorContext(ctx, "failed to reset checkout after submission failure", slog.String("error", failErr.Error()))
		}
		return domain.Summary{}, fmt.Errorf("%w: %w", ErrOrderFailed, err)
	}

	if _, err := s.carts.RemoveOrdered(context.WithoutCancel(ctx), sessionID, cart.Items); err != nil {
		s.logger.WarnContext(ctx, "order placed but cart could not be cleared",
			slog.String("order.number", placed.OrderNumber), slog.String("error", err.Error()))
	}
	return s.mutate(context.WithoutCancel(ctx), sessionID, func(w *domain.Workflow) error {
		return w.CompleteSubmission(placed)
	})
}

// mutate applies fn under the session lock and persists the result even when
// fn fails, so validation banners and step moves survive.
func (s *Service) mutate(ctx context.Context, sessionID string, fn func(*domain.Workflow) error) (domain.Summary, error) {
	if err := requireSession(sessionID); err != nil {
		return domain.Summary{}, err
	}
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	workflow, err := s.load(ctx, sessionID)
	if err != nil {
		return domain.Summary{}, err
	}
	applyErr := fn(workflow)
	if err := s.repo.Save(ctx, sessionID, workflow); err != nil {
		return domain.Summary{}, err
	}
	if applyErr != nil {
		return domain.Summary{}, mapError(applyErr)
	}
	return s.summarize(ctx, sessionID, workflow)
}

func (s *Service) load(ctx context.Context, sessionID string) (*domain.Workflow, error) {
	workflow, found, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotStarted
	}
	return workflow, nil
}

func (s *Service) summarize(ctx context.Context, sessionID string, workflow *domain.Workflow) (domain.Summary, error) {
	cart, err := s.carts.GetCart(ctx, sessionID)
	if err != nil {
		return domain.Summary{}, err
	}
	return workflow.Summary(cart.Total), nil
}

func requireSession(sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return ErrMissingSession
	}
	return nil
}

var _ ports.Service = (*Service)(nil)
