package ports

import (
	"context"

	cartdomain "github.com/Apurer/storefront-api/internal/domains/cart/domain"
	"github.com/Apurer/storefront-api/internal/domains/checkout/domain"
)

// Repository stores one checkout workflow per session.
type Repository interface {
	Load(ctx context.Context, sessionID string) (*domain.Workflow, bool, error)
	Save(ctx context.Context, sessionID string, workflow *domain.Workflow) error
}

// Carts is the subset of the cart service the checkout depends on.
type Carts interface {
	GetCart(ctx context.Context, sessionID string) (*cartdomain.Cart, error)
	RemoveOrdered(ctx context.Context, sessionID string, ordered []cartdomain.LineItem) (*cartdomain.Cart, error)
}

// OrderPlacer runs the order-creation transaction for a cart snapshot.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, sessionID string, items []cartdomain.LineItem, data domain.Data) (domain.PlacedOrder, error)
}

// CustomerInput carries the step 1 fields.
type CustomerInput struct {
	Name  string
	Email string
	Phone string
	CPF   string
}

// Service exposes the checkout use cases to adapters.
type Service interface {
	Begin(ctx context.Context, sessionID string) (domain.Summary, error)
	Get(ctx context.Context, sessionID string) (domain.Summary, error)
	UpdateCustomer(ctx context.Context, sessionID string, input CustomerInput) (domain.Summary, error)
	UpdateShippingAddress(ctx context.Context, sessionID string, addr domain.Address) (domain.Summary, error)
	UpdateBillingAddress(ctx context.Context, sessionID string, addr *domain.Address) (domain.Summary, error)
	SelectShippingMethod(ctx context.Context, sessionID string, method domain.ShippingMethod) (domain.Summary, error)
	SelectPaymentMethod(ctx context.Context, sessionID string, method domain.PaymentMethod) (domain.Summary, error)
	SetNotes(ctx context.Context, sessionID string, notes string) (domain.Summary, error)
	Next(ctx context.Context, sessionID string) (domain.Summary, error)
	Back(ctx context.Context, sessionID string) (domain.Summary, error)
	Submit(ctx context.Context, sessionID string) (domain.Summary, error)
}
