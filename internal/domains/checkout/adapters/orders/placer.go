package orders

import (
	"context"
	"errors"
	"strings"

	cartdomain "github.com/Apurer/storefront-api/internal/domains/cart/domain"
	"github.com/Apurer/storefront-api/internal/domains/checkout/domain"
	"github.com/Apurer/storefront-api/internal/domains/checkout/ports"
	ordertypes "github.com/Apurer/storefront-api/internal/domains/orders/application/types"
	orderports "github.com/Apurer/storefront-api/internal/domains/orders/ports"
)

// Placer hands checkout submissions to the orders workflow orchestrator.
type Placer struct {
	workflows orderports.WorkflowOrchestrator
}

func NewPlacer(workflows orderports.WorkflowOrchestrator) *Placer {
	return &Placer{workflows: workflows}
}

func (p *Placer) PlaceOrder(ctx context.Context, sessionID string, items []cartdomain.LineItem, data domain.Data) (domain.PlacedOrder, error) {
	if p == nil || p.workflows == nil {
		return domain.PlacedOrder{}, errors.New("order placer not configured")
	}
	order, err := p.workflows.CreateOrder(ctx, ordertypes.CreateOrderInput{
		SessionID: strings.TrimSpace(sessionID),
		Items:     items,
		Checkout:  data,
	})
	if err != nil {
		return domain.PlacedOrder{}, err
	}
	return domain.PlacedOrder{
		ID:           order.ID,
		OrderNumber:  order.OrderNumber,
		Subtotal:     order.Subtotal,
		ShippingCost: order.ShippingCost,
		TotalAmount:  order.TotalAmount,
	}, nil
}

var _ ports.OrderPlacer = (*Placer)(nil)
