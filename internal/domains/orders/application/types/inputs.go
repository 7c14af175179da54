package types

import (
	cartdomain "github.com/Apurer/storefront-api/internal/domains/cart/domain"
	checkoutdomain "github.com/Apurer/storefront-api/internal/domains/checkout/domain"
	"github.com/Apurer/storefront-api/internal/domains/orders/domain"
)

// CreateOrderInput is the cart snapshot plus checkout data an order is built from.
type CreateOrderInput struct {
	SessionID string
	Items     []cartdomain.LineItem
	Checkout  checkoutdomain.Data
}

// CreateItemsInput associates order lines with a persisted header.
type CreateItemsInput struct {
	OrderID string
	Items   []domain.Item
}

// OrderIdentifier addresses a persisted order by id.
type OrderIdentifier struct {
	ID string
}
