package application

import (
	"errors"
	"fmt"

	checkoutdomain "github.com/Apurer/storefront-api/internal/domains/checkout/domain"
	"github.com/Apurer/storefront-api/internal/domains/orders/domain"
)

var (
	// ErrInvalidInput signals the cart snapshot or checkout data cannot form an order.
	ErrInvalidInput = errors.New("invalid order input")
	// ErrOrderNotCreated reports a failed order-creation transaction.
	ErrOrderNotCreated = errors.New("order not created")
	// ErrCompensated marks failures after which the order header was removed again.
	ErrCompensated = errors.New("order header compensated")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyOrder) ||
		errors.Is(err, domain.ErrTotalsMismatch) ||
		errors.Is(err, domain.ErrInvalidStatus) ||
		errors.Is(err, domain.ErrInvalidItem) ||
		errors.Is(err, checkoutdomain.ErrUnknownShippingMethod) ||
		errors.Is(err, checkoutdomain.ErrUnknownPaymentMethod) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
