package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/storefront-api/internal/domains/checkout/domain"
)

var (
	// ErrInvalidInput wraps unknown shipping or payment selections.
	ErrInvalidInput = errors.New("invalid checkout input")
	// ErrMissingSession rejects calls without a session identifier.
	ErrMissingSession = errors.New("session id is required")
	// ErrNotStarted is returned when the session never entered checkout.
	ErrNotStarted = errors.New("checkout not started")
	// ErrOrderFailed means the order-creation transaction did not complete.
	ErrOrderFailed = errors.New("order submission failed")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrUnknownShippingMethod) || errors.Is(err, domain.ErrUnknownPaymentMethod) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
