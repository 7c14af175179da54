package domain

import (
	"errors"
	"fmt"
)

const (
	CustomerInfoMessage     = "Please fill in name, email and phone."
	ShippingAddressMessage  = "Please fill in the complete shipping address."
	SubmissionFailedMessage = "Failed to finalize order. Please try again."
)

var (
	ErrValidation            = errors.New("checkout validation failed")
	ErrInvalidTransition     = errors.New("invalid checkout transition")
	ErrSubmissionInProgress  = errors.New("order submission already in progress")
	ErrUnknownShippingMethod = errors.New("unknown shipping method")
	ErrUnknownPaymentMethod  = errors.New("unknown payment method")
	ErrEmptyCart             = errors.New("cart is empty")
)

// ValidationError carries the single banner message of a failed step.
type ValidationError struct {
	Step    Step
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Step, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func transitionError(from Step, action string) error {
	return fmt.Errorf("%w: cannot %s from %s", ErrInvalidTransition, action, from)
}
