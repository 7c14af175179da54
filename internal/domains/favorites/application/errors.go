package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/storefront-api/internal/domains/favorites/domain"
)

var (
	// ErrInvalidInput signals the favorite payload violated a domain invariant.
	ErrInvalidInput = errors.New("invalid favorite input")
	// ErrMissingSession rejects calls without a session identifier.
	ErrMissingSession = errors.New("session id is required")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidProductID) || errors.Is(err, domain.ErrInvalidPrice) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
