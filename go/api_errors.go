package storefrontserver

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	cartapp "github.com/Apurer/storefront-api/internal/domains/cart/application"
	checkoutapp "github.com/Apurer/storefront-api/internal/domains/checkout/application"
	checkoutdomain "github.com/Apurer/storefront-api/internal/domains/checkout/domain"
	favoritesapp "github.com/Apurer/storefront-api/internal/domains/favorites/application"
	ordersapp "github.com/Apurer/storefront-api/internal/domains/orders/application"
	orderports "github.com/Apurer/storefront-api/internal/domains/orders/ports"
	apierrors "github.com/Apurer/storefront-api/internal/shared/errors"
)

// CartPath is where shoppers are sent when checkout cannot start.
const CartPath = "/cart"

var responder = apierrors.NewResponder("",
	mapCheckoutError,
	mapOrderError,
	mapInputError,
)

func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	responder.Respond(c, problem)
}

func respondError(c *gin.Context, err error) {
	responder.RespondError(c, err)
}

func mapCheckoutError(err error) (apierrors.ProblemDetail, bool) {
	var validation *checkoutdomain.ValidationError
	switch {
	case errors.As(err, &validation):
		return apierrors.ErrCheckoutValidation.
			WithDetail(validation.Message).
			WithExtension("step", string(validation.Step)), true
	case errors.Is(err, checkoutdomain.ErrEmptyCart):
		return apierrors.NewRedirectProblem(apierrors.ErrEmptyCart, "Add products to the cart before checking out.", CartPath), true
	case errors.Is(err, checkoutdomain.ErrSubmissionInProgress):
		return apierrors.ErrConflict.WithDetail(checkoutdomain.ErrSubmissionInProgress.Error()), true
	case errors.Is(err, checkoutdomain.ErrInvalidTransition):
		return apierrors.ErrInvalidTransition.WithDetail(err.Error()), true
	case errors.Is(err, checkoutapp.ErrNotStarted):
		return apierrors.ErrNotFound.WithDetail("checkout has not been started for this session"), true
	case errors.Is(err, checkoutapp.ErrOrderFailed):
		return apierrors.ErrOrderFailed.WithDetail(checkoutdomain.SubmissionFailedMessage), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapOrderError(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, orderports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail("order not found"), true
	case errors.Is(err, ordersapp.ErrInvalidInput):
		return apierrors.ErrBadRequest.WithDetail(err.Error()), true
	case errors.Is(err, ordersapp.ErrOrderNotCreated):
		return apierrors.ErrOrderFailed.WithDetail(checkoutdomain.SubmissionFailedMessage), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapInputError(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, cartapp.ErrInvalidInput),
		errors.Is(err, favoritesapp.ErrInvalidInput),
		errors.Is(err, checkoutapp.ErrInvalidInput):
		return apierrors.ErrBadRequest.WithDetail(err.Error()), true
	case errors.Is(err, cartapp.ErrMissingSession),
		errors.Is(err, favoritesapp.ErrMissingSession),
		errors.Is(err, checkoutapp.ErrMissingSession):
		return apierrors.ErrBadRequest.WithDetail("session id is required"), true
	}
	return apierrors.ProblemDetail{}, false
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail("invalid "+name+" path parameter"))
		return 0, false
	}
	return id, true
}
