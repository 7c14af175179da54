package storefrontserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	checkouthttpmapper "github.com/Apurer/storefront-api/internal/domains/checkout/adapters/http/mapper"
	checkoutdomain "github.com/Apurer/storefront-api/internal/domains/checkout/domain"
	checkoutports "github.com/Apurer/storefront-api/internal/domains/checkout/ports"
	orderhttpmapper "github.com/Apurer/storefront-api/internal/domains/orders/adapters/http/mapper"
	apierrors "github.com/Apurer/storefront-api/internal/shared/errors"
)

// CheckoutAPI drives the four-step checkout of a session.
type CheckoutAPI struct {
	service checkoutports.Service
}

// NewCheckoutAPI creates a CheckoutAPI backed by the provided service.
func NewCheckoutAPI(service checkoutports.Service) CheckoutAPI {
	return CheckoutAPI{service: service}
}

// Get /v1/checkout/options
// Static shipping and payment tables.
func (api *CheckoutAPI) GetOptions(c *gin.Context) {
	c.JSON(http.StatusOK, checkouthttpmapper.OptionTables())
}

// Post /v1/checkout
func (api *CheckoutAPI) BeginCheckout(c *gin.Context) {
	summary, err := api.service.Begin(c.Request.Context(), SessionID(c))
	api.respond(c, summary, err)
}

// Get /v1/checkout
func (api *CheckoutAPI) GetCheckout(c *gin.Context) {
	summary, err := api.service.Get(c.Request.Context(), SessionID(c))
	api.respond(c, summary, err)
}

// Put /v1/checkout/customer
func (api *CheckoutAPI) UpdateCustomer(c *gin.Context) {
	var payload checkouthttpmapper.CustomerRequest
	if !bindJSON(c, &payload) {
		return
	}
	summary, err := api.service.UpdateCustomer(c.Request.Context(), SessionID(c), payload.ToInput())
	api.respond(c, summary, err)
}

// Put /v1/checkout/shipping-address
func (api *CheckoutAPI) UpdateShippingAddress(c *gin.Context) {
	var payload orderhttpmapper.Address
	if !bindJSON(c, &payload) {
		return
	}
	summary, err := api.service.UpdateShippingAddress(c.Request.Context(), SessionID(c), orderhttpmapper.ToDomainAddress(payload))
	api.respond(c, summary, err)
}

// Put /v1/checkout/billing-address
// A null billingAddress means billing equals shipping.
func (api *CheckoutAPI) UpdateBillingAddress(c *gin.Context) {
	var payload checkouthttpmapper.BillingAddressRequest
	if !bindJSON(c, &payload) {
		return
	}
	var addr *checkoutdomain.Address
	if payload.Address != nil {
		converted := orderhttpmapper.ToDomainAddress(*payload.Address)
		addr = &converted
	}
	summary, err := api.service.UpdateBillingAddress(c.Request.Context(), SessionID(c), addr)
	api.respond(c, summary, err)
}

// Put /v1/checkout/shipping-method
func (api *CheckoutAPI) SelectShippingMethod(c *gin.Context) {
	var payload checkouthttpmapper.ShippingMethodRequest
	if !bindJSON(c, &payload) {
		return
	}
	method := checkoutdomain.ShippingMethod(payload.ShippingMethod)
	summary, err := api.service.SelectShippingMethod(c.Request.Context(), SessionID(c), method)
	api.respond(c, summary, err)
}

// Put /v1/checkout/payment-method
func (api *CheckoutAPI) SelectPaymentMethod(c *gin.Context) {
	var payload checkouthttpmapper.PaymentMethodRequest
	if !bindJSON(c, &payload) {
		return
	}
	method := checkoutdomain.PaymentMethod(payload.PaymentMethod)
	summary, err := api.service.SelectPaymentMethod(c.Request.Context(), SessionID(c), method)
	api.respond(c, summary, err)
}

// Put /v1/checkout/notes
func (api *CheckoutAPI) SetNotes(c *gin.Context) {
	var payload checkouthttpmapper.NotesRequest
	if !bindJSON(c, &payload) {
		return
	}
	summary, err := api.service.SetNotes(c.Request.Context(), SessionID(c), payload.Notes)
	api.respond(c, summary, err)
}

// Post /v1/checkout/next
func (api *CheckoutAPI) Next(c *gin.Context) {
	summary, err := api.service.Next(c.Request.Context(), SessionID(c))
	api.respond(c, summary, err)
}

// Post /v1/checkout/back
func (api *CheckoutAPI) Back(c *gin.Context) {
	summary, err := api.service.Back(c.Request.Context(), SessionID(c))
	api.respond(c, summary, err)
}

// Post /v1/checkout/submit
func (api *CheckoutAPI) Submit(c *gin.Context) {
	summary, err := api.service.Submit(c.Request.Context(), SessionID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	out := checkouthttpmapper.FromSummary(summary)
	if out.Order != nil {
		c.Header("Location", out.Order.Location)
	}
	c.JSON(http.StatusCreated, out)
}

func (api *CheckoutAPI) respond(c *gin.Context, summary checkoutdomain.Summary, err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, checkouthttpmapper.FromSummary(summary))
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return false
	}
	return true
}
