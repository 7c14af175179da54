package storefrontserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	carthttpmapper "github.com/Apurer/storefront-api/internal/domains/cart/adapters/http/mapper"
	cartports "github.com/Apurer/storefront-api/internal/domains/cart/ports"
	apierrors "github.com/Apurer/storefront-api/internal/shared/errors"
)

// AddToCartRequest adds quantity units of a product; quantity defaults to 1.
type AddToCartRequest struct {
	Product  carthttpmapper.Product `json:"product"`
	Quantity *int                   `json:"quantity,omitempty"`
}

// UpdateQuantityRequest sets the absolute quantity of a cart line.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CartAPI serves the session cart.
type CartAPI struct {
	service cartports.Service
	now     func() time.Time
}

// NewCartAPI creates a CartAPI backed by the provided service.
func NewCartAPI(service cartports.Service) CartAPI {
	return CartAPI{service: service, now: time.Now}
}

// Get /v1/cart
func (api *CartAPI) GetCart(c *gin.Context) {
	cart, err := api.service.GetCart(c.Request.Context(), SessionID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, carthttpmapper.FromDomainCart(cart, api.clock()))
}

// Post /v1/cart/items
func (api *CartAPI) AddToCart(c *gin.Context) {
	var payload AddToCartRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	quantity := 1
	if payload.Quantity != nil {
		quantity = *payload.Quantity
	}
	cart, err := api.service.AddToCart(c.Request.Context(), SessionID(c), carthttpmapper.ToDomainProduct(payload.Product), quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, carthttpmapper.FromDomainCart(cart, api.clock()))
}

// Patch /v1/cart/items/:productId
func (api *CartAPI) UpdateQuantity(c *gin.Context) {
	id, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}
	var payload UpdateQuantityRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	cart, err := api.service.UpdateQuantity(c.Request.Context(), SessionID(c), id, payload.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, carthttpmapper.FromDomainCart(cart, api.clock()))
}

// Delete /v1/cart/items/:productId
func (api *CartAPI) RemoveFromCart(c *gin.Context) {
	id, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}
	cart, err := api.service.RemoveFromCart(c.Request.Context(), SessionID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, carthttpmapper.FromDomainCart(cart, api.clock()))
}

// Delete /v1/cart
func (api *CartAPI) ClearCart(c *gin.Context) {
	if err := api.service.ClearCart(c.Request.Context(), SessionID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (api *CartAPI) clock() time.Time {
	if api.now == nil {
		return time.Now()
	}
	return api.now()
}
