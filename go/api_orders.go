package storefrontserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	orderhttpmapper "github.com/Apurer/storefront-api/internal/domains/orders/adapters/http/mapper"
	orderports "github.com/Apurer/storefront-api/internal/domains/orders/ports"
	apierrors "github.com/Apurer/storefront-api/internal/shared/errors"
)

// OrderAPI serves order confirmations.
type OrderAPI struct {
	service orderports.Service
}

// NewOrderAPI creates an OrderAPI backed by the provided service.
func NewOrderAPI(service orderports.Service) OrderAPI {
	return OrderAPI{service: service}
}

// Get /v1/orders/:orderNumber
func (api *OrderAPI) GetOrderByNumber(c *gin.Context) {
	number := strings.TrimSpace(c.Param("orderNumber"))
	if number == "" {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail("order number is required"))
		return
	}
	order, err := api.service.GetOrderByNumber(c.Request.Context(), number)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainOrder(order))
}
