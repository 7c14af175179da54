package storefrontserver

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	apierrors "github.com/Apurer/storefront-api/internal/shared/errors"
)

// Route is the information for every URI.
type Route struct {
	Name        string
	Method      string
	Pattern     string
	HandlerFunc gin.HandlerFunc
}

// ApiHandleFunctions groups the handlers of every bounded context.
type ApiHandleFunctions struct {
	CartAPI      CartAPI
	FavoritesAPI FavoritesAPI
	CheckoutAPI  CheckoutAPI
	OrderAPI     OrderAPI
}

// RouterOptions tunes middleware of the router.
type RouterOptions struct {
	// ServiceName names otelgin spans; tracing is off when empty.
	ServiceName string
	// AllowedOrigins defaults to every origin.
	AllowedOrigins []string
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions, opts RouterOptions) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if opts.ServiceName != "" {
		router.Use(otelgin.Middleware(opts.ServiceName))
	}
	router.Use(cors.New(corsConfig(opts.AllowedOrigins)))
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/v1", SessionMiddleware())
	for _, route := range getRoutes(handleFunctions) {
		v1.Handle(route.Method, route.Pattern, route.HandlerFunc)
	}
	router.NoRoute(func(c *gin.Context) {
		respondProblem(c, apierrors.NewNotFoundProblem("route", c.Request.URL.Path))
	})
	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", SessionHeader},
		ExposeHeaders: []string{SessionHeader},
	}
	allowed := make([]string, 0, len(origins))
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
		if origin != "" {
			allowed = append(allowed, origin)
		}
	}
	if len(allowed) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = allowed
	cfg.AllowCredentials = true
	return cfg
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{"GetCart", http.MethodGet, "/cart", handleFunctions.CartAPI.GetCart},
		{"AddToCart", http.MethodPost, "/cart/items", handleFunctions.CartAPI.AddToCart},
		{"UpdateCartQuantity", http.MethodPatch, "/cart/items/:productId", handleFunctions.CartAPI.UpdateQuantity},
		{"RemoveFromCart", http.MethodDelete, "/cart/items/:productId", handleFunctions.CartAPI.RemoveFromCart},
		{"ClearCart", http.MethodDelete, "/cart", handleFunctions.CartAPI.ClearCart},

		{"ListFavorites", http.MethodGet, "/favorites", handleFunctions.FavoritesAPI.ListFavorites},
		{"ToggleFavorite", http.MethodPost, "/favorites/toggle", handleFunctions.FavoritesAPI.ToggleFavorite},
		{"GetFavorite", http.MethodGet, "/favorites/:productId", handleFunctions.FavoritesAPI.GetFavorite},
		{"AddFavorite", http.MethodPut, "/favorites/:productId", handleFunctions.FavoritesAPI.AddFavorite},
		{"RemoveFavorite", http.MethodDelete, "/favorites/:productId", handleFunctions.FavoritesAPI.RemoveFavorite},
		{"ClearFavorites", http.MethodDelete, "/favorites", handleFunctions.FavoritesAPI.ClearFavorites},

		{"GetCheckoutOptions", http.MethodGet, "/checkout/options", handleFunctions.CheckoutAPI.GetOptions},
		{"BeginCheckout", http.MethodPost, "/checkout", handleFunctions.CheckoutAPI.BeginCheckout},
		{"GetCheckout", http.MethodGet, "/checkout", handleFunctions.CheckoutAPI.GetCheckout},
		{"UpdateCustomer", http.MethodPut, "/checkout/customer", handleFunctions.CheckoutAPI.UpdateCustomer},
		{"UpdateShippingAddress", http.MethodPut, "/checkout/shipping-address", handleFunctions.CheckoutAPI.UpdateShippingAddress},
		{"UpdateBillingAddress", http.MethodPut, "/checkout/billing-address", handleFunctions.CheckoutAPI.UpdateBillingAddress},
		{"SelectShippingMethod", http.MethodPut, "/checkout/shipping-method", handleFunctions.CheckoutAPI.SelectShippingMethod},
		{"SelectPaymentMethod", http.MethodPut, "/checkout/payment-method", handleFunctions.CheckoutAPI.SelectPaymentMethod},
		{"SetCheckoutNotes", http.MethodPut, "/checkout/notes", handleFunctions.CheckoutAPI.SetNotes},
		{"NextCheckoutStep", http.MethodPost, "/checkout/next", handleFunctions.CheckoutAPI.Next},
		{"PreviousCheckoutStep", http.MethodPost, "/checkout/back", handleFunctions.CheckoutAPI.Back},
		{"SubmitCheckout", http.MethodPost, "/checkout/submit", handleFunctions.CheckoutAPI.Submit},

		{"GetOrderByNumber", http.MethodGet, "/orders/:orderNumber", handleFunctions.OrderAPI.GetOrderByNumber},
	}
}
