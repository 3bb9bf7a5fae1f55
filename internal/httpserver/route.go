package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/pkg/metrics"
	"github.com/labstack/echo/v4"
)

type Deps struct {
	ServiceName string

	AuthHandler     *AuthHTTP
	CatalogHandler  *CatalogHTTP
	CartHandler     *CartHTTP
	CheckoutHandler *CheckoutHTTP

	Metrics *metrics.Metrics
	// Ready reports whether the store is reachable.
	Ready func(ctx context.Context) error
}

var resources = map[string]string{
	"products":           "GET /products",
	"product":            "GET /products/:id",
	"productsByCategory": "GET /productByCategory/:id",
	"productsByBrand":    "GET /productsByBrand/:id",
	"brands":             "GET /brands",
	"brand":              "GET /brands/:id",
	"categories":         "GET /categories",
	"category":           "GET /categories/:id",
	"users":              "GET /users",
	"signUp":             "POST /sign-up",
	"signIn":             "POST /sign-in",
	"validate":           "GET /validate",
	"cartItems":          "GET /cartItems",
	"addCartItem":        "POST /cartItem",
	"removeCartItem":     "DELETE /cartItem/:id",
	"buy":                "POST /buy",
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready == nil {
			return c.NoContent(http.StatusOK)
		}
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := d.Ready(ctx); err != nil {
			return c.NoContent(http.StatusServiceUnavailable)
		}
		return c.NoContent(http.StatusOK)
	})
	if d.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(d.Metrics.Handler()))
	}

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, transport.IndexResponse{Service: d.ServiceName, Resources: resources})
	})

	e.GET("/products", d.CatalogHandler.GetProducts)
	e.GET("/products/:id", d.CatalogHandler.GetProduct)
	e.GET("/productByCategory/:id", d.CatalogHandler.ProductsByCategory)
	e.GET("/productsByBrand/:id", d.CatalogHandler.ProductsByBrand)
	e.GET("/brands", d.CatalogHandler.GetBrands)
	e.GET("/brands/:id", d.CatalogHandler.GetBrand)
	e.GET("/categories", d.CatalogHandler.GetCategories)
	e.GET("/categories/:id", d.CatalogHandler.GetCategory)

	e.GET("/users", d.AuthHandler.ListUsers)
	e.POST("/sign-up", d.AuthHandler.SignUp)
	e.POST("/sign-in", d.AuthHandler.SignIn)

	// Per-route so unknown paths still answer 404 rather than 401.
	authMW := RequireUser(d.AuthHandler.Svc)
	e.GET("/validate", d.AuthHandler.Validate, authMW)
	e.GET("/cartItems", d.CartHandler.GetCart, authMW)
	e.POST("/cartItem", d.CartHandler.AddToCart, authMW)
	e.DELETE("/cartItem/:id", d.CartHandler.DeleteFromCart, authMW)
	e.POST("/buy", d.CheckoutHandler.Buy, authMW)
}
