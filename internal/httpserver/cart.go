package httpserver

import (
	"net/http"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/pkg/logging"
	"github.com/labstack/echo/v4"
)

type CartHTTP struct {
	Svc *service.CartService
}

// GetCart answers from the cart loaded with the user by RequireUser.
func (h *CartHTTP) GetCart(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return unauthorized(c)
	}

	items := user.Cart
	if items == nil {
		items = []models.CartItem{}
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "add.cart")

	user, ok := CurrentUser(c)
	if !ok {
		return unauthorized(c)
	}

	body := readBody(c, l)
	cmd, err := transport.ParseAddToCart(body)
	if err != nil {
		return writeError(c, l, "add_to_cart_error", err)
	}

	item, err := h.Svc.AddToCart(ctx, user.ID, cmd)
	if err != nil {
		return writeError(c, l, "add_to_cart_error", err)
	}

	l.Info("item added successfully to cart", "cart_item_id", item.ID)
	return c.JSON(http.StatusOK, item)
}

func (h *CartHTTP) DeleteFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "delete.from.cart")

	user, ok := CurrentUser(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := transport.ParseID(c.Param("id"), transport.MsgCartItemIDInvalid)
	if err != nil {
		return writeError(c, l, "delete_from_cart_error", err)
	}

	cart, err := h.Svc.RemoveFromCart(ctx, user.ID, id)
	if err != nil {
		return writeError(c, l, "delete_from_cart_error", err)
	}

	l.Info("item deleted from cart", "cart_item_id", id)
	return c.JSON(http.StatusOK, cart)
}
