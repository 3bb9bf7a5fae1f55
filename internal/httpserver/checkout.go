package httpserver

import (
	"net/http"

	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/pkg/logging"
	"github.com/labstack/echo/v4"
)

type CheckoutHTTP struct {
	Svc *service.CheckoutService
}

func (h *CheckoutHTTP) Buy(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "buy")

	user, ok := CurrentUser(c)
	if !ok {
		return unauthorized(c)
	}

	receipt, err := h.Svc.Checkout(ctx, user.ID)
	if err != nil {
		return writeError(c, l, "buy_error", err)
	}

	return c.JSON(http.StatusOK, transport.OrderResponse{
		Message:   service.MsgOrderSuccessful,
		Total:     receipt.Total,
		Balance:   receipt.Balance,
		Purchases: receipt.Purchases,
	})
}
