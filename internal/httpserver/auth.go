package httpserver

import (
	"net/http"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/pkg/logging"
	"github.com/labstack/echo/v4"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) SignUp(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "sign.up")

	body := readBody(c, l)
	cmd, err := transport.ParseSignUp(body)
	if err != nil {
		return writeError(c, l, "sign_up_error", err)
	}

	res, err := h.Svc.SignUp(ctx, cmd)
	if err != nil {
		return writeError(c, l, "sign_up_error", err)
	}

	l.Info("user signed up", "user_id", res.User.ID)
	return c.JSON(http.StatusOK, transport.AuthResponse{User: res.User, Token: res.Token})
}

func (h *AuthHTTP) SignIn(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "sign.in")

	body := readBody(c, l)
	cmd, err := transport.ParseSignIn(body)
	if err != nil {
		return writeError(c, l, "sign_in_error", err)
	}

	res, err := h.Svc.SignIn(ctx, cmd)
	if err != nil {
		return writeError(c, l, "sign_in_error", err)
	}

	l.Info("user signed in", "user_id", res.User.ID)
	return c.JSON(http.StatusOK, transport.AuthResponse{User: res.User, Token: res.Token})
}

func (h *AuthHTTP) Validate(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "validate")

	user, ok := CurrentUser(c)
	if !ok {
		return unauthorized(c)
	}

	res, err := h.Svc.Validate(ctx, user)
	if err != nil {
		return writeError(c, l, "validate_error", err)
	}
	return c.JSON(http.StatusOK, transport.AuthResponse{User: res.User, Token: res.Token})
}

func (h *AuthHTTP) ListUsers(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "list.users")

	users, err := h.Svc.ListUsers(ctx)
	if err != nil {
		return writeError(c, l, "list_users_error", err)
	}
	if users == nil {
		users = []models.User{}
	}
	return c.JSON(http.StatusOK, users)
}
