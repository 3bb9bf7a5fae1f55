package httpserver

import (
	"net/http"
	"strings"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/pkg/logging"
	"github.com/labstack/echo/v4"
)

const userCtxKey = "user"

// RequireUser resolves the Authorization header to a user and stores it in
// the echo context. The header carries the raw token; a "Bearer " prefix is
// accepted too.
func RequireUser(auth *service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			l := logging.FromContext(ctx).With("middleware", "require.user")

			token := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if token == "" {
				l.Warn("auth_error", "status", http.StatusUnauthorized)
				return c.JSON(http.StatusUnauthorized, transport.ErrorResponse{Errors: []string{transport.MsgNoToken}})
			}

			user, err := auth.ResolveUser(ctx, token)
			if err != nil {
				return writeError(c, l, "auth_error", err)
			}

			c.Set(userCtxKey, user)
			c.SetRequest(c.Request().WithContext(logging.IntoContext(ctx, logging.FromContext(ctx).With("user_id", user.ID))))
			return next(c)
		}
	}
}

func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return header
}

func CurrentUser(c echo.Context) (*models.User, bool) {
	u, ok := c.Get(userCtxKey).(*models.User)
	return u, ok && u != nil
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, transport.ErrorResponse{Errors: []string{service.MsgInvalidToken}})
}
