package httpserver

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/labstack/echo/v4"
)

// statusOf maps an error to its HTTP status and client messages. Unknown
// errors are reported as 400 with their raw text.
func statusOf(err error) (int, []string, bool) {
	var ve transport.ValidationErrors
	if errors.As(err, &ve) {
		return http.StatusBadRequest, ve, true
	}

	msgs := service.Messages(err)
	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrInsufficientStock),
		errors.Is(err, service.ErrInsufficientFunds):
		return http.StatusBadRequest, msgs, true
	case errors.Is(err, service.ErrUnauthorized),
		errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, msgs, true
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, msgs, true
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict, msgs, true
	}
	return http.StatusBadRequest, msgs, false
}

func writeError(c echo.Context, l *slog.Logger, event string, err error) error {
	status, msgs, known := statusOf(err)
	if known {
		l.Warn(event, "status", status, "error", err)
	} else {
		l.Error(event, "status", status, "error", err)
	}
	return c.JSON(status, transport.ErrorResponse{Errors: msgs})
}

// readBody decodes a JSON object body. Anything undecodable reads as an empty
// object so the field validators report what is missing.
func readBody(c echo.Context, l *slog.Logger) map[string]any {
	var body map[string]any
	if err := (&echo.DefaultBinder{}).BindBody(c, &body); err != nil {
		l.Debug("body_not_decoded", "error", err)
		return map[string]any{}
	}
	if body == nil {
		return map[string]any{}
	}
	return body
}
