package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Skotchmaster/storefront/pkg/events"
	"github.com/Skotchmaster/storefront/pkg/logging"
)

var (
	ErrValidation         = errors.New("validation")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrInsufficientFunds  = errors.New("insufficient funds")
)

const (
	MsgProductNotFound    = "Product not found"
	MsgBrandNotFound      = "Brand not found"
	MsgCategoryNotFound   = "Category not found"
	MsgCartItemNotFound   = "Cart item not found"
	MsgNotEnoughStock     = "Not enough products in stock"
	MsgNotEnoughBalance   = "Not enough balance to complete the order"
	MsgEmailExists        = "Email already exists."
	MsgInvalidCredentials = "Username or password invalid."
	MsgInvalidToken       = "Invalid token provided."
	MsgOrderSuccessful    = "Order successful!"
	MsgCartChanged        = "Cart changed during checkout, please try again"
)

// Error carries the client-facing messages of a failed operation. Kind is
// one of the sentinels above and is what errors.Is matches against.
type Error struct {
	Kind     error
	Messages []string
}

func (e *Error) Error() string {
	return e.Kind.Error() + ": " + strings.Join(e.Messages, "; ")
}

func (e *Error) Unwrap() error { return e.Kind }

func fail(kind error, msgs ...string) error {
	return &Error{Kind: kind, Messages: msgs}
}

// Messages returns the client-facing messages of err, or its text when err
// did not come from this package.
func Messages(err error) []string {
	var se *Error
	if errors.As(err, &se) && len(se.Messages) > 0 {
		return se.Messages
	}
	return []string{err.Error()}
}

func publish(ctx context.Context, p events.Publisher, topic, key string, ev events.Event) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, topic, key, ev); err != nil {
		logging.FromContext(ctx).Warn("publish_event_error", "topic", topic, "type", ev.Type(), "error", err)
	}
}
