package service

import (
	"context"
	"errors"

	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/pkg/events"
	"github.com/Skotchmaster/storefront/pkg/logging"
	"github.com/Skotchmaster/storefront/pkg/metrics"
	"gorm.io/gorm"
)

type CheckoutService struct {
	Repo    *repo.GormRepo
	Events  events.Publisher
	Metrics *metrics.Metrics
}

func (s *CheckoutService) Checkout(ctx context.Context, userID uint) (*repo.Receipt, error) {
	l := logging.FromContext(ctx).With("svc", "checkout", "user_id", userID)

	receipt, err := s.Repo.Checkout(ctx, userID)
	s.Metrics.Order(receipt.Total, err)
	if err != nil {
		if errors.Is(err, repo.ErrInsufficientBalance) {
			l.Info("checkout_rejected", "total", receipt.Total)
			return nil, fail(ErrInsufficientFunds, MsgNotEnoughBalance)
		}
		if errors.Is(err, repo.ErrCartChanged) {
			l.Warn("checkout_cart_changed")
			return nil, fail(ErrConflict, MsgCartChanged)
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fail(ErrUnauthorized, MsgInvalidToken)
		}
		return nil, err
	}

	lines := make([]map[string]any, 0, len(receipt.Purchases))
	for _, p := range receipt.Purchases {
		lines = append(lines, map[string]any{
			"productId": p.ProductID,
			"quantity":  p.Quantity,
			"unitPrice": p.UnitPrice,
		})
	}
	publish(ctx, s.Events, events.TopicOrder, userKey(userID), events.New("order_completed", map[string]any{
		"userId":  userID,
		"total":   receipt.Total,
		"balance": receipt.Balance,
		"items":   lines,
	}))

	l.Info("checkout_completed", "total", receipt.Total, "items", len(receipt.Purchases))
	return receipt, nil
}
