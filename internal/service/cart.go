package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/pkg/events"
	"github.com/Skotchmaster/storefront/pkg/metrics"
)

type CartService struct {
	Repo    *repo.GormRepo
	Events  events.Publisher
	Metrics *metrics.Metrics
}

func (s *CartService) GetCart(ctx context.Context, userID uint) ([]models.CartItem, error) {
	return s.Repo.GetCart(ctx, userID)
}

func (s *CartService) AddToCart(ctx context.Context, userID uint, cmd transport.AddToCartCommand) (item *models.CartItem, err error) {
	defer func() { s.Metrics.CartOperation("add", err) }()

	if cmd.ProductID == 0 {
		return nil, fail(ErrValidation, transport.MsgProductIDInvalid)
	}
	if cmd.Quantity <= 0 {
		return nil, fail(ErrValidation, transport.MsgQuantityPositive)
	}

	item, err = s.Repo.AddToCart(ctx, userID, cmd.ProductID, cmd.Quantity)
	if err != nil {
		if errors.Is(err, repo.ErrOutOfStock) {
			return nil, fail(ErrInsufficientStock, MsgNotEnoughStock)
		}
		return nil, notFound(err, MsgProductNotFound)
	}

	publish(ctx, s.Events, events.TopicCart, userKey(userID), events.New("cart_item_added", map[string]any{
		"userId":     userID,
		"cartItemId": item.ID,
		"productId":  item.ProductID,
		"quantity":   item.Quantity,
	}))

	return item, nil
}

// RemoveFromCart returns the user's cart as it is after the removal.
func (s *CartService) RemoveFromCart(ctx context.Context, userID, itemID uint) (cart []models.CartItem, err error) {
	defer func() { s.Metrics.CartOperation("remove", err) }()

	if itemID == 0 {
		return nil, fail(ErrValidation, transport.MsgCartItemIDInvalid)
	}

	removed, err := s.Repo.RemoveFromCart(ctx, userID, itemID)
	if err != nil {
		return nil, notFound(err, MsgCartItemNotFound)
	}

	publish(ctx, s.Events, events.TopicCart, userKey(userID), events.New("cart_item_removed", map[string]any{
		"userId":     userID,
		"cartItemId": removed.ID,
		"productId":  removed.ProductID,
		"quantity":   removed.Quantity,
	}))

	cart, err = s.Repo.GetCart(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("reload cart: %w", err)
	}
	return cart, nil
}
