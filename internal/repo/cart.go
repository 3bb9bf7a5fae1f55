package repo

import (
	"context"

	"github.com/Skotchmaster/storefront/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (r *GormRepo) GetCart(ctx context.Context, userID uint) ([]models.CartItem, error) {
	items := []models.CartItem{}
	if err := r.DB.WithContext(ctx).Preload("Product.Brand").Where("user_id = ?", userID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// AddToCart reserves quantity units of the product and records them as a new
// cart line. Stock is only decremented while it stays non-negative.
func (r *GormRepo) AddToCart(ctx context.Context, userID, productID uint, quantity int) (*models.CartItem, error) {
	var item models.CartItem

	if err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&product, productID).Error; err != nil {
			return err
		}
		if product.InStock < quantity {
			return ErrOutOfStock
		}

		res := tx.Model(&models.Product{}).
			Where("id = ? AND in_stock >= ?", productID, quantity).
			Update("in_stock", gorm.Expr("in_stock - ?", quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrOutOfStock
		}

		item = models.CartItem{UserID: userID, ProductID: productID, Quantity: quantity}
		if err := tx.Create(&item).Error; err != nil {
			return err
		}
		return tx.Preload("Product.Brand").First(&item, item.ID).Error
	}); err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveFromCart deletes one of the user's cart lines and puts its quantity
// back into stock.
func (r *GormRepo) RemoveFromCart(ctx context.Context, userID, itemID uint) (*models.CartItem, error) {
	var item models.CartItem

	if err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND user_id = ?", itemID, userID).
			First(&item).Error; err != nil {
			return err
		}
		if err := tx.Delete(&item).Error; err != nil {
			return err
		}
		return tx.Model(&models.Product{}).
			Where("id = ?", item.ProductID).
			Update("in_stock", gorm.Expr("in_stock + ?", item.Quantity)).Error
	}); err != nil {
		return nil, err
	}
	return &item, nil
}
