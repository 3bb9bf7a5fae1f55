package repo

import (
	"context"

	"github.com/Skotchmaster/storefront/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Receipt struct {
	Total     float64
	Balance   float64
	Purchases []models.BoughtProduct
}

// Checkout turns the user's cart into purchases and charges the balance.
// The total must be strictly below the balance. Nothing is written otherwise.
func (r *GormRepo) Checkout(ctx context.Context, userID uint) (*Receipt, error) {
	var receipt Receipt

	if err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, userID).Error; err != nil {
			return err
		}

		var items []models.CartItem
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("Product").
			Where("user_id = ?", userID).
			Order("id ASC").
			Find(&items).Error; err != nil {
			return err
		}

		var total float64
		for _, it := range items {
			total += it.Product.Price * float64(it.Quantity)
		}
		receipt.Total = total
		if total >= user.Balance {
			return ErrInsufficientBalance
		}

		purchases := make([]models.BoughtProduct, 0, len(items))
		ids := make([]uint, 0, len(items))
		for _, it := range items {
			purchases = append(purchases, models.BoughtProduct{
				UserID:    userID,
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
				UnitPrice: it.Product.Price,
			})
			ids = append(ids, it.ID)
		}

		if len(purchases) > 0 {
			if err := tx.Create(&purchases).Error; err != nil {
				return err
			}
			res := tx.Where("id IN ? AND user_id = ?", ids, userID).Delete(&models.CartItem{})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected != int64(len(ids)) {
				return ErrCartChanged
			}
		}

		if err := tx.Model(&user).Update("balance", gorm.Expr("balance - ?", total)).Error; err != nil {
			return err
		}
		if err := tx.Select("balance").First(&user, userID).Error; err != nil {
			return err
		}
		receipt.Balance = user.Balance

		purchaseIDs := make([]uint, 0, len(purchases))
		for _, p := range purchases {
			purchaseIDs = append(purchaseIDs, p.ID)
		}
		receipt.Purchases = []models.BoughtProduct{}
		if len(purchaseIDs) == 0 {
			return nil
		}
		return tx.Preload("Product.Brand").Where("id IN ?", purchaseIDs).Order("id ASC").Find(&receipt.Purchases).Error
	}); err != nil {
		return &receipt, err
	}
	return &receipt, nil
}
