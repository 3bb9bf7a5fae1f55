package repo

import (
	"context"
	"errors"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/pkg/hash"
	"gorm.io/gorm"
)

func (r *GormRepo) CreateUserIfNotExists(ctx context.Context, u *models.User) error {
	tx := r.DB.WithContext(ctx).Where("email = ?", u.Email).FirstOrCreate(u)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrDuplicatedKey) {
			return ErrUserAlreadyExist
		}
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrUserAlreadyExist
	}
	return nil
}

// UserByCredentials returns the user only when the password matches the stored hash.
func (r *GormRepo) UserByCredentials(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !hash.CheckPassword(user.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

func withUserRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Cart", orderByID).
		Preload("Cart.Product.Brand").
		Preload("BoughtProducts", orderByID).
		Preload("BoughtProducts.Product.Brand")
}

// UserWithRelations loads a user with cart and purchase history, each line
// carrying its product and brand.
func (r *GormRepo) UserWithRelations(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := withUserRelations(r.DB.WithContext(ctx)).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := withUserRelations(r.DB.WithContext(ctx)).Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
