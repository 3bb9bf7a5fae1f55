package repo

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrUserAlreadyExist    = errors.New("user already exist")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrOutOfStock          = errors.New("not enough products in stock")
	ErrInsufficientBalance = errors.New("not enough balance")
	ErrCartChanged         = errors.New("cart changed during checkout")
)

type GormRepo struct {
	DB *gorm.DB
}

// Preload paths shared by every read that returns products to a client.
const (
	withBrand      = "Brand"
	withCategories = "Categories"
)

func orderByID(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}
