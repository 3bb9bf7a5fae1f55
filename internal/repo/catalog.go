package repo

import (
	"context"

	"github.com/Skotchmaster/storefront/internal/models"
)

func (r *GormRepo) ListProducts(ctx context.Context) ([]models.Product, error) {
	var items []models.Product
	if err := r.DB.WithContext(ctx).Preload(withBrand).Preload(withCategories, orderByID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).Preload(withBrand).Preload(withCategories, orderByID).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) ListBrands(ctx context.Context) ([]models.Brand, error) {
	var brands []models.Brand
	if err := r.DB.WithContext(ctx).Preload("Products", orderByID).Order("id ASC").Find(&brands).Error; err != nil {
		return nil, err
	}
	return brands, nil
}

func (r *GormRepo) GetBrand(ctx context.Context, id uint) (*models.Brand, error) {
	var brand models.Brand
	if err := r.DB.WithContext(ctx).Preload("Products", orderByID).First(&brand, id).Error; err != nil {
		return nil, err
	}
	return &brand, nil
}

func (r *GormRepo) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.DB.WithContext(ctx).Preload("Products", orderByID).Order("id ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *GormRepo) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := r.DB.WithContext(ctx).Preload("Products", orderByID).First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// ProductsByBrand fails with gorm.ErrRecordNotFound when the brand does not exist.
func (r *GormRepo) ProductsByBrand(ctx context.Context, brandID uint) ([]models.Product, error) {
	db := r.DB.WithContext(ctx)
	if err := db.Select("id").First(&models.Brand{}, brandID).Error; err != nil {
		return nil, err
	}

	items := []models.Product{}
	if err := db.Preload(withBrand).Preload(withCategories, orderByID).
		Where("brand_id = ?", brandID).
		Order("id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ProductsByCategory fails with gorm.ErrRecordNotFound when the category does not exist.
func (r *GormRepo) ProductsByCategory(ctx context.Context, categoryID uint) ([]models.Product, error) {
	db := r.DB.WithContext(ctx)
	if err := db.Select("id").First(&models.Category{}, categoryID).Error; err != nil {
		return nil, err
	}

	items := []models.Product{}
	if err := db.Preload(withBrand).Preload(withCategories, orderByID).
		Joins("JOIN product_categories pc ON pc.product_id = products.id").
		Where("pc.category_id = ?", categoryID).
		Order("products.id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
