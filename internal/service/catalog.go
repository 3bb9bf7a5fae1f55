package service

import (
	"context"
	"errors"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"gorm.io/gorm"
)

type CatalogService struct {
	Repo *repo.GormRepo
}

func notFound(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(ErrNotFound, msg)
	}
	return err
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.Repo.ListProducts(ctx)
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	p, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		return nil, notFound(err, MsgProductNotFound)
	}
	return p, nil
}

func (s *CatalogService) ListBrands(ctx context.Context) ([]models.Brand, error) {
	return s.Repo.ListBrands(ctx)
}

func (s *CatalogService) GetBrand(ctx context.Context, id uint) (*models.Brand, error) {
	b, err := s.Repo.GetBrand(ctx, id)
	if err != nil {
		return nil, notFound(err, MsgBrandNotFound)
	}
	return b, nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.Repo.ListCategories(ctx)
}

func (s *CatalogService) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	c, err := s.Repo.GetCategory(ctx, id)
	if err != nil {
		return nil, notFound(err, MsgCategoryNotFound)
	}
	return c, nil
}

func (s *CatalogService) ProductsByBrand(ctx context.Context, brandID uint) ([]models.Product, error) {
	items, err := s.Repo.ProductsByBrand(ctx, brandID)
	if err != nil {
		return nil, notFound(err, MsgBrandNotFound)
	}
	return items, nil
}

func (s *CatalogService) ProductsByCategory(ctx context.Context, categoryID uint) ([]models.Product, error) {
	items, err := s.Repo.ProductsByCategory(ctx, categoryID)
	if err != nil {
		return nil, notFound(err, MsgCategoryNotFound)
	}
	return items, nil
}
