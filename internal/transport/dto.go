package transport

import "github.com/Skotchmaster/storefront/internal/models"

type ErrorResponse struct {
	Errors []string `json:"errors"`
}

type AuthResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

type OrderResponse struct {
	Message   string                 `json:"message"`
	Total     float64                `json:"total"`
	Balance   float64                `json:"balance"`
	Purchases []models.BoughtProduct `json:"purchases"`
}

type IndexResponse struct {
	Service   string            `json:"service"`
	Resources map[string]string `json:"resources"`
}

// BrandResponse always carries a products array, empty when the brand has none.
type BrandResponse struct {
	ID       uint             `json:"id"`
	Name     string           `json:"name"`
	Products []models.Product `json:"products"`
}

type CategoryResponse struct {
	ID       uint             `json:"id"`
	Name     string           `json:"name"`
	Products []models.Product `json:"products"`
}

func NewBrandResponse(b models.Brand) BrandResponse {
	return BrandResponse{ID: b.ID, Name: b.Name, Products: nonNil(b.Products)}
}

func NewBrandsResponse(brands []models.Brand) []BrandResponse {
	out := make([]BrandResponse, 0, len(brands))
	for _, b := range brands {
		out = append(out, NewBrandResponse(b))
	}
	return out
}

func NewCategoryResponse(c models.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name, Products: nonNil(c.Products)}
}

func NewCategoriesResponse(categories []models.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, NewCategoryResponse(c))
	}
	return out
}

func nonNil(products []models.Product) []models.Product {
	if products == nil {
		return []models.Product{}
	}
	return products
}
