package httpserver

import (
	"net/http"

	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/pkg/logging"
	"github.com/labstack/echo/v4"
)

type CatalogHTTP struct {
	Svc *service.CatalogService
}

func (h *CatalogHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "get.products")

	items, err := h.Svc.ListProducts(ctx)
	if err != nil {
		return writeError(c, l, "get_products_error", err)
	}
	return c.JSON(http.StatusOK, items)
}

// GetProduct treats a malformed id like an unknown one.
func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "get.product")

	id, err := transport.ParseID(c.Param("id"), service.MsgProductNotFound)
	if err != nil {
		l.Warn("get_product_error", "status", http.StatusNotFound, "id", c.Param("id"))
		return c.JSON(http.StatusNotFound, transport.ErrorResponse{Errors: []string{service.MsgProductNotFound}})
	}

	product, err := h.Svc.GetProduct(ctx, id)
	if err != nil {
		return writeError(c, l, "get_product_error", err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *CatalogHTTP) GetBrands(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "get.brands")

	brands, err := h.Svc.ListBrands(ctx)
	if err != nil {
		return writeError(c, l, "get_brands_error", err)
	}
	return c.JSON(http.StatusOK, transport.NewBrandsResponse(brands))
}

func (h *CatalogHTTP) GetBrand(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "get.brand")

	id, err := transport.ParseID(c.Param("id"), service.MsgBrandNotFound)
	if err != nil {
		return c.JSON(http.StatusNotFound, transport.ErrorResponse{Errors: []string{service.MsgBrandNotFound}})
	}

	brand, err := h.Svc.GetBrand(ctx, id)
	if err != nil {
		return writeError(c, l, "get_brand_error", err)
	}
	return c.JSON(http.StatusOK, transport.NewBrandResponse(*brand))
}

func (h *CatalogHTTP) GetCategories(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "get.categories")

	categories, err := h.Svc.ListCategories(ctx)
	if err != nil {
		return writeError(c, l, "get_categories_error", err)
	}
	return c.JSON(http.StatusOK, transport.NewCategoriesResponse(categories))
}

func (h *CatalogHTTP) GetCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "get.category")

	id, err := transport.ParseID(c.Param("id"), service.MsgCategoryNotFound)
	if err != nil {
		return c.JSON(http.StatusNotFound, transport.ErrorResponse{Errors: []string{service.MsgCategoryNotFound}})
	}

	category, err := h.Svc.GetCategory(ctx, id)
	if err != nil {
		return writeError(c, l, "get_category_error", err)
	}
	return c.JSON(http.StatusOK, transport.NewCategoryResponse(*category))
}

func (h *CatalogHTTP) ProductsByBrand(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "products.by.brand")

	id, err := transport.ParseID(c.Param("id"), transport.MsgBrandIDMissing)
	if err != nil {
		return writeError(c, l, "products_by_brand_error", err)
	}

	items, err := h.Svc.ProductsByBrand(ctx, id)
	if err != nil {
		return writeError(c, l, "products_by_brand_error", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CatalogHTTP) ProductsByCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "products.by.category")

	id, err := transport.ParseID(c.Param("id"), transport.MsgCategoryIDMissing)
	if err != nil {
		return writeError(c, l, "products_by_category_error", err)
	}

	items, err := h.Svc.ProductsByCategory(ctx, id)
	if err != nil {
		return writeError(c, l, "products_by_category_error", err)
	}
	return c.JSON(http.StatusOK, items)
}
