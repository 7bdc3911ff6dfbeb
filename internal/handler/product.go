package handler

import (
	"net/http"

	"dokan-be/internal/product"

	"github.com/labstack/echo/v4"
)

type ProductHandler struct {
	products product.Service
}

func NewProductHandler(products product.Service) *ProductHandler {
	return &ProductHandler{products: products}
}

func (h *ProductHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	items, err := h.products.List(ctx)
	if err != nil {
		return toHTTPError(c, err)
	}

	return c.JSON(http.StatusOK, items)
}

func (h *ProductHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	p, err := h.products.Get(ctx, c.Param("id"))
	if err != nil {
		return toHTTPError(c, err)
	}

	return c.JSON(http.StatusOK, p)
}
