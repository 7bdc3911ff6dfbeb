package handler

import (
	"net/http"

	"dokan-be/internal/cart"

	"github.com/labstack/echo/v4"
)

type CartHandler struct {
	carts cart.Service
}

func NewCartHandler(carts cart.Service) *CartHandler {
	return &CartHandler{carts: carts}
}

func (h *CartHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := identity(c)
	if err != nil {
		return err
	}

	res, err := h.carts.Get(ctx, id)
	if err != nil {
		return toHTTPError(c, err)
	}

	return c.JSON(http.StatusOK, res)
}

type addItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

func (h *CartHandler) AddItem(c echo.Context) error {
	ctx := c.Request().Context()

	var req addItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.ProductID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "productId is required")
	}

	id, err := identity(c)
	if err != nil {
		return err
	}

	res, err := h.carts.Add(ctx, id, req.ProductID, req.Quantity)
	if err != nil {
		return toHTTPError(c, err)
	}

	return c.JSON(http.StatusOK, res)
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := identity(c)
	if err != nil {
		return err
	}

	res, err := h.carts.Remove(ctx, id, c.Param("productId"))
	if err != nil {
		return toHTTPError(c, err)
	}

	return c.JSON(http.StatusOK, res)
}

func (h *CartHandler) Clear(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := identity(c)
	if err != nil {
		return err
	}

	res, err := h.carts.Clear(ctx, id)
	if err != nil {
		return toHTTPError(c, err)
	}

	return c.JSON(http.StatusOK, res)
}
