package handler

import (
	"fmt"
	"net/http"

	"dokan-be/internal/order"
	"dokan-be/internal/product"
	"dokan-be/internal/report"
	"dokan-be/internal/user"

	"github.com/labstack/echo/v4"
)

// AdminHandler is the back-office surface: catalog management, order
// oversight, reporting, and the customer list.
type AdminHandler struct {
	products product.Service
	orders   order.Service
	reports  report.Service
	users    user.Service
}

func NewAdminHandler(products product.Service, orders order.Service, reports report.Service, users user.Service) *AdminHandler {
	return &AdminHandler{
		products: products,
		orders:   orders,
		reports:  reports,
		users:    users,
	}
}

func (h *AdminHandler) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()

	items, err := h.products.List(ctx)
	if err != nil {
		return toHTTPError(c, err)
	}

	return c.JSON(http.StatusOK, items)
}

type productRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
}

func (h *AdminHandler) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	p, err := h.products.Create(ctx, product.CreateParams{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
	})
	if err != nil {
		return toHTTPError(c, err)
	}

	return c.JSON(http.StatusCreated, p)
}

type updateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Image       *string  `json:"image"`
}

func (h *AdminHandler) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()

	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	p, err := h.products.Update(ctx, c.Param("id"), product.UpdateParams{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
	})
	if err != nil {
		return toHTTPError(c, err)
	}

	return c.JSON(http.StatusOK, p)
}

func (h *AdminHandler) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.products.Delete(ctx, c.Param("id")); err != nil {
		return toHTTPError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ListOrders returns all orders, optionally filtered to one local business
// day via ?date=YYYY-MM-DD.
func (h *AdminHandler) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()

	orders, err := h.reports.List(ctx, c.QueryParam("date"))
	if err != nil {
		return toHTTPError(c, err)
	}

	return c.JSON(http.StatusOK, orders)
}

// ExportOrders streams the same selection as a CSV download.
func (h *AdminHandler) ExportOrders(c echo.Context) error {
	ctx := c.Request().Context()

	filename, data, err := h.reports.ExportCSV(ctx, c.QueryParam("date"))
	if err != nil {
		return toHTTPError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, filename))

	return c.Blob(http.StatusOK, "text/csv", data)
}

func (h *AdminHandler) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()

	o, err := h.orders.Get(ctx, c.Param("id"))
	if err != nil {
		return toHTTPError(c, err)
	}

	return c.JSON(http.StatusOK, o)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *AdminHandler) UpdateOrderStatus(c echo.Context) error {
	ctx := c.Request().Context()

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	o, err := h.orders.UpdateStatus(ctx, c.Param("id"), order.Status(req.Status))
	if err != nil {
		return toHTTPError(c, err)
	}

	return c.JSON(http.StatusOK, o)
}

func (h *AdminHandler) ListUsers(c echo.Context) error {
	ctx := c.Request().Context()

	users, err := h.users.ListUsers(ctx)
	if err != nil {
		return toHTTPError(c, err)
	}

	return c.JSON(http.StatusOK, users)
}
