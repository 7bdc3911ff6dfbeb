package handler

import (
	"net/http"

	"dokan-be/internal/order"
	"dokan-be/internal/utils"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	orders order.Service
}

func NewOrderHandler(orders order.Service) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type placeOrderRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	Method      string `json:"paymentMethod"`
	BkashNumber string `json:"bkashNumber"`
	BkashTxID   string `json:"bkashTxId"`
}

func (h *OrderHandler) Place(c echo.Context) error {
	ctx := c.Request().Context()

	var req placeOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	id, err := identity(c)
	if err != nil {
		return err
	}

	o, err := h.orders.Place(ctx, id, order.PlaceParams{
		Customer: order.CustomerInfo{
			Name:    req.Name,
			Email:   req.Email,
			Phone:   req.Phone,
			Address: req.Address,
		},
		Payment: order.PaymentDetails{
			Method:      order.PaymentMethod(req.Method),
			BkashNumber: req.BkashNumber,
			BkashTxID:   req.BkashTxID,
		},
		ClientIP: utils.ClientIP(c.Request()),
	})
	if err != nil {
		return toHTTPError(c, err)
	}

	return c.JSON(http.StatusCreated, o)
}

func (h *OrderHandler) Mine(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := requireUser(c)
	if err != nil {
		return err
	}

	orders, err := h.orders.ListByUser(ctx, id)
	if err != nil {
		return toHTTPError(c, err)
	}

	return c.JSON(http.StatusOK, orders)
}
