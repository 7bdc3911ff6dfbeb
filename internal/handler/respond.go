package handler

import (
	"errors"
	"net/http"

	"dokan-be/internal/cart"
	"dokan-be/internal/logger"
	"dokan-be/internal/order"
	"dokan-be/internal/product"
	"dokan-be/internal/report"
	"dokan-be/internal/session"
	"dokan-be/internal/user"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// toHTTPError maps domain errors onto HTTP statuses. Anything unrecognized is
// logged and surfaced as a generic 500 so internals never leak to the client.
func toHTTPError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, product.ErrNotFound),
		errors.Is(err, cart.ErrProductNotFound),
		errors.Is(err, cart.ErrLineNotFound),
		errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, user.ErrUserNotFound),
		errors.Is(err, report.ErrNoOrders):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())

	case errors.Is(err, user.ErrEmailExists):
		return echo.NewHTTPError(http.StatusConflict, err.Error())

	case errors.Is(err, user.ErrInvalidCredentials),
		errors.Is(err, order.ErrUnauthorized):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())

	case errors.Is(err, user.ErrInvalidInput),
		errors.Is(err, product.ErrInvalidProduct),
		errors.Is(err, order.ErrValidation),
		errors.Is(err, order.ErrEmptyCart),
		errors.Is(err, order.ErrInvalidStatus):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())

	default:
		logger.FromCtx(c.Request().Context()).Error("request failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "something went wrong")
	}
}

// requireUser returns the caller's identity, failing with 401 when the
// session is anonymous.
func requireUser(c echo.Context) (session.Identity, error) {
	id, ok := session.IdentityFrom(c.Request().Context())
	if !ok || !id.Authenticated() {
		return session.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "login required")
	}
	return id, nil
}

// identity returns whatever identity the session middleware resolved,
// anonymous included.
func identity(c echo.Context) (session.Identity, error) {
	id, ok := session.IdentityFrom(c.Request().Context())
	if !ok {
		return session.Identity{}, echo.NewHTTPError(http.StatusInternalServerError, "something went wrong")
	}
	return id, nil
}
