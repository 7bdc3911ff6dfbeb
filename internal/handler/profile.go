package handler

import (
	"net/http"

	"dokan-be/internal/user"

	"github.com/labstack/echo/v4"
)

type ProfileHandler struct {
	users user.Service
}

func NewProfileHandler(users user.Service) *ProfileHandler {
	return &ProfileHandler{users: users}
}

func (h *ProfileHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := requireUser(c)
	if err != nil {
		return err
	}

	u, err := h.users.GetProfile(ctx, *id.UserID)
	if err != nil {
		return toHTTPError(c, err)
	}

	return c.JSON(http.StatusOK, u)
}

type updateProfileRequest struct {
	Name      *string `json:"name"`
	Phone     *string `json:"phone"`
	Address   *string `json:"address"`
	AvatarURL *string `json:"profilePicUrl"`
}

func (h *ProfileHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	id, err := requireUser(c)
	if err != nil {
		return err
	}

	u, err := h.users.UpdateProfile(ctx, user.UpdateProfileParams{
		UserID:    *id.UserID,
		Name:      req.Name,
		Phone:     req.Phone,
		Address:   req.Address,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		return toHTTPError(c, err)
	}

	return c.JSON(http.StatusOK, u)
}
