package handler

import (
	"net/http"

	"dokan-be/internal/cart"
	"dokan-be/internal/logger"
	"dokan-be/internal/metrics"
	"dokan-be/internal/session"
	"dokan-be/internal/user"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type AuthHandler struct {
	users      user.Service
	sessions   session.Service
	carts      cart.Service
	cookieName string
}

func NewAuthHandler(users user.Service, sessions session.Service, carts cart.Service, cookieName string) *AuthHandler {
	return &AuthHandler{
		users:      users,
		sessions:   sessions,
		carts:      carts,
		cookieName: cookieName,
	}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates the account only; the caller logs in separately.
func (h *AuthHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()

	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	u, err := h.users.Register(ctx, user.RegisterParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return toHTTPError(c, err)
	}

	return c.JSON(http.StatusCreated, u)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials, binds the current session to the account, and
// folds the anonymous cart into the account cart.
func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	id, err := identity(c)
	if err != nil {
		return err
	}

	u, err := h.users.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return toHTTPError(c, err)
	}

	if err := h.sessions.BindUser(ctx, id.SessionID, u.ID); err != nil {
		return toHTTPError(c, err)
	}

	if _, err := h.carts.MergeIntoAccount(ctx, id.SessionID, u.ID); err != nil {
		// The user is logged in either way; losing the anonymous cart is
		// better than failing the login.
		logger.FromCtx(ctx).Error("cart merge failed on login",
			zap.Uint("user_id", u.ID),
			zap.Error(err),
		)
	} else {
		metrics.CartMerges.Inc()
	}

	metrics.Logins.Inc()

	return c.JSON(http.StatusOK, u)
}

// Logout destroys the session server-side; the old token is dead even if the
// client keeps the cookie.
func (h *AuthHandler) Logout(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := identity(c)
	if err != nil {
		return err
	}

	if err := h.sessions.Destroy(ctx, id.SessionID); err != nil {
		return toHTTPError(c, err)
	}

	c.SetCookie(&http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return c.JSON(http.StatusOK, map[string]string{"message": "logged out"})
}

// Me returns the account behind the current session along with its cart, so
// a client can bootstrap its state from one request.
func (h *AuthHandler) Me(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := requireUser(c)
	if err != nil {
		return err
	}

	u, err := h.users.GetProfile(ctx, *id.UserID)
	if err != nil {
		return toHTTPError(c, err)
	}

	crt, err := h.carts.Get(ctx, id)
	if err != nil {
		return toHTTPError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"user": u,
		"cart": crt,
	})
}
