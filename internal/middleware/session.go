package middleware

import (
	"net/http"
	"time"

	"dokan-be/internal/logger"
	"dokan-be/internal/session"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Session resolves the visitor's session cookie to an Identity and injects it
// into the request context. Missing, malformed, or expired cookies are
// replaced with a fresh anonymous session and a new cookie.
func Session(sessions session.Service, cookieName string, ttl time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var token string
			if cookie, err := c.Cookie(cookieName); err == nil {
				token = cookie.Value
			}

			ctx := c.Request().Context()

			sess, isNew, err := sessions.Ensure(ctx, token)
			if err != nil {
				logger.FromCtx(ctx).Error("failed to resolve session", zap.Error(err))
				return echo.NewHTTPError(http.StatusInternalServerError, "something went wrong")
			}

			if isNew {
				c.SetCookie(&http.Cookie{
					Name:     cookieName,
					Value:    sess.ID.String(),
					Path:     "/",
					MaxAge:   int(ttl.Seconds()),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			identity := session.Identity{SessionID: sess.ID, UserID: sess.UserID}
			c.SetRequest(c.Request().WithContext(session.WithIdentity(ctx, identity)))

			return next(c)
		}
	}
}
