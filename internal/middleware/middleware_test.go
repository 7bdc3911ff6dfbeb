package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dokan-be/internal/session"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockSessionService is a mock implementation of the session service
type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) Ensure(ctx context.Context, token string) (*session.Session, bool, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*session.Session), args.Bool(1), args.Error(2)
}

func (m *MockSessionService) BindUser(ctx context.Context, id uuid.UUID, userID uint) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *MockSessionService) Destroy(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestSession(t *testing.T) {
	e := echo.New()

	t.Run("New visitor gets a session cookie", func(t *testing.T) {
		mockSvc := new(MockSessionService)
		sess := &session.Session{ID: uuid.New()}

		mockSvc.On("Ensure", mock.Anything, "").Return(sess, true, nil).Once()

		var got session.Identity
		handler := Session(mockSvc, "dokan_session", time.Hour)(func(c echo.Context) error {
			id, ok := session.IdentityFrom(c.Request().Context())
			require.True(t, ok, "identity should be in the request context")
			got = id
			return c.NoContent(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler(c)
		assert.NoError(t, err)
		assert.Equal(t, sess.ID, got.SessionID)
		assert.False(t, got.Authenticated())

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "dokan_session", cookies[0].Name)
		assert.Equal(t, sess.ID.String(), cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)
		assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
	})

	t.Run("Live session is reused without a new cookie", func(t *testing.T) {
		mockSvc := new(MockSessionService)
		userID := uint(1)
		sess := &session.Session{ID: uuid.New(), UserID: &userID}

		mockSvc.On("Ensure", mock.Anything, sess.ID.String()).Return(sess, false, nil).Once()

		handler := Session(mockSvc, "dokan_session", time.Hour)(func(c echo.Context) error {
			id, ok := session.IdentityFrom(c.Request().Context())
			require.True(t, ok)
			assert.True(t, id.Authenticated())
			return c.NoContent(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
		req.AddCookie(&http.Cookie{Name: "dokan_session", Value: sess.ID.String()})
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler(c)
		assert.NoError(t, err)
		assert.Empty(t, rec.Result().Cookies())
	})

	t.Run("Error - Session Store Failure", func(t *testing.T) {
		mockSvc := new(MockSessionService)

		mockSvc.On("Ensure", mock.Anything, "").Return(nil, false, errors.New("db error")).Once()

		handler := Session(mockSvc, "dokan_session", time.Hour)(func(c echo.Context) error {
			t.Fatal("handler should not run")
			return nil
		})

		req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler(c)
		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusInternalServerError, httpErr.Code)
	})
}

func TestAdminKey(t *testing.T) {
	e := echo.New()

	handler := AdminKey("top-secret")(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	t.Run("Success", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil)
		req.Header.Set("X-Admin-Api-Key", "top-secret")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Error - Wrong Key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil)
		req.Header.Set("X-Admin-Api-Key", "guess")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler(c)
		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	})

	t.Run("Error - Missing Key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler(c)
		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	})
}

func TestRateLimit(t *testing.T) {
	e := echo.New()

	handler := RateLimit()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	do := func(path, ip string) error {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		req.RemoteAddr = ip + ":1234"
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		return handler(c)
	}

	t.Run("Strict tier exhausts after its burst", func(t *testing.T) {
		for i := 0; i < burstStrict; i++ {
			assert.NoError(t, do("/api/auth/login", "10.1.0.1"), "request %d should pass", i+1)
		}

		err := do("/api/auth/login", "10.1.0.1")
		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusTooManyRequests, httpErr.Code)
	})

	t.Run("Callers get independent buckets", func(t *testing.T) {
		for i := 0; i < burstStrict; i++ {
			require.NoError(t, do("/api/auth/login", "10.1.0.2"))
		}
		assert.Error(t, do("/api/auth/login", "10.1.0.2"))

		// A different IP is unaffected.
		assert.NoError(t, do("/api/auth/login", "10.1.0.3"))
	})

	t.Run("Tiers are separate quotas for the same caller", func(t *testing.T) {
		for i := 0; i < burstStrict; i++ {
			require.NoError(t, do("/api/auth/login", "10.1.0.4"))
		}
		assert.Error(t, do("/api/auth/login", "10.1.0.4"))

		// The general bucket still has room.
		assert.NoError(t, do("/api/products", "10.1.0.4"))
	})
}
