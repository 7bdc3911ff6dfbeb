package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"dokan-be/internal/cart"
	"dokan-be/internal/order"
	"dokan-be/internal/product"
	"dokan-be/internal/session"
	"dokan-be/internal/user"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
)

type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) List(ctx context.Context) ([]product.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]product.Product), args.Error(1)
}

func (m *MockProductService) Get(ctx context.Context, id string) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductService) Create(ctx context.Context, params product.CreateParams) (*product.Product, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductService) Update(ctx context.Context, id string, params product.UpdateParams) (*product.Product, error) {
	args := m.Called(ctx, id, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, params user.RegisterParams) (*user.User, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserService) Authenticate(ctx context.Context, email, password string) (*user.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserService) GetProfile(ctx context.Context, userID uint) (*user.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, params user.UpdateProfileParams) (*user.User, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserService) ListUsers(ctx context.Context) ([]user.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]user.User), args.Error(1)
}

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

type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) Get(ctx context.Context, owner session.Identity) (cart.Cart, error) {
	args := m.Called(ctx, owner)
	return args.Get(0).(cart.Cart), args.Error(1)
}

func (m *MockCartService) Add(ctx context.Context, owner session.Identity, productID string, quantity int) (cart.Cart, error) {
	args := m.Called(ctx, owner, productID, quantity)
	return args.Get(0).(cart.Cart), args.Error(1)
}

func (m *MockCartService) Remove(ctx context.Context, owner session.Identity, productID string) (cart.Cart, error) {
	args := m.Called(ctx, owner, productID)
	return args.Get(0).(cart.Cart), args.Error(1)
}

func (m *MockCartService) Clear(ctx context.Context, owner session.Identity) (cart.Cart, error) {
	args := m.Called(ctx, owner)
	return args.Get(0).(cart.Cart), args.Error(1)
}

func (m *MockCartService) MergeIntoAccount(ctx context.Context, sessionID uuid.UUID, userID uint) (cart.Cart, error) {
	args := m.Called(ctx, sessionID, userID)
	return args.Get(0).(cart.Cart), args.Error(1)
}

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) Place(ctx context.Context, owner session.Identity, params order.PlaceParams) (*order.Order, error) {
	args := m.Called(ctx, owner, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) ListByUser(ctx context.Context, owner session.Identity) ([]order.Order, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderService) Get(ctx context.Context, id string) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, id string, next order.Status) (*order.Order, error) {
	args := m.Called(ctx, id, next)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) List(ctx context.Context, date string) ([]order.Order, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockReportService) ExportCSV(ctx context.Context, date string) (string, []byte, error) {
	args := m.Called(ctx, date)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).([]byte), args.Error(2)
}

// newRequest builds an echo context with an optional JSON body and the given
// identity injected the way the session middleware would.
func newRequest(e *echo.Echo, method, target, body string, id *session.Identity) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	if id != nil {
		req = req.WithContext(session.WithIdentity(req.Context(), *id))
	}

	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func anonID() session.Identity {
	return session.Identity{SessionID: uuid.New()}
}

func userID(id uint) session.Identity {
	return session.Identity{SessionID: uuid.New(), UserID: &id}
}
