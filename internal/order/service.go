package order

import (
	"context"
	"fmt"

	"dokan-be/internal/cart"
	"dokan-be/internal/logger"
	"dokan-be/internal/metrics"
	"dokan-be/internal/session"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Place(ctx context.Context, owner session.Identity, params PlaceParams) (*Order, error)
	ListByUser(ctx context.Context, owner session.Identity) ([]Order, error)
	Get(ctx context.Context, id string) (*Order, error)
	UpdateStatus(ctx context.Context, id string, next Status) (*Order, error)
}

type service struct {
	repo  Repository
	carts cart.Service
}

func NewService(repo Repository, carts cart.Service) Service {
	return &service{repo: repo, carts: carts}
}

func (s *service) Place(ctx context.Context, owner session.Identity, params PlaceParams) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "PlaceOrder"),
	)

	if !owner.Authenticated() {
		return nil, ErrUnauthorized
	}

	c, err := s.carts.Get(ctx, owner)
	if err != nil {
		return nil, err
	}
	if len(c.Items) == 0 {
		return nil, ErrEmptyCart
	}

	if err := validateCustomer(params.Customer); err != nil {
		return nil, err
	}
	if err := validatePayment(params.Payment); err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(c.Items))
	for _, line := range c.Items {
		items = append(items, Item{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.Price,
			Quantity:  line.Quantity,
		})
	}

	o := &Order{
		ID:          uuid.NewString(),
		UserID:      *owner.UserID,
		Customer:    params.Customer,
		Items:       items,
		TotalAmount: c.TotalPrice,
		Status:      StatusProcessing,
		Payment:     params.Payment,
		ClientIP:    params.ClientIP,
	}

	if err := s.repo.CreateTx(ctx, o); err != nil {
		log.Error("failed to place order", zap.Error(err))
		return nil, err
	}

	metrics.OrdersPlaced.Inc()
	log.Info("order placed",
		zap.String("order_id", o.ID),
		zap.Uint("user_id", o.UserID),
		zap.Float64("total", o.TotalAmount),
	)

	return o, nil
}

func (s *service) ListByUser(ctx context.Context, owner session.Identity) ([]Order, error) {
	if !owner.Authenticated() {
		return nil, ErrUnauthorized
	}
	return s.repo.FindByUser(ctx, *owner.UserID)
}

func (s *service) Get(ctx context.Context, id string) (*Order, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}
	return o, nil
}

func (s *service) UpdateStatus(ctx context.Context, id string, next Status) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateOrderStatus"),
		zap.String("order_id", id),
	)

	if !next.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidStatus, next)
	}

	o, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !o.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStatus, o.Status, next)
	}

	if err := s.repo.UpdateStatus(ctx, id, next); err != nil {
		return nil, err
	}

	log.Info("order status updated",
		zap.String("from", string(o.Status)),
		zap.String("to", string(next)),
	)

	o.Status = next
	return o, nil
}
