package product

import (
	"context"

	"dokan-be/internal/logger"

	"go.uber.org/zap"
)

// Service defines the catalog operations. Reads are public, writes are
// reachable only through the admin surface.
type Service interface {
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id string) (*Product, error)
	Create(ctx context.Context, params CreateParams) (*Product, error)
	Update(ctx context.Context, id string, params UpdateParams) (*Product, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]Product, error) {
	return s.repo.List(ctx)
}

func (s *service) Get(ctx context.Context, id string) (*Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	return p, nil
}

func (s *service) Create(ctx context.Context, params CreateParams) (*Product, error) {
	if params.Name == "" || params.Description == "" || params.Image == "" || params.Price < 0 {
		return nil, ErrInvalidProduct
	}

	p, err := s.repo.Create(ctx, params)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to create product",
			zap.String("name", params.Name),
			zap.Error(err),
		)
		return nil, err
	}

	return p, nil
}

func (s *service) Update(ctx context.Context, id string, params UpdateParams) (*Product, error) {
	if params.Price != nil && *params.Price < 0 {
		return nil, ErrInvalidProduct
	}

	p, err := s.repo.Update(ctx, id, params)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}

	return p, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
