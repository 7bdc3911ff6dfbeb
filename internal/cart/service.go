package cart

import (
	"context"

	"dokan-be/internal/logger"
	"dokan-be/internal/product"
	"dokan-be/internal/session"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service is the cart engine. Every operation acts on the cart owned by the
// given identity — anonymous session or account — and returns the full cart
// with totals derived fresh from the lines.
type Service interface {
	Get(ctx context.Context, owner session.Identity) (Cart, error)
	Add(ctx context.Context, owner session.Identity, productID string, quantity int) (Cart, error)
	Remove(ctx context.Context, owner session.Identity, productID string) (Cart, error)
	Clear(ctx context.Context, owner session.Identity) (Cart, error)
	// MergeIntoAccount folds the anonymous session cart into the account cart
	// at login and empties the anonymous cart. Called exactly once per login.
	MergeIntoAccount(ctx context.Context, sessionID uuid.UUID, userID uint) (Cart, error)
}

type service struct {
	repo        Repository
	productRepo product.Repository
}

func NewService(repo Repository, productRepo product.Repository) Service {
	return &service{repo: repo, productRepo: productRepo}
}

// Get never reports a missing cart; an owner with no lines has an empty cart.
func (s *service) Get(ctx context.Context, owner session.Identity) (Cart, error) {
	lines, err := s.repo.GetLines(ctx, owner)
	if err != nil {
		return Cart{}, err
	}
	return Build(lines), nil
}

func (s *service) Add(ctx context.Context, owner session.Identity, productID string, quantity int) (Cart, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddToCart"),
		zap.String("product_id", productID),
	)

	if quantity < 1 {
		quantity = 1
	}

	p, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return Cart{}, err
	}
	if p == nil {
		return Cart{}, ErrProductNotFound
	}

	// Name, price, and image are frozen here; an existing line for the same
	// product only gains quantity and keeps its original capture.
	line := Line{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Image:     p.Image,
		Quantity:  quantity,
	}

	if err := s.repo.UpsertLine(ctx, owner, line); err != nil {
		log.Error("failed to add cart line", zap.Error(err))
		return Cart{}, err
	}

	return s.Get(ctx, owner)
}

func (s *service) Remove(ctx context.Context, owner session.Identity, productID string) (Cart, error) {
	if err := s.repo.DeleteLine(ctx, owner, productID); err != nil {
		return Cart{}, err
	}
	return s.Get(ctx, owner)
}

func (s *service) Clear(ctx context.Context, owner session.Identity) (Cart, error) {
	if err := s.repo.Clear(ctx, owner); err != nil {
		return Cart{}, err
	}
	return Build(nil), nil
}

func (s *service) MergeIntoAccount(ctx context.Context, sessionID uuid.UUID, userID uint) (Cart, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "MergeIntoAccount"),
		zap.Uint("user_id", userID),
	)

	anonymous, err := s.repo.GetLines(ctx, session.Identity{SessionID: sessionID})
	if err != nil {
		return Cart{}, err
	}

	account := session.Identity{SessionID: sessionID, UserID: &userID}

	if len(anonymous) == 0 {
		return s.Get(ctx, account)
	}

	current, err := s.repo.GetLines(ctx, account)
	if err != nil {
		return Cart{}, err
	}

	merged := MergeLines(anonymous, current)
	if err := s.repo.ReplaceUserLinesTx(ctx, userID, sessionID, merged); err != nil {
		return Cart{}, err
	}

	log.Info("anonymous cart merged",
		zap.Int("anonymous_lines", len(anonymous)),
		zap.Int("merged_lines", len(merged)),
	)

	return Build(merged), nil
}
