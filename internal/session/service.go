package session

import (
	"context"
	"time"

	"dokan-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	// Ensure resolves the cookie token to a live session, replacing missing,
	// malformed, or expired tokens with a fresh anonymous session. The bool
	// reports whether a new session was created (so the cookie must be set).
	Ensure(ctx context.Context, token string) (*Session, bool, error)
	BindUser(ctx context.Context, id uuid.UUID, userID uint) error
	Destroy(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
	ttl  time.Duration
}

func NewService(repo Repository, ttl time.Duration) Service {
	return &service{repo: repo, ttl: ttl}
}

func (s *service) Ensure(ctx context.Context, token string) (*Session, bool, error) {
	if token != "" {
		id, err := uuid.Parse(token)
		if err == nil {
			sess, err := s.repo.GetByID(ctx, id)
			if err != nil {
				return nil, false, err
			}
			if sess != nil {
				if !sess.Expired(time.Now()) {
					return sess, false, nil
				}
				// Expired rows are replaced lazily; the delete cascades to
				// the session's cart lines.
				if err := s.repo.Delete(ctx, sess.ID); err != nil {
					return nil, false, err
				}
			}
		}
	}

	sess, err := s.repo.Create(ctx, s.ttl)
	if err != nil {
		return nil, false, err
	}

	logger.FromCtx(ctx).Debug("anonymous session created",
		zap.String("session_id", sess.ID.String()),
	)

	return sess, true, nil
}

func (s *service) BindUser(ctx context.Context, id uuid.UUID, userID uint) error {
	return s.repo.BindUser(ctx, id, userID)
}

func (s *service) Destroy(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
