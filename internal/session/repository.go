package session

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Session, error)
	Create(ctx context.Context, ttl time.Duration) (*Session, error)
	BindUser(ctx context.Context, id uuid.UUID, userID uint) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Session, error) {
	query := `
	SELECT id, user_id, created_at, expires_at
	FROM sessions
	WHERE id = $1
	`

	var s Session
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&s.ID,
		&s.UserID,
		&s.CreatedAt,
		&s.ExpiresAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &s, nil
}

func (r *repository) Create(ctx context.Context, ttl time.Duration) (*Session, error) {
	query := `
	INSERT INTO sessions (id, expires_at)
	VALUES ($1, NOW() + $2 * interval '1 second')
	RETURNING id, user_id, created_at, expires_at
	`

	var s Session
	err := r.db.QueryRowContext(ctx, query, uuid.New(), int64(ttl.Seconds())).Scan(
		&s.ID,
		&s.UserID,
		&s.CreatedAt,
		&s.ExpiresAt,
	)
	if err != nil {
		return nil, err
	}

	return &s, nil
}

func (r *repository) BindUser(ctx context.Context, id uuid.UUID, userID uint) error {
	res, err := r.db.ExecContext(
		ctx,
		`UPDATE sessions SET user_id = $2 WHERE id = $1`,
		id, userID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrSessionNotFound
	}

	return nil
}

// Delete removes the session row. The session's cart rows go with it via the
// cart_items foreign key cascade.
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	return err
}
