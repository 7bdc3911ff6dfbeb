package cart

import (
	"context"
	"database/sql"
	"fmt"

	"dokan-be/internal/logger"
	"dokan-be/internal/session"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	GetLines(ctx context.Context, owner session.Identity) ([]Line, error)
	UpsertLine(ctx context.Context, owner session.Identity, line Line) error
	DeleteLine(ctx context.Context, owner session.Identity, productID string) error
	Clear(ctx context.Context, owner session.Identity) error
	// ReplaceUserLinesTx swaps the account's cart for the merged line set and
	// empties the anonymous cart in one transaction, so a login merge cannot
	// be observed half-applied.
	ReplaceUserLinesTx(ctx context.Context, userID uint, sessionID uuid.UUID, lines []Line) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetLines(ctx context.Context, owner session.Identity) ([]Line, error) {
	query := `
	SELECT product_id, name, price, image, quantity, created_at
	FROM cart_items
	WHERE ` + ownerClause(owner) + `
	ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, ownerArg(owner))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make([]Line, 0)
	for rows.Next() {
		var l Line
		if err := rows.Scan(
			&l.ProductID,
			&l.Name,
			&l.Price,
			&l.Image,
			&l.Quantity,
			&l.AddedAt,
		); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}

func (r *repository) UpsertLine(ctx context.Context, owner session.Identity, line Line) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "UpsertLine"),
		zap.String("product_id", line.ProductID),
	)

	var query string
	if owner.Authenticated() {
		query = `
		INSERT INTO cart_items (user_id, product_id, name, price, image, quantity)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, product_id) WHERE user_id IS NOT NULL
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = NOW()
		`
	} else {
		query = `
		INSERT INTO cart_items (session_id, product_id, name, price, image, quantity)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (session_id, product_id) WHERE session_id IS NOT NULL
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = NOW()
		`
	}

	_, err := r.db.ExecContext(
		ctx,
		query,
		ownerArg(owner),
		line.ProductID,
		line.Name,
		line.Price,
		line.Image,
		line.Quantity,
	)
	if err != nil {
		log.Error("failed to upsert cart line", zap.Error(err))
		return err
	}

	return nil
}

func (r *repository) DeleteLine(ctx context.Context, owner session.Identity, productID string) error {
	query := `DELETE FROM cart_items WHERE ` + ownerClause(owner) + ` AND product_id = $2`

	res, err := r.db.ExecContext(ctx, query, ownerArg(owner), productID)
	if err != nil {
		return err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrLineNotFound
	}

	return nil
}

func (r *repository) Clear(ctx context.Context, owner session.Identity) error {
	query := `DELETE FROM cart_items WHERE ` + ownerClause(owner)

	// Clearing an already-empty cart is fine.
	_, err := r.db.ExecContext(ctx, query, ownerArg(owner))
	return err
}

func (r *repository) ReplaceUserLinesTx(ctx context.Context, userID uint, sessionID uuid.UUID, lines []Line) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ReplaceUserLinesTx"),
		zap.Uint("user_id", userID),
		zap.String("session_id", sessionID.String()),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to clear account cart: %w", err)
	}

	for _, l := range lines {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO cart_items (user_id, product_id, name, price, image, quantity)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, userID, l.ProductID, l.Name, l.Price, l.Image, l.Quantity)
		if err != nil {
			return fmt.Errorf("failed to insert merged line: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE session_id = $1`, sessionID); err != nil {
		return fmt.Errorf("failed to empty anonymous cart: %w", err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("merge transaction failed", zap.Error(err))
		return err
	}

	log.Info("cart merge committed", zap.Int("lines", len(lines)))
	return nil
}

func ownerClause(owner session.Identity) string {
	if owner.Authenticated() {
		return "user_id = $1"
	}
	return "session_id = $1"
}

func ownerArg(owner session.Identity) any {
	if owner.Authenticated() {
		return *owner.UserID
	}
	return owner.SessionID
}
