package order

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"dokan-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	// CreateTx inserts the order with its item snapshot and empties the
	// buyer's cart in one transaction; none of it survives a failure.
	CreateTx(ctx context.Context, o *Order) error
	FindByUser(ctx context.Context, userID uint) ([]Order, error)
	// FindByRange returns orders newest-first, optionally bounded by the
	// half-open interval [from, to). Nil bounds are ignored.
	FindByRange(ctx context.Context, from, to *time.Time) ([]Order, error)
	FindByID(ctx context.Context, id string) (*Order, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const orderColumns = `id, user_id, customer_name, customer_email, customer_phone, customer_address,
	total_amount, status, payment_method, bkash_number, bkash_tx_id, client_ip, created_at`

func (r *repository) CreateTx(ctx context.Context, o *Order) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateOrder"),
		zap.String("order_id", o.ID),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
	INSERT INTO orders (id, user_id, customer_name, customer_email, customer_phone, customer_address,
		total_amount, status, payment_method, bkash_number, bkash_tx_id, client_ip)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	RETURNING created_at
	`

	err = tx.QueryRowContext(
		ctx,
		query,
		o.ID,
		o.UserID,
		o.Customer.Name,
		o.Customer.Email,
		o.Customer.Phone,
		o.Customer.Address,
		o.TotalAmount,
		o.Status,
		o.Payment.Method,
		o.Payment.BkashNumber,
		o.Payment.BkashTxID,
		o.ClientIP,
	).Scan(&o.CreatedAt)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return err
	}

	for _, item := range o.Items {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, name, price, quantity)
			VALUES ($1, $2, $3, $4, $5)
		`, o.ID, item.ProductID, item.Name, item.Price, item.Quantity)
		if err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = $1`, o.UserID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("order transaction failed", zap.Error(err))
		return err
	}

	return nil
}

func (r *repository) FindByUser(ctx context.Context, userID uint) ([]Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders, err := scanOrders(rows)
	if err != nil {
		return nil, err
	}

	return r.attachItems(ctx, orders)
}

func (r *repository) FindByRange(ctx context.Context, from, to *time.Time) ([]Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders`
	args := []any{}

	if from != nil && to != nil {
		query += ` WHERE created_at >= $1 AND created_at < $2`
		args = append(args, *from, *to)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders, err := scanOrders(rows)
	if err != nil {
		return nil, err
	}

	return r.attachItems(ctx, orders)
}

func (r *repository) FindByID(ctx context.Context, id string) (*Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	var o Order
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&o.ID,
		&o.UserID,
		&o.Customer.Name,
		&o.Customer.Email,
		&o.Customer.Phone,
		&o.Customer.Address,
		&o.TotalAmount,
		&o.Status,
		&o.Payment.Method,
		&o.Payment.BkashNumber,
		&o.Payment.BkashTxID,
		&o.ClientIP,
		&o.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	orders, err := r.attachItems(ctx, []Order{o})
	if err != nil {
		return nil, err
	}
	return &orders[0], nil
}

func (r *repository) UpdateStatus(ctx context.Context, id string, status Status) error {
	query := `UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2`

	res, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrOrderNotFound
	}

	return nil
}

// attachItems loads the item snapshots for every order in one query.
func (r *repository) attachItems(ctx context.Context, orders []Order) ([]Order, error) {
	if len(orders) == 0 {
		return orders, nil
	}

	ids := make([]string, len(orders))
	index := make(map[string]int, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
		index[o.ID] = i
	}

	query := `
	SELECT order_id, product_id, name, price, quantity
	FROM order_items
	WHERE order_id = ANY($1)
	ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var orderID string
		var item Item
		if err := rows.Scan(&orderID, &item.ProductID, &item.Name, &item.Price, &item.Quantity); err != nil {
			return nil, err
		}
		i := index[orderID]
		orders[i].Items = append(orders[i].Items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

func scanOrders(rows *sql.Rows) ([]Order, error) {
	orders := make([]Order, 0)
	for rows.Next() {
		var o Order
		if err := rows.Scan(
			&o.ID,
			&o.UserID,
			&o.Customer.Name,
			&o.Customer.Email,
			&o.Customer.Phone,
			&o.Customer.Address,
			&o.TotalAmount,
			&o.Status,
			&o.Payment.Method,
			&o.Payment.BkashNumber,
			&o.Payment.BkashTxID,
			&o.ClientIP,
			&o.CreatedAt,
		); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
