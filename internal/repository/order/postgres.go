package order

import (
	"context"
	"errors"
	"io"
	"log"

	"storefront/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const orderColumns = `id::text, user_id::text, order_number, items, shipping_address, payment_method, payment_status, order_status,
subtotal, shipping_fee, tax, total, payment_intent_id, created_at, updated_at`

func (r *postgresRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders`).Scan(&n); err != nil {
		r.logger.Printf("order repo: count error=%v", err)
		return 0, err
	}
	return n, nil
}

func (r *postgresRepo) Place(ctx context.Context, o domain.Order) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	q := `
INSERT INTO orders (user_id, order_number, items, shipping_address, payment_method, payment_status, order_status,
    subtotal, shipping_fee, tax, total, payment_intent_id)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
RETURNING ` + orderColumns
	out, err := scanOrder(tx.QueryRow(ctx, q,
		o.UserID,
		o.OrderNumber,
		o.Items,
		o.ShippingAddress,
		string(o.PaymentMethod),
		string(o.PaymentStatus),
		string(o.OrderStatus),
		o.Subtotal,
		o.ShippingFee,
		o.Tax,
		o.Total,
		o.PaymentIntentID,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			r.logger.Printf("order repo: place user_id=%s duplicate constraint=%s", o.UserID, pgErr.ConstraintName)
			if pgErr.ConstraintName == "orders_payment_intent_id_key" {
				return nil, ErrDuplicatePaymentIntent
			}
			return nil, ErrDuplicateNumber
		}
		r.logger.Printf("order repo: place user_id=%s error=%v", o.UserID, err)
		return nil, err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM carts WHERE user_id = $1`, o.UserID); err != nil {
		r.logger.Printf("order repo: clear cart user_id=%s error=%v", o.UserID, err)
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Printf("order repo: placed order_number=%s user_id=%s total=%s", out.OrderNumber, out.UserID, out.Total)
	return out, nil
}

func (r *postgresRepo) List(ctx context.Context, userID string, limit int) ([]domain.Order, error) {
	q := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`
	args := []any{userID}
	if limit > 0 {
		q += ` LIMIT $2`
		args = append(args, limit)
	}
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Printf("order repo: list user_id=%s error=%v", userID, err)
		return nil, err
	}
	defer rows.Close()

	result := []domain.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) Get(ctx context.Context, userID, id string) (*domain.Order, error) {
	if !domain.ValidID(id) {
		return nil, domain.ErrNotFound
	}
	q := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1 AND user_id = $2`
	o, err := scanOrder(r.pool.QueryRow(ctx, q, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("order repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return o, nil
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id string, orderStatus domain.OrderStatus, paymentStatus domain.PaymentStatus) (*domain.Order, error) {
	if !domain.ValidID(id) {
		return nil, domain.ErrNotFound
	}
	q := `
UPDATE orders SET order_status = $2, payment_status = $3, updated_at = NOW()
WHERE id = $1
RETURNING ` + orderColumns
	o, err := scanOrder(r.pool.QueryRow(ctx, q, id, string(orderStatus), string(paymentStatus)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("order repo: update status id=%s error=%v", id, err)
		return nil, err
	}
	r.logger.Printf("order repo: status id=%s order_status=%s payment_status=%s", id, o.OrderStatus, o.PaymentStatus)
	return o, nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	var method, payStatus, orderStatus string
	if err := row.Scan(
		&o.ID, &o.UserID, &o.OrderNumber, &o.Items, &o.ShippingAddress, &method, &payStatus, &orderStatus,
		&o.Subtotal, &o.ShippingFee, &o.Tax, &o.Total, &o.PaymentIntentID, &o.CreatedAt, &o.UpdatedAt,
	); err != nil {
		return nil, err
	}
	o.PaymentMethod = domain.PaymentMethod(method)
	o.PaymentStatus = domain.PaymentStatus(payStatus)
	o.OrderStatus = domain.OrderStatus(orderStatus)
	return &o, nil
}
