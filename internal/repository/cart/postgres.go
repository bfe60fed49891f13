package cart

import (
	"context"
	"errors"
	"io"
	"log"

	"storefront/internal/domain"

	"github.com/jackc/pgx/v5"
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

func (r *postgresRepo) GetByUser(ctx context.Context, userID string) (*domain.Cart, error) {
	const cartQuery = `
SELECT id::text, user_id::text, total_items, total_price, created_at, updated_at
FROM carts
WHERE user_id = $1
`
	var cart domain.Cart
	err := r.pool.QueryRow(ctx, cartQuery, userID).Scan(
		&cart.ID,
		&cart.UserID,
		&cart.TotalItems,
		&cart.TotalPrice,
		&cart.CreatedAt,
		&cart.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("cart repo: get user_id=%s error=%v", userID, err)
		return nil, err
	}

	const itemsQuery = `
SELECT ci.product_id::text, ci.quantity, ci.price,
       p.name, p.price, p.original_price, p.images, p.stock
FROM cart_items ci
JOIN products p ON p.id = ci.product_id
WHERE ci.cart_id = $1
ORDER BY ci.position ASC
`
	rows, err := r.pool.Query(ctx, itemsQuery, cart.ID)
	if err != nil {
		r.logger.Printf("cart repo: items cart_id=%s error=%v", cart.ID, err)
		return nil, err
	}
	defer rows.Close()

	cart.Items = []domain.CartItem{}
	for rows.Next() {
		var item domain.CartItem
		summary := &domain.ProductSummary{}
		if err := rows.Scan(
			&item.ProductID,
			&item.Quantity,
			&item.Price,
			&summary.Name,
			&summary.Price,
			&summary.OriginalPrice,
			&summary.Images,
			&summary.Stock,
		); err != nil {
			return nil, err
		}
		summary.ID = item.ProductID
		item.Product = summary
		cart.Items = append(cart.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *postgresRepo) Save(ctx context.Context, cart *domain.Cart) error {
	cart.Recalculate()

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const upsert = `
INSERT INTO carts (user_id, total_items, total_price)
VALUES ($1, $2, $3)
ON CONFLICT (user_id) DO UPDATE
SET total_items = EXCLUDED.total_items,
    total_price = EXCLUDED.total_price,
    updated_at = NOW()
RETURNING id::text, created_at, updated_at
`
	if err := tx.QueryRow(ctx, upsert, cart.UserID, cart.TotalItems, cart.TotalPrice).
		Scan(&cart.ID, &cart.CreatedAt, &cart.UpdatedAt); err != nil {
		r.logger.Printf("cart repo: save user_id=%s error=%v", cart.UserID, err)
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cart.ID); err != nil {
		return err
	}

	if len(cart.Items) > 0 {
		batch := &pgx.Batch{}
		for i, item := range cart.Items {
			batch.Queue(`
INSERT INTO cart_items (cart_id, product_id, quantity, price, position)
VALUES ($1, $2, $3, $4, $5)
`, cart.ID, item.ProductID, item.Quantity, item.Price, i)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			r.logger.Printf("cart repo: save items cart_id=%s error=%v", cart.ID, err)
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}
	r.logger.Printf("cart repo: saved user_id=%s cart_id=%s items=%d total=%s", cart.UserID, cart.ID, cart.TotalItems, cart.TotalPrice)
	return nil
}

func (r *postgresRepo) DeleteByUser(ctx context.Context, userID string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM carts WHERE user_id = $1`, userID)
	if err != nil {
		r.logger.Printf("cart repo: delete user_id=%s error=%v", userID, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
