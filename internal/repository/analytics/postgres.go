package analytics

import (
	"context"
	"io"
	"log"

	"storefront/internal/domain"

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

func (r *postgresRepo) Totals(ctx context.Context) (Totals, error) {
	const q = `
SELECT
    (SELECT COUNT(*) FROM orders),
    (SELECT COALESCE(SUM(total), 0) FROM orders),
    (SELECT COUNT(*) FROM users),
    (SELECT COUNT(*) FROM products)
`
	var t Totals
	if err := r.pool.QueryRow(ctx, q).Scan(&t.Orders, &t.Revenue, &t.Users, &t.Products); err != nil {
		r.logger.Printf("analytics repo: totals error=%v", err)
		return Totals{}, err
	}
	return t, nil
}

// TopCategories counts order lines per product category. Revenue sums the
// frozen line unit prices.
func (r *postgresRepo) TopCategories(ctx context.Context, limit int) ([]domain.CategorySales, error) {
	const q = `
SELECT p.category, COUNT(*), COALESCE(SUM((item->>'price')::numeric), 0)
FROM orders o
CROSS JOIN LATERAL jsonb_array_elements(o.items) AS item
JOIN products p ON p.id::text = item->>'productId'
GROUP BY p.category
ORDER BY COUNT(*) DESC, p.category ASC
LIMIT $1
`
	rows, err := r.pool.Query(ctx, q, limit)
	if err != nil {
		r.logger.Printf("analytics repo: categories error=%v", err)
		return nil, err
	}
	defer rows.Close()

	result := []domain.CategorySales{}
	for rows.Next() {
		var c domain.CategorySales
		if err := rows.Scan(&c.Name, &c.Orders, &c.Revenue); err != nil {
			return nil, err
		}
		c.Revenue = c.Revenue.Round(2)
		result = append(result, c)
	}
	return result, rows.Err()
}

func (r *postgresRepo) RecentOrders(ctx context.Context, limit int) ([]domain.RecentOrder, error) {
	const q = `
SELECT o.order_number, COALESCE(u.name, 'Unknown'), o.total, o.order_status, o.created_at
FROM orders o
LEFT JOIN users u ON u.id = o.user_id
ORDER BY o.created_at DESC
LIMIT $1
`
	rows, err := r.pool.Query(ctx, q, limit)
	if err != nil {
		r.logger.Printf("analytics repo: recent orders error=%v", err)
		return nil, err
	}
	defer rows.Close()

	result := []domain.RecentOrder{}
	for rows.Next() {
		var o domain.RecentOrder
		var status string
		if err := rows.Scan(&o.OrderNumber, &o.Customer, &o.Amount, &status, &o.Date); err != nil {
			return nil, err
		}
		o.Status = domain.OrderStatus(status)
		result = append(result, o)
	}
	return result, rows.Err()
}

func (r *postgresRepo) StatusCounts(ctx context.Context) ([]domain.StatusCount, error) {
	const q = `SELECT order_status, COUNT(*) FROM orders GROUP BY order_status ORDER BY order_status`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("analytics repo: status counts error=%v", err)
		return nil, err
	}
	defer rows.Close()

	result := []domain.StatusCount{}
	for rows.Next() {
		var s domain.StatusCount
		var status string
		if err := rows.Scan(&status, &s.Count); err != nil {
			return nil, err
		}
		s.Status = domain.OrderStatus(status)
		result = append(result, s)
	}
	return result, rows.Err()
}
