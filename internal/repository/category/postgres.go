package category

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

func (r *postgresRepo) ListActive(ctx context.Context) ([]domain.CatalogCategory, error) {
	const q = `
SELECT id::text, name, COALESCE(description, ''), is_active, created_at
FROM categories
WHERE is_active
ORDER BY name ASC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("category repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	result := []domain.CatalogCategory{}
	for rows.Next() {
		var c domain.CatalogCategory
		var name string
		if err := rows.Scan(&c.ID, &name, &c.Description, &c.IsActive, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.Name = domain.Category(name)
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, c domain.CatalogCategory) (*domain.CatalogCategory, error) {
	const q = `
INSERT INTO categories (name, description, is_active)
VALUES ($1, NULLIF($2, ''), $3)
ON CONFLICT (name) DO UPDATE
SET description = COALESCE(NULLIF(EXCLUDED.description, ''), categories.description),
    is_active = EXCLUDED.is_active
RETURNING id::text, COALESCE(description, ''), is_active, created_at
`
	out := domain.CatalogCategory{Name: c.Name}
	err := r.pool.QueryRow(ctx, q, string(c.Name), c.Description, c.IsActive).
		Scan(&out.ID, &out.Description, &out.IsActive, &out.CreatedAt)
	if err != nil {
		r.logger.Printf("category repo: upsert name=%s error=%v", c.Name, err)
		return nil, err
	}
	return &out, nil
}
