package product

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

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

const productColumns = `id::text, name, description, price, original_price, images, category, subcategory, brand, sku, stock,
is_active, is_featured, is_on_sale, tags, specifications, rating, review_count, weight, dimensions, created_at, updated_at`

var sortColumns = map[string]string{
	domain.SortCreatedAt: "created_at",
	domain.SortPrice:     "price",
	domain.SortRating:    "rating",
	domain.SortName:      "name",
}

func (r *postgresRepo) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, int, error) {
	where, args := buildWhere(filter)

	var total int
	countQ := `SELECT COUNT(*) FROM products WHERE ` + where
	if err := r.pool.QueryRow(ctx, countQ, args...).Scan(&total); err != nil {
		r.logger.Printf("product repo: count error=%v", err)
		return nil, 0, err
	}

	column, ok := sortColumns[filter.Sort]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if filter.Ascending {
		direction = "ASC"
	}

	q := fmt.Sprintf(`SELECT %s FROM products WHERE %s ORDER BY %s %s, id LIMIT $%d OFFSET $%d`,
		productColumns, where, column, direction, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset())

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Printf("product repo: list error=%v", err)
		return nil, 0, err
	}
	defer rows.Close()

	result := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("product repo: list rows error=%v", err)
		return nil, 0, err
	}
	r.logger.Printf("product repo: list category=%q search=%q page=%d count=%d total=%d", filter.Category, filter.Search, filter.Page, len(result), total)
	return result, total, nil
}

// buildWhere translates filter into a parameterized predicate. Inactive
// products never match.
func buildWhere(filter domain.ProductFilter) (string, []any) {
	clauses := []string{"is_active"}
	var args []any
	add := func(clause string, arg any) {
		args = append(args, arg)
		clauses = append(clauses, fmt.Sprintf(clause, len(args)))
	}

	if filter.Category != "" {
		add("category = $%d", string(filter.Category))
	}
	if filter.Search != "" {
		add("name ILIKE $%d", escapeLike(filter.Search)+"%")
	}
	if filter.MinPrice != nil {
		add("price >= $%d", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		add("price <= $%d", *filter.MaxPrice)
	}
	if filter.IsFeatured {
		clauses = append(clauses, "is_featured")
	}
	if filter.IsOnSale {
		clauses = append(clauses, "is_on_sale")
	}
	return strings.Join(clauses, " AND "), args
}

// escapeLike makes user input match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	if !domain.ValidID(id) {
		return nil, domain.ErrNotFound
	}
	q := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Printf("product repo: get id=%s not found", id)
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, product domain.Product) (*domain.Product, error) {
	q := `
INSERT INTO products (name, description, price, original_price, images, category, subcategory, brand, sku, stock,
    is_active, is_featured, is_on_sale, tags, specifications, rating, review_count, weight, dimensions)
VALUES ($1, $2, $3, $4, COALESCE($5, '[]'::jsonb), $6, $7, $8, $9, $10,
    $11, $12, $13, COALESCE($14, '[]'::jsonb), COALESCE($15, '{}'::jsonb), $16, $17, $18, $19)
ON CONFLICT (sku) DO UPDATE SET
    name = EXCLUDED.name,
    description = EXCLUDED.description,
    price = EXCLUDED.price,
    original_price = EXCLUDED.original_price,
    images = EXCLUDED.images,
    category = EXCLUDED.category,
    subcategory = EXCLUDED.subcategory,
    brand = EXCLUDED.brand,
    stock = EXCLUDED.stock,
    is_active = EXCLUDED.is_active,
    is_featured = EXCLUDED.is_featured,
    is_on_sale = EXCLUDED.is_on_sale,
    tags = EXCLUDED.tags,
    specifications = EXCLUDED.specifications,
    rating = EXCLUDED.rating,
    review_count = EXCLUDED.review_count,
    weight = EXCLUDED.weight,
    dimensions = EXCLUDED.dimensions,
    updated_at = NOW()
RETURNING ` + productColumns

	res, err := scanProduct(r.pool.QueryRow(ctx, q,
		product.Name,
		product.Description,
		product.Price,
		product.OriginalPrice,
		nilIfEmpty(product.Images),
		string(product.Category),
		product.Subcategory,
		product.Brand,
		product.SKU,
		product.Stock,
		product.IsActive,
		product.IsFeatured,
		product.IsOnSale,
		nilIfEmpty(product.Tags),
		product.Specifications,
		product.Rating,
		product.ReviewCount,
		product.Weight,
		product.Dimensions,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23514" {
			r.logger.Printf("product repo: upsert sku=%s check violation=%s", product.SKU, pgErr.ConstraintName)
			return nil, domain.Invalid("Invalid product", pgErr.ConstraintName)
		}
		r.logger.Printf("product repo: upsert sku=%s error=%v", product.SKU, err)
		return nil, err
	}
	r.logger.Printf("product repo: upserted sku=%s id=%s", res.SKU, res.ID)
	return res, nil
}

// AdjustStock adds delta to the product's stock and returns the new level.
// A change that would drive stock negative is rejected.
func (r *postgresRepo) AdjustStock(ctx context.Context, id string, delta int) (int, error) {
	if !domain.ValidID(id) {
		return 0, domain.ErrNotFound
	}
	const q = `
UPDATE products SET stock = stock + $2, updated_at = NOW()
WHERE id = $1 AND stock + $2 >= 0
RETURNING stock
`
	var stock int
	err := r.pool.QueryRow(ctx, q, id, delta).Scan(&stock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if _, getErr := r.GetByID(ctx, id); getErr != nil {
				return 0, getErr
			}
			r.logger.Printf("product repo: adjust stock id=%s delta=%d insufficient", id, delta)
			return 0, domain.InvalidBecause(domain.ErrInsufficientStock)
		}
		r.logger.Printf("product repo: adjust stock id=%s delta=%d error=%v", id, delta, err)
		return 0, err
	}
	r.logger.Printf("product repo: adjust stock id=%s delta=%d stock=%d", id, delta, stock)
	return stock, nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	var category string
	if err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.OriginalPrice, &p.Images, &category, &p.Subcategory, &p.Brand, &p.SKU, &p.Stock,
		&p.IsActive, &p.IsFeatured, &p.IsOnSale, &p.Tags, &p.Specifications, &p.Rating, &p.ReviewCount, &p.Weight, &p.Dimensions,
		&p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	p.Category = domain.Category(category)
	if p.Images == nil {
		p.Images = []string{}
	}
	return &p, nil
}

func nilIfEmpty(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return s
}
