package address

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

const addressColumns = `id::text, user_id::text, full_name, phone_number, building, colony, province, city, area, address, label, is_default, created_at, updated_at`

func (r *postgresRepo) List(ctx context.Context, userID string) ([]domain.Address, error) {
	q := `SELECT ` + addressColumns + ` FROM user_addresses WHERE user_id = $1 ORDER BY is_default DESC, created_at DESC`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		r.logger.Printf("address repo: list user_id=%s error=%v", userID, err)
		return nil, err
	}
	defer rows.Close()

	result := []domain.Address{}
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) Get(ctx context.Context, userID, id string) (*domain.Address, error) {
	if !domain.ValidID(id) {
		return nil, domain.ErrNotFound
	}
	q := `SELECT ` + addressColumns + ` FROM user_addresses WHERE id = $1 AND user_id = $2`
	a, err := scanAddress(r.pool.QueryRow(ctx, q, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("address repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return a, nil
}

func (r *postgresRepo) Create(ctx context.Context, a domain.Address) (*domain.Address, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if a.IsDefault {
		if err := clearDefault(ctx, tx, a.UserID, ""); err != nil {
			return nil, err
		}
	}

	q := `
INSERT INTO user_addresses (user_id, full_name, phone_number, building, colony, province, city, area, address, label, is_default)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING ` + addressColumns
	out, err := scanAddress(tx.QueryRow(ctx, q,
		a.UserID, a.FullName, a.PhoneNumber, a.Building, a.Colony, a.Province, a.City, a.Area, a.Address, string(a.Label), a.IsDefault,
	))
	if err != nil {
		r.logger.Printf("address repo: create user_id=%s error=%v", a.UserID, err)
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Printf("address repo: created id=%s user_id=%s default=%t", out.ID, out.UserID, out.IsDefault)
	return out, nil
}

func (r *postgresRepo) Update(ctx context.Context, a domain.Address) (*domain.Address, error) {
	if !domain.ValidID(a.ID) {
		return nil, domain.ErrNotFound
	}
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if a.IsDefault {
		if err := clearDefault(ctx, tx, a.UserID, a.ID); err != nil {
			return nil, err
		}
	}

	q := `
UPDATE user_addresses
SET full_name = $3, phone_number = $4, building = $5, colony = $6, province = $7, city = $8,
    area = $9, address = $10, label = $11, is_default = $12, updated_at = NOW()
WHERE id = $1 AND user_id = $2
RETURNING ` + addressColumns
	out, err := scanAddress(tx.QueryRow(ctx, q,
		a.ID, a.UserID, a.FullName, a.PhoneNumber, a.Building, a.Colony, a.Province, a.City, a.Area, a.Address, string(a.Label), a.IsDefault,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("address repo: update id=%s error=%v", a.ID, err)
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *postgresRepo) Delete(ctx context.Context, userID, id string) error {
	if !domain.ValidID(id) {
		return domain.ErrNotFound
	}
	cmd, err := r.pool.Exec(ctx, `DELETE FROM user_addresses WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		r.logger.Printf("address repo: delete id=%s error=%v", id, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// clearDefault unsets the default flag on every address of userID except keepID.
func clearDefault(ctx context.Context, tx pgx.Tx, userID, keepID string) error {
	_, err := tx.Exec(ctx, `
UPDATE user_addresses
SET is_default = FALSE, updated_at = NOW()
WHERE user_id = $1 AND is_default AND id::text <> $2
`, userID, keepID)
	return err
}

func scanAddress(row pgx.Row) (*domain.Address, error) {
	var a domain.Address
	var label string
	if err := row.Scan(
		&a.ID, &a.UserID, &a.FullName, &a.PhoneNumber, &a.Building, &a.Colony, &a.Province, &a.City, &a.Area, &a.Address,
		&label, &a.IsDefault, &a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		return nil, err
	}
	a.Label = domain.AddressLabel(label)
	return &a, nil
}
