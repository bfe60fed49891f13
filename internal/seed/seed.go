// Package seed loads the demo catalog, the category list and an admin
// account. Running it again updates the same rows.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"storefront/internal/domain"
	categoryrepo "storefront/internal/repository/category"
	productrepo "storefront/internal/repository/product"
	userrepo "storefront/internal/repository/user"
	categorysvc "storefront/internal/service/category"
	productsvc "storefront/internal/service/product"
	usersvc "storefront/internal/service/user"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Admin is the account created by Apply when it does not exist yet.
type Admin struct {
	Name     string
	Email    string
	Password string
}

var DefaultAdmin = Admin{Name: "Admin User", Email: "admin@storefront.example", Password: "admin123"}

// Apply upserts categories and products by name and SKU, and creates the
// admin account unless the email is taken.
func Apply(ctx context.Context, pool *pgxpool.Pool, admin Admin, logger *log.Logger) error {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	categories := categorysvc.New(categoryrepo.NewPostgres(pool, logger))
	for _, c := range Categories() {
		if _, err := categories.Upsert(ctx, c); err != nil {
			return fmt.Errorf("upsert category %s: %w", c.Name, err)
		}
	}

	products := productsvc.New(productrepo.NewPostgres(pool, logger))
	for _, p := range Products() {
		if _, err := products.Upsert(ctx, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.SKU, err)
		}
	}

	created, err := ensureAdmin(ctx, userrepo.NewPostgres(pool, logger), admin)
	if err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}
	if created {
		logger.Printf("seed: admin user created email=%s", admin.Email)
	}
	return nil
}

type userCreator interface {
	Create(ctx context.Context, u domain.User) (*domain.User, error)
}

func ensureAdmin(ctx context.Context, users userCreator, admin Admin) (bool, error) {
	hash, err := usersvc.HashPassword(admin.Password)
	if err != nil {
		return false, err
	}
	_, err = users.Create(ctx, domain.User{
		Name:         admin.Name,
		Email:        admin.Email,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
	})
	if errors.Is(err, domain.ErrAlreadyExists) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
