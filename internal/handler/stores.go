package handler

// Handlers depend on these narrow store interfaces rather than concrete
// repositories, so tests can substitute in-memory fakes and the storage
// backend stays an injection decision made in main.

import (
	"context"

	"github.com/hilgaap/inventori-api/internal/model"
)

// UserStore is the persistence surface the user and auth handlers need.
// *repository.UserRepo satisfies it.
type UserStore interface {
	Create(ctx context.Context, name, email, password, role string, cost int) (uint64, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
	List(ctx context.Context, offset, limit int) ([]model.User, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, id uint64, name, email, role *string) error
	Delete(ctx context.Context, id uint64) error
}

// ProductStore is the persistence surface the product handlers need.
// *repository.ProductRepo satisfies it.
type ProductStore interface {
	Create(ctx context.Context, p model.Product) (uint64, error)
	CreateBulk(ctx context.Context, items []model.Product) (int64, error)
	GetByID(ctx context.Context, id uint64) (model.Product, error)
	List(ctx context.Context, offset, limit int) ([]model.Product, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, id uint64, name, description *string, stock *int, price *float64) error
	Delete(ctx context.Context, id uint64) error
}
