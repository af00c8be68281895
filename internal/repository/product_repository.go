package repository

import (
	"context"

	"app/internal/domain/model"
)

type ProductRepository interface {
	FindByCode(ctx context.Context, code string) (model.Product, error)
	ListActive(ctx context.Context) ([]model.Product, error)
	Create(ctx context.Context, p model.Product) (int64, error)
	Update(ctx context.Context, id int64, fields map[string]interface{}) error
	Count(ctx context.Context) (int64, error)
}
