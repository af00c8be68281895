package repository

import (
	"context"

	"app/internal/domain/model"
)

type ShopRepository interface {
	FindByID(ctx context.Context, id int64) (model.Shop, error)
	List(ctx context.Context) ([]model.Shop, error)
	Create(ctx context.Context, s model.Shop) (int64, error)
	Update(ctx context.Context, id int64, fields map[string]interface{}) error
	SetDefault(ctx context.Context, id int64) error

	// FindDefault falls back to the lowest-id shop when none is flagged.
	// found=false when no shop exists.
	FindDefault(ctx context.Context) (model.Shop, bool, error)
}
