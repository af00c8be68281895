package usecase

import (
	"context"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type ProductUsecase struct {
	products repo.ProductRepository
}

func NewProductUsecase(products repo.ProductRepository) *ProductUsecase {
	return &ProductUsecase{products: products}
}

func (u *ProductUsecase) ListActive(ctx context.Context) ([]model.Product, error) {
	items, err := u.products.ListActive(ctx)
	if err != nil {
		return []model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

// UpdatePrice sets a product's current price per liter.
func (u *ProductUsecase) UpdatePrice(ctx context.Context, id int64, pricePerLiter float64) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if pricePerLiter <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid price per liter")
	}

	err := u.products.Update(ctx, id, map[string]interface{}{
		"price_per_liter": pricePerLiter,
	})
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
