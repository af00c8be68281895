package usecase

import (
	"context"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type ShopUsecase struct {
	tx repo.TransactionManager
}

func NewShopUsecase(tx repo.TransactionManager) *ShopUsecase {
	return &ShopUsecase{tx: tx}
}

func (u *ShopUsecase) List(ctx context.Context) ([]model.Shop, error) {
	var out []model.Shop
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		items, err := r.Shops().List(ctx)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		out = items
		return nil
	})
	if err != nil {
		return []model.Shop{}, err
	}
	return out, nil
}

type ShopInput struct {
	Name          string
	CompanyName   string
	Street        string
	Postcode      string
	City          string
	Country       string
	Email         string
	Phone         string
	VATNumber     string
	CourtRegister string
}

func (u *ShopUsecase) Create(ctx context.Context, in ShopInput) (model.Shop, error) {
	if strings.TrimSpace(in.Name) == "" {
		return model.Shop{}, NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if strings.TrimSpace(in.CompanyName) == "" {
		return model.Shop{}, NewHTTPError(http.StatusBadRequest, "company_name is required")
	}

	shop := model.Shop{
		Name:          strings.TrimSpace(in.Name),
		CompanyName:   strings.TrimSpace(in.CompanyName),
		Street:        strings.TrimSpace(in.Street),
		Postcode:      strings.TrimSpace(in.Postcode),
		City:          strings.TrimSpace(in.City),
		Country:       strings.TrimSpace(in.Country),
		Email:         strings.TrimSpace(in.Email),
		Phone:         strings.TrimSpace(in.Phone),
		VATNumber:     strings.TrimSpace(in.VATNumber),
		CourtRegister: strings.TrimSpace(in.CourtRegister),
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		id, err := r.Shops().Create(ctx, shop)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		shop.ID = id
		return nil
	})

	if err != nil {
		return model.Shop{}, err
	}
	return shop, nil
}

func (u *ShopUsecase) Update(ctx context.Context, id int64, fields map[string]interface{}) (model.Shop, error) {
	if id <= 0 {
		return model.Shop{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if len(fields) == 0 {
		return model.Shop{}, NewHTTPError(http.StatusBadRequest, "no fields")
	}

	var out model.Shop

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := r.Shops().Update(ctx, id, fields); err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		} else if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		s, err := r.Shops().FindByID(ctx, id)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		out = s
		return nil
	})

	if err != nil {
		return model.Shop{}, err
	}
	return out, nil
}

func (u *ShopUsecase) SetDefault(ctx context.Context, id int64) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Shops().FindByID(ctx, id); err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		} else if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.Shops().SetDefault(ctx, id); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
}
