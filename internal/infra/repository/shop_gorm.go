package repository

import (
	"context"
	"errors"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type ShopGormRepository struct {
	db *gorm.DB
}

func NewShopGormRepository(db *gorm.DB) *ShopGormRepository {
	return &ShopGormRepository{db: db}
}

func (r *ShopGormRepository) FindByID(ctx context.Context, id int64) (model.Shop, error) {
	var s model.Shop
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Shop{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Shop{}, err
	}
	return s, nil
}

func (r *ShopGormRepository) List(ctx context.Context) ([]model.Shop, error) {
	var items []model.Shop
	if err := r.db.WithContext(ctx).Order("id asc").Find(&items).Error; err != nil {
		return []model.Shop{}, err
	}
	return items, nil
}

func (r *ShopGormRepository) Create(ctx context.Context, s model.Shop) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&s).Error; err != nil {
		return 0, err
	}
	return s.ID, nil
}

func (r *ShopGormRepository) Update(ctx context.Context, id int64, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now()

	res := r.db.WithContext(ctx).Model(&model.Shop{}).
		Where("id = ?", id).
		Updates(fields)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *ShopGormRepository) SetDefault(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Model(&model.Shop{}).
		Where("is_default = ?", true).
		Update("is_default", false).Error; err != nil {
		return err
	}

	res := r.db.WithContext(ctx).Model(&model.Shop{}).
		Where("id = ?", id).
		Update("is_default", true)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *ShopGormRepository) FindDefault(ctx context.Context) (model.Shop, bool, error) {
	var s model.Shop
	err := r.db.WithContext(ctx).Where("is_default = ?", true).First(&s).Error
	if err == nil {
		return s, true, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Shop{}, false, err
	}

	err = r.db.WithContext(ctx).Order("id asc").First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Shop{}, false, nil
	}
	if err != nil {
		return model.Shop{}, false, err
	}
	return s, true, nil
}
