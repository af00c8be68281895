package repository

import (
	"context"

	"app/internal/domain/model"

	"gorm.io/gorm"
)

type StatusHistoryGormRepository struct {
	db *gorm.DB
}

func NewStatusHistoryGormRepository(db *gorm.DB) *StatusHistoryGormRepository {
	return &StatusHistoryGormRepository{db: db}
}

func (r *StatusHistoryGormRepository) Create(ctx context.Context, entry model.StatusHistoryEntry) error {
	return r.db.WithContext(ctx).Create(&entry).Error
}

func (r *StatusHistoryGormRepository) ListByOrderID(ctx context.Context, orderID int64) ([]model.StatusHistoryEntry, error) {
	var items []model.StatusHistoryEntry
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id asc").
		Find(&items).Error
	if err != nil {
		return []model.StatusHistoryEntry{}, err
	}
	return items, nil
}
