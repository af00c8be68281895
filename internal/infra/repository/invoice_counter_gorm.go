package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InvoiceCounterGormRepository struct {
	db *gorm.DB
}

func NewInvoiceCounterGormRepository(db *gorm.DB) *InvoiceCounterGormRepository {
	return &InvoiceCounterGormRepository{db: db}
}

// NextNumber locks the year row, increments it and returns the new value.
// Creates the row on first use of a year.
func (r *InvoiceCounterGormRepository) NextNumber(ctx context.Context, year int) (int64, error) {
	var c model.InvoiceCounter
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("year = ?", year).
		First(&c).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		c = model.InvoiceCounter{Year: year, LastNumber: 1}
		if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
			return 0, err
		}
		return c.LastNumber, nil
	}
	if err != nil {
		return 0, err
	}

	c.LastNumber++
	if err := r.db.WithContext(ctx).Model(&model.InvoiceCounter{}).
		Where("year = ?", year).
		Update("last_number", c.LastNumber).Error; err != nil {
		return 0, err
	}
	return c.LastNumber, nil
}
