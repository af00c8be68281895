package repository

import (
	"context"
	"errors"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BankAccountGormRepository struct {
	db *gorm.DB
}

func NewBankAccountGormRepository(db *gorm.DB) *BankAccountGormRepository {
	return &BankAccountGormRepository{db: db}
}

func (r *BankAccountGormRepository) FindByID(ctx context.Context, id int64) (model.BankAccount, error) {
	var a model.BankAccount
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.BankAccount{}, repo.ErrNotFound
	}
	if err != nil {
		return model.BankAccount{}, err
	}
	return a, nil
}

// SELECT ... FOR UPDATE: serializes invoice generation per account.
func (r *BankAccountGormRepository) FindByIDForUpdate(ctx context.Context, id int64) (model.BankAccount, error) {
	var a model.BankAccount
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.BankAccount{}, repo.ErrNotFound
	}
	if err != nil {
		return model.BankAccount{}, err
	}
	return a, nil
}

func (r *BankAccountGormRepository) List(ctx context.Context, includeInactive bool) ([]model.BankAccount, error) {
	q := r.db.WithContext(ctx).Model(&model.BankAccount{})
	if !includeInactive {
		q = q.Where("is_active = ?", true)
	}

	var items []model.BankAccount
	if err := q.Order("id asc").Find(&items).Error; err != nil {
		return []model.BankAccount{}, err
	}
	return items, nil
}

func (r *BankAccountGormRepository) Create(ctx context.Context, a model.BankAccount) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&a).Error; err != nil {
		return 0, err
	}
	return a.ID, nil
}

func (r *BankAccountGormRepository) Update(ctx context.Context, id int64, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now()

	res := r.db.WithContext(ctx).Model(&model.BankAccount{}).
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

// SetDefault clears the flag on every account, then sets it on one. Run it
// inside a transaction so the "exactly one default" promise holds.
func (r *BankAccountGormRepository) SetDefault(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Model(&model.BankAccount{}).
		Where("is_default = ?", true).
		Update("is_default", false).Error; err != nil {
		return err
	}

	res := r.db.WithContext(ctx).Model(&model.BankAccount{}).
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

func (r *BankAccountGormRepository) FindDefaultActive(ctx context.Context) (model.BankAccount, bool, error) {
	var a model.BankAccount
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND is_default = ?", true, true).
		First(&a).Error
	if err == nil {
		return a, true, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return model.BankAccount{}, false, err
	}

	// nothing flagged: deterministic fallback to the lowest id
	err = r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id asc").
		First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.BankAccount{}, false, nil
	}
	if err != nil {
		return model.BankAccount{}, false, err
	}
	return a, true, nil
}
