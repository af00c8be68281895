package repository

import (
	"context"

	"app/internal/domain/model"
)

type BankAccountRepository interface {
	FindByID(ctx context.Context, id int64) (model.BankAccount, error)

	// FindByIDForUpdate takes a row lock so concurrent invoice generation
	// against the same account is serialized. Only meaningful inside a
	// transaction.
	FindByIDForUpdate(ctx context.Context, id int64) (model.BankAccount, error)

	List(ctx context.Context, includeInactive bool) ([]model.BankAccount, error)
	Create(ctx context.Context, a model.BankAccount) (int64, error)
	Update(ctx context.Context, id int64, fields map[string]interface{}) error

	// SetDefault clears the flag everywhere and sets it on one account.
	SetDefault(ctx context.Context, id int64) error

	// FindDefaultActive returns the default active account; falls back to
	// the lowest-id active account when none is flagged. found=false when
	// no active account exists at all.
	FindDefaultActive(ctx context.Context) (model.BankAccount, bool, error)
}
