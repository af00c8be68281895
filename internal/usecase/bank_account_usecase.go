package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type BankAccountUsecase struct {
	tx repo.TransactionManager
}

func NewBankAccountUsecase(tx repo.TransactionManager) *BankAccountUsecase {
	return &BankAccountUsecase{tx: tx}
}

// dayRange returns the local calendar day of t as a half-open interval.
// The ledger is deliberately local-time: invoices are dated in the
// deployment's day, not UTC's.
func dayRange(t time.Time) (time.Time, time.Time) {
	local := t.Local()
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.Local)
	return start, start.AddDate(0, 0, 1)
}

// sumDailyUsage recomputes the account's invoiced volume for the day from
// live order rows. Never cached.
func sumDailyUsage(ctx context.Context, orders repo.OrderRepository, accountID int64, day time.Time) (float64, error) {
	from, to := dayRange(day)
	return orders.SumInvoicedBetween(ctx, accountID, from, to)
}

// checkDailyLimit reports whether the proposed amount still fits the
// account's daily cap. daily_limit == 0 means unlimited.
func checkDailyLimit(account model.BankAccount, usage float64, proposed float64) bool {
	if account.DailyLimit == 0 {
		return true
	}
	return usage+proposed <= account.DailyLimit
}

type DailyUsageOutput struct {
	BankAccountID int64   `json:"bank_account_id"`
	Date          string  `json:"date"`
	Usage         float64 `json:"usage"`
	DailyLimit    float64 `json:"daily_limit"`
	Remaining     float64 `json:"remaining"` // 0 when unlimited
}

func (u *BankAccountUsecase) DailyUsage(ctx context.Context, accountID int64, day time.Time) (DailyUsageOutput, error) {
	if accountID <= 0 {
		return DailyUsageOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out DailyUsageOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		account, err := r.BankAccounts().FindByID(ctx, accountID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		usage, err := sumDailyUsage(ctx, r.Orders(), accountID, day)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		remaining := 0.0
		if account.DailyLimit > 0 {
			remaining = round2(account.DailyLimit - usage)
		}
		from, _ := dayRange(day)
		out = DailyUsageOutput{
			BankAccountID: accountID,
			Date:          from.Format("2006-01-02"),
			Usage:         round2(usage),
			DailyLimit:    account.DailyLimit,
			Remaining:     remaining,
		}
		return nil
	})

	if err != nil {
		return DailyUsageOutput{}, err
	}
	return out, nil
}

func (u *BankAccountUsecase) List(ctx context.Context, includeInactive bool) ([]model.BankAccount, error) {
	var out []model.BankAccount
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		items, err := r.BankAccounts().List(ctx, includeInactive)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		out = items
		return nil
	})
	if err != nil {
		return []model.BankAccount{}, err
	}
	return out, nil
}

type BankAccountInput struct {
	SystemName    string
	BankName      string
	AccountHolder string
	IBAN          string
	BIC           string
	DailyLimit    float64
	IsActive      bool
}

func (u *BankAccountUsecase) Create(ctx context.Context, in BankAccountInput) (model.BankAccount, error) {
	if strings.TrimSpace(in.SystemName) == "" {
		return model.BankAccount{}, NewHTTPError(http.StatusBadRequest, "system_name is required")
	}
	if strings.TrimSpace(in.IBAN) == "" {
		return model.BankAccount{}, NewHTTPError(http.StatusBadRequest, "iban is required")
	}
	if in.DailyLimit < 0 {
		return model.BankAccount{}, NewHTTPError(http.StatusBadRequest, "invalid daily_limit")
	}

	account := model.BankAccount{
		SystemName:    strings.TrimSpace(in.SystemName),
		BankName:      strings.TrimSpace(in.BankName),
		AccountHolder: strings.TrimSpace(in.AccountHolder),
		IBAN:          strings.ToUpper(strings.ReplaceAll(in.IBAN, " ", "")),
		BIC:           strings.ToUpper(strings.TrimSpace(in.BIC)),
		DailyLimit:    round2(in.DailyLimit),
		IsActive:      in.IsActive,
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		id, err := r.BankAccounts().Create(ctx, account)
		if err != nil {
			return NewHTTPError(http.StatusConflict, "system_name already exists")
		}
		account.ID = id
		return nil
	})

	if err != nil {
		return model.BankAccount{}, err
	}
	return account, nil
}

func (u *BankAccountUsecase) Update(ctx context.Context, id int64, fields map[string]interface{}) (model.BankAccount, error) {
	if id <= 0 {
		return model.BankAccount{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if len(fields) == 0 {
		return model.BankAccount{}, NewHTTPError(http.StatusBadRequest, "no fields")
	}
	if v, ok := fields["daily_limit"]; ok {
		if limit, ok := v.(float64); !ok || limit < 0 {
			return model.BankAccount{}, NewHTTPError(http.StatusBadRequest, "invalid daily_limit")
		}
	}

	var out model.BankAccount

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := r.BankAccounts().Update(ctx, id, fields); err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		} else if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		a, err := r.BankAccounts().FindByID(ctx, id)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		out = a
		return nil
	})

	if err != nil {
		return model.BankAccount{}, err
	}
	return out, nil
}

// SetDefault moves the flag exclusively: at most one account holds it.
func (u *BankAccountUsecase) SetDefault(ctx context.Context, id int64) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		account, err := r.BankAccounts().FindByID(ctx, id)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if !account.IsActive {
			return NewHTTPError(http.StatusBadRequest, "cannot default an inactive account")
		}
		if err := r.BankAccounts().SetDefault(ctx, id); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
}
