package repository

import (
	"context"

	repo "app/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	orders          repo.OrderRepository
	bankAccounts    repo.BankAccountRepository
	shops           repo.ShopRepository
	statusHistory   repo.StatusHistoryRepository
	orderNotes      repo.OrderNoteRepository
	products        repo.ProductRepository
	invoiceCounters repo.InvoiceCounterRepository
}

func (r *txReposGorm) Orders() repo.OrderRepository                   { return r.orders }
func (r *txReposGorm) BankAccounts() repo.BankAccountRepository       { return r.bankAccounts }
func (r *txReposGorm) Shops() repo.ShopRepository                     { return r.shops }
func (r *txReposGorm) StatusHistory() repo.StatusHistoryRepository    { return r.statusHistory }
func (r *txReposGorm) OrderNotes() repo.OrderNoteRepository           { return r.orderNotes }
func (r *txReposGorm) Products() repo.ProductRepository               { return r.products }
func (r *txReposGorm) InvoiceCounters() repo.InvoiceCounterRepository { return r.invoiceCounters }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// rebuild the repos on the tx handle
		r := &txReposGorm{
			orders:          NewOrderGormRepository(tx),
			bankAccounts:    NewBankAccountGormRepository(tx),
			shops:           NewShopGormRepository(tx),
			statusHistory:   NewStatusHistoryGormRepository(tx),
			orderNotes:      NewOrderNoteGormRepository(tx),
			products:        NewProductGormRepository(tx),
			invoiceCounters: NewInvoiceCounterGormRepository(tx),
		}
		return fn(r)
	})
}
