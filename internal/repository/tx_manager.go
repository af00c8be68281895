package repository

import "context"

// TxRepos is the set of repositories bound to one transaction.
type TxRepos interface {
	Orders() OrderRepository
	BankAccounts() BankAccountRepository
	Shops() ShopRepository
	StatusHistory() StatusHistoryRepository
	OrderNotes() OrderNoteRepository
	Products() ProductRepository
	InvoiceCounters() InvoiceCounterRepository
}

// TransactionManager hides begin/commit/rollback from the usecases.
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
