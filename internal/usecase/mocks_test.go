package usecase_test

import (
	"context"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/mock"
)

// =====================
// Repository mocks
// =====================

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) (int64, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepoMock) Update(ctx context.Context, orderID int64, fields map[string]interface{}) error {
	args := m.Called(ctx, orderID, fields)
	return args.Error(0)
}

func (m *OrderRepoMock) SetOrderNumber(ctx context.Context, orderID int64, orderNumber string) error {
	args := m.Called(ctx, orderID, orderNumber)
	return args.Error(0)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus, at time.Time) error {
	args := m.Called(ctx, orderID, status, at)
	return args.Error(0)
}

func (m *OrderRepoMock) SetInvoice(ctx context.Context, orderID int64, invoiceNumber string, invoiceDate time.Time, fileURL string, shopID, bankAccountID int64) error {
	args := m.Called(ctx, orderID, invoiceNumber, invoiceDate, fileURL, shopID, bankAccountID)
	return args.Error(0)
}

func (m *OrderRepoMock) FindByIdempotencyKey(ctx context.Context, key string) (model.Order, bool, error) {
	args := m.Called(ctx, key)
	o, _ := args.Get(0).(model.Order)
	return o, args.Bool(1), args.Error(2)
}

func (m *OrderRepoMock) SumInvoicedBetween(ctx context.Context, bankAccountID int64, from, to time.Time) (float64, error) {
	args := m.Called(ctx, bankAccountID, from, to)
	return args.Get(0).(float64), args.Error(1)
}

func (m *OrderRepoMock) ListAdmin(ctx context.Context, f repo.AdminOrderListFilter) ([]model.Order, int64, error) {
	args := m.Called(ctx, f)
	items, _ := args.Get(0).([]model.Order)
	return items, args.Get(1).(int64), args.Error(2)
}

type BankAccountRepoMock struct{ mock.Mock }

func (m *BankAccountRepoMock) FindByID(ctx context.Context, id int64) (model.BankAccount, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(model.BankAccount)
	return a, args.Error(1)
}

func (m *BankAccountRepoMock) FindByIDForUpdate(ctx context.Context, id int64) (model.BankAccount, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(model.BankAccount)
	return a, args.Error(1)
}

func (m *BankAccountRepoMock) List(ctx context.Context, includeInactive bool) ([]model.BankAccount, error) {
	args := m.Called(ctx, includeInactive)
	items, _ := args.Get(0).([]model.BankAccount)
	return items, args.Error(1)
}

func (m *BankAccountRepoMock) Create(ctx context.Context, a model.BankAccount) (int64, error) {
	args := m.Called(ctx, a)
	return args.Get(0).(int64), args.Error(1)
}

func (m *BankAccountRepoMock) Update(ctx context.Context, id int64, fields map[string]interface{}) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *BankAccountRepoMock) SetDefault(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *BankAccountRepoMock) FindDefaultActive(ctx context.Context) (model.BankAccount, bool, error) {
	args := m.Called(ctx)
	a, _ := args.Get(0).(model.BankAccount)
	return a, args.Bool(1), args.Error(2)
}

type ShopRepoMock struct{ mock.Mock }

func (m *ShopRepoMock) FindByID(ctx context.Context, id int64) (model.Shop, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(model.Shop)
	return s, args.Error(1)
}

func (m *ShopRepoMock) List(ctx context.Context) ([]model.Shop, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Shop)
	return items, args.Error(1)
}

func (m *ShopRepoMock) Create(ctx context.Context, s model.Shop) (int64, error) {
	args := m.Called(ctx, s)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ShopRepoMock) Update(ctx context.Context, id int64, fields map[string]interface{}) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *ShopRepoMock) SetDefault(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ShopRepoMock) FindDefault(ctx context.Context) (model.Shop, bool, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).(model.Shop)
	return s, args.Bool(1), args.Error(2)
}

type StatusHistoryRepoMock struct{ mock.Mock }

func (m *StatusHistoryRepoMock) Create(ctx context.Context, entry model.StatusHistoryEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *StatusHistoryRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]model.StatusHistoryEntry, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.StatusHistoryEntry)
	return items, args.Error(1)
}

type OrderNoteRepoMock struct{ mock.Mock }

func (m *OrderNoteRepoMock) Create(ctx context.Context, note model.OrderNote) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *OrderNoteRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderNote, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderNote)
	return items, args.Error(1)
}

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) FindByCode(ctx context.Context, code string) (model.Product, error) {
	args := m.Called(ctx, code)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) ListActive(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Error(1)
}

func (m *ProductRepoMock) Create(ctx context.Context, p model.Product) (int64, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ProductRepoMock) Update(ctx context.Context, id int64, fields map[string]interface{}) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *ProductRepoMock) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type InvoiceCounterRepoMock struct{ mock.Mock }

func (m *InvoiceCounterRepoMock) NextNumber(ctx context.Context, year int) (int64, error) {
	args := m.Called(ctx, year)
	return args.Get(0).(int64), args.Error(1)
}

// =====================
// Transaction plumbing
// =====================

// TxReposStub hands the mocks above to a usecase as one transaction scope.
type TxReposStub struct {
	orders   *OrderRepoMock
	accounts *BankAccountRepoMock
	shops    *ShopRepoMock
	history  *StatusHistoryRepoMock
	notes    *OrderNoteRepoMock
	products *ProductRepoMock
	counters *InvoiceCounterRepoMock
}

func newTxReposStub() *TxReposStub {
	return &TxReposStub{
		orders:   &OrderRepoMock{},
		accounts: &BankAccountRepoMock{},
		shops:    &ShopRepoMock{},
		history:  &StatusHistoryRepoMock{},
		notes:    &OrderNoteRepoMock{},
		products: &ProductRepoMock{},
		counters: &InvoiceCounterRepoMock{},
	}
}

func (s *TxReposStub) Orders() repo.OrderRepository                  { return s.orders }
func (s *TxReposStub) BankAccounts() repo.BankAccountRepository      { return s.accounts }
func (s *TxReposStub) Shops() repo.ShopRepository                    { return s.shops }
func (s *TxReposStub) StatusHistory() repo.StatusHistoryRepository   { return s.history }
func (s *TxReposStub) OrderNotes() repo.OrderNoteRepository          { return s.notes }
func (s *TxReposStub) Products() repo.ProductRepository              { return s.products }
func (s *TxReposStub) InvoiceCounters() repo.InvoiceCounterRepository { return s.counters }

// TxManagerStub runs the callback against the stub repos without a real
// transaction. Rollback is modeled by the callback's error.
type TxManagerStub struct {
	repos *TxReposStub
}

func newTxManagerStub() (*TxManagerStub, *TxReposStub) {
	r := newTxReposStub()
	return &TxManagerStub{repos: r}, r
}

func (m *TxManagerStub) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(m.repos)
}

// =====================
// Collaborator mocks
// =====================

type MailerMock struct{ mock.Mock }

func (m *MailerMock) SendOrderConfirmation(order model.Order, brand config.ShopContext) error {
	args := m.Called(order, brand)
	return args.Error(0)
}

type RendererMock struct{ mock.Mock }

func (m *RendererMock) Render(doc usecase.InvoiceDocument) (string, error) {
	args := m.Called(doc)
	return args.String(0), args.Error(1)
}

func (m *RendererMock) Discard(fileURL string) error {
	args := m.Called(fileURL)
	return args.Error(0)
}
