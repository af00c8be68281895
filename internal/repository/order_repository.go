package repository

import (
	"context"
	"errors"
	"time"

	"app/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// ErrDuplicateKey reports a unique-index collision on insert.
var ErrDuplicateKey = errors.New("duplicate key")

type AdminOrderListFilter struct {
	Page         int
	Limit        int
	Status       string
	OriginDomain string
	Search       string
	From         *time.Time
	To           *time.Time
}

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)

	// Create inserts the order. A unique-index collision comes back as
	// ErrDuplicateKey.
	Create(ctx context.Context, order model.Order) (int64, error)

	// Update applies a partial field set and bumps updated_at. Cross-field
	// consistency is the caller's responsibility.
	Update(ctx context.Context, orderID int64, fields map[string]interface{}) error

	// SetOrderNumber stamps the human-readable number derived from the id.
	SetOrderNumber(ctx context.Context, orderID int64, orderNumber string) error

	// UpdateStatus moves the order and bumps latest_status_change.
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus, at time.Time) error

	// SetInvoice stamps invoice number/date/file plus the shop and bank
	// account it was issued under in one write.
	SetInvoice(ctx context.Context, orderID int64, invoiceNumber string, invoiceDate time.Time, fileURL string, shopID, bankAccountID int64) error

	// Same key returns the same order (double-submit protection).
	FindByIdempotencyKey(ctx context.Context, key string) (model.Order, bool, error)

	// SumInvoicedBetween totals invoiced orders against an account with
	// invoice_date in [from, to). The ledger is always computed live.
	SumInvoicedBetween(ctx context.Context, bankAccountID int64, from, to time.Time) (float64, error)

	ListAdmin(ctx context.Context, f AdminOrderListFilter) ([]model.Order, int64, error)
}
