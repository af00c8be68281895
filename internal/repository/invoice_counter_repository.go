package repository

import "context"

type InvoiceCounterRepository interface {
	// NextNumber increments and returns the per-year sequence. Must run
	// inside a transaction; the increment is atomic so concurrent invoice
	// generation never hands out the same number.
	NextNumber(ctx context.Context, year int) (int64, error)
}
