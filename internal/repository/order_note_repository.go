package repository

import (
	"context"

	"app/internal/domain/model"
)

type OrderNoteRepository interface {
	Create(ctx context.Context, note model.OrderNote) error
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderNote, error)
}
