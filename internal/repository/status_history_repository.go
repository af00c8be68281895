package repository

import (
	"context"

	"app/internal/domain/model"
)

type StatusHistoryRepository interface {
	Create(ctx context.Context, entry model.StatusHistoryEntry) error
	ListByOrderID(ctx context.Context, orderID int64) ([]model.StatusHistoryEntry, error)
}
